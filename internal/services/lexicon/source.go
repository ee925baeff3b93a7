package lexicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultWordlistURL is a permissive English wordlist (one lowercase word per line)
const DefaultWordlistURL = "https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt"

// DefaultDownloadTimeout bounds a wordlist download
const DefaultDownloadTimeout = 2 * time.Minute

// EnsureFile makes sure a wordlist exists at path, downloading it from url
// when it does not. An existing file is never re-downloaded.
func EnsureFile(ctx context.Context, client *http.Client, url, path string) (downloaded bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("download wordlist: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download wordlist: HTTP %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}

	// Partial downloads stay in the temp file
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wordlist-*")
	if err != nil {
		return false, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("download wordlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
