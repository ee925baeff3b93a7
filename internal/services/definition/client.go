package definition

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
)

// DefaultBaseURL is the free dictionary API entry endpoint
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

// Config holds definition client settings
type Config struct {
	// BaseURL is joined with the escaped word to form the request URL
	BaseURL string
	// Delay is waited before every request
	Delay time.Duration
	// Timeout bounds a single HTTP request
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Delay:   250 * time.Millisecond,
		Timeout: 10 * time.Second,
	}
}

// Client looks definitions up over HTTP
type Client struct {
	cfg        Config
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a new definition Client
func NewClient(cfg Config, clk clock.Clock, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		clock:  clk,
		logger: logger,
	}
}

// entry mirrors the parts of the dictionary API payload that are read
type entry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup fetches the first definition of word. It waits the configured delay
// first, then treats transport errors, non-200 responses and payloads without
// a definition as missing.
func (c *Client) Lookup(ctx context.Context, word string) model.DefinitionResult {
	if err := c.clock.Sleep(ctx, c.cfg.Delay); err != nil {
		return model.DefinitionMissing{Reason: err.Error(), Retryable: true}
	}

	result := c.fetch(ctx, word)
	switch r := result.(type) {
	case model.DefinitionFound:
		c.logger.Debug("definition found", slog.String("word", word))
	case model.DefinitionMissing:
		c.logger.Debug("definition missing",
			slog.String("word", word),
			slog.String("reason", r.Reason),
			slog.Bool("retryable", r.Retryable),
		)
	}
	return result
}

// LookupFunc returns Lookup as a LookupFunc
func (c *Client) LookupFunc() LookupFunc {
	return c.Lookup
}

func (c *Client) fetch(ctx context.Context, word string) model.DefinitionResult {
	reqURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.DefinitionMissing{Reason: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.DefinitionMissing{Reason: fmt.Sprintf("request failed: %v", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.DefinitionMissing{
			Reason:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return model.DefinitionMissing{Reason: fmt.Sprintf("failed to parse response: %v", err)}
	}

	if len(entries) == 0 ||
		len(entries[0].Meanings) == 0 ||
		len(entries[0].Meanings[0].Definitions) == 0 ||
		entries[0].Meanings[0].Definitions[0].Definition == "" {
		return model.DefinitionMissing{Reason: "no definition in response"}
	}

	return model.DefinitionFound{Definition: entries[0].Meanings[0].Definitions[0].Definition}
}
