/*
Package config manages the TOML configuration of the wordgrid server.
*/
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds the entire config structure
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Lexicon    LexiconConfig    `toml:"lexicon"`
	Definition DefinitionConfig `toml:"definition"`
	Log        LogConfig        `toml:"log"`
}

// ServerConfig has HTTP server options
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// StorageConfig selects and tunes the storage backend
type StorageConfig struct {
	Type                 string   `toml:"type"`
	RedisURL             string   `toml:"redis_url"`
	GridTTL              Duration `toml:"grid_ttl"`
	ScanResultTTL        Duration `toml:"scan_result_ttl"`
	DefinitionTTL        Duration `toml:"definition_ttl"`
	MissingDefinitionTTL Duration `toml:"missing_definition_ttl"`
}

// LexiconConfig locates the wordlist
type LexiconConfig struct {
	// Path is the local wordlist file, one word per line
	Path string `toml:"path"`
	// URL is downloaded to Path when Download is set and Path does not exist
	URL      string `toml:"url"`
	Download bool   `toml:"download"`

	// DownloadTimeout bounds the whole download
	DownloadTimeout Duration `toml:"download_timeout"`
}

// DefinitionConfig configures the definition lookup
type DefinitionConfig struct {
	// Enabled turns the remote lookup on; when off every lexicon word is accepted
	Enabled bool     `toml:"enabled"`
	URL     string   `toml:"url"`
	Delay   Duration `toml:"delay"`
	Timeout Duration `toml:"timeout"`
	Cache   bool     `toml:"cache"`
}

// LogConfig holds logging options
type LogConfig struct {
	Level string `toml:"level"`
	// Dir, when set, receives a timestamped log file per run
	Dir string `toml:"dir"`
}

// Duration is a time.Duration written as a string such as "250ms" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{5 * time.Minute},
			ShutdownTimeout: Duration{30 * time.Second},
		},
		Storage: StorageConfig{
			Type:                 StorageMemory,
			GridTTL:              Duration{7 * 24 * time.Hour},
			ScanResultTTL:        Duration{7 * 24 * time.Hour},
			DefinitionTTL:        Duration{30 * 24 * time.Hour},
			MissingDefinitionTTL: Duration{24 * time.Hour},
		},
		Lexicon: LexiconConfig{
			Path:            "data/words_alpha.txt",
			URL:             lexicon.DefaultWordlistURL,
			Download:        true,
			DownloadTimeout: Duration{lexicon.DefaultDownloadTimeout},
		},
		Definition: DefinitionConfig{
			Enabled: true,
			URL:     definition.DefaultBaseURL,
			Delay:   Duration{250 * time.Millisecond},
			Timeout: Duration{10 * time.Second},
			Cache:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv overrides settings from WORDGRID_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WORDGRID_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORDGRID_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("WORDGRID_STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("WORDGRID_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("WORDGRID_LEXICON_PATH"); v != "" {
		c.Lexicon.Path = v
	}
	if v := os.Getenv("WORDGRID_DEFINITION_URL"); v != "" {
		c.Definition.URL = v
	}
	if v := os.Getenv("WORDGRID_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the configuration for inconsistent settings
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url is required for redis storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.type %q must be %q or %q", c.Storage.Type, StorageMemory, StorageRedis))
	}
	if c.Definition.Delay.Duration < 0 {
		errs = append(errs, errors.New("definition.delay must not be negative"))
	}
	if c.Lexicon.DownloadTimeout.Duration < 0 {
		errs = append(errs, errors.New("lexicon.download_timeout must not be negative"))
	}
	if c.Lexicon.Download && c.Lexicon.URL == "" {
		errs = append(errs, errors.New("lexicon.url is required when lexicon.download is set"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel converts a level name to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", name, err)
	}
	return level, nil
}
