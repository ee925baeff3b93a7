package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigSuite) write(content string) string {
	path := filepath.Join(s.dir, "wordgrid.toml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigSuite) TestDefaultIsValid() {
	cfg := Default()

	s.Require().NoError(cfg.Validate())
	s.Equal(8080, cfg.Server.Port)
	s.Equal(StorageMemory, cfg.Storage.Type)
	s.Equal(250*time.Millisecond, cfg.Definition.Delay.Duration)
	s.True(cfg.Definition.Enabled)
	s.Equal(definition.DefaultBaseURL, cfg.Definition.URL)
	s.Equal(lexicon.DefaultWordlistURL, cfg.Lexicon.URL)
	s.Equal(lexicon.DefaultDownloadTimeout, cfg.Lexicon.DownloadTimeout.Duration)
	s.Equal(7*24*time.Hour, cfg.Storage.ScanResultTTL.Duration)
}

func (s *ConfigSuite) TestLoadStorageAndDownloadSettings() {
	path := s.write(`
[storage]
grid_ttl = "72h"
scan_result_ttl = "1h"

[lexicon]
download_timeout = "30s"
`)

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(72*time.Hour, cfg.Storage.GridTTL.Duration)
	s.Equal(time.Hour, cfg.Storage.ScanResultTTL.Duration)
	s.Equal(30*time.Second, cfg.Lexicon.DownloadTimeout.Duration)
}

func (s *ConfigSuite) TestLoadMergesOverDefaults() {
	path := s.write(`
[server]
port = 9090

[storage]
type = "redis"
redis_url = "redis://localhost:6379/0"
definition_ttl = "48h"

[definition]
delay = "1s"

[log]
level = "debug"
dir = "/var/log/wordgrid"
`)

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Require().NoError(cfg.Validate())

	s.Equal(9090, cfg.Server.Port)
	s.Equal(15*time.Second, cfg.Server.ReadTimeout.Duration)
	s.Equal(StorageRedis, cfg.Storage.Type)
	s.Equal("redis://localhost:6379/0", cfg.Storage.RedisURL)
	s.Equal(48*time.Hour, cfg.Storage.DefinitionTTL.Duration)
	s.Equal(24*time.Hour, cfg.Storage.MissingDefinitionTTL.Duration)
	s.Equal(time.Second, cfg.Definition.Delay.Duration)
	s.Equal("debug", cfg.Log.Level)
	s.Equal("/var/log/wordgrid", cfg.Log.Dir)
}

func (s *ConfigSuite) TestLoadRejectsUnknownKeys() {
	path := s.write(`
[server]
prot = 9090
`)

	_, err := Load(path)
	s.Require().Error(err)
	s.Contains(err.Error(), "server.prot")
}

func (s *ConfigSuite) TestLoadRejectsBadDuration() {
	path := s.write(`
[definition]
delay = "soon"
`)

	_, err := Load(path)
	s.Error(err)
}

func (s *ConfigSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.dir, "missing.toml"))
	s.Error(err)
}

func (s *ConfigSuite) TestApplyEnv() {
	s.T().Setenv("WORDGRID_PORT", "7070")
	s.T().Setenv("WORDGRID_STORAGE_TYPE", "redis")
	s.T().Setenv("WORDGRID_REDIS_URL", "redis://cache:6379")
	s.T().Setenv("WORDGRID_LEXICON_PATH", "/tmp/words.txt")
	s.T().Setenv("WORDGRID_DEFINITION_URL", "http://localhost:9999/")
	s.T().Setenv("WORDGRID_LOG_LEVEL", "warn")

	cfg := Default()
	s.Require().NoError(cfg.ApplyEnv())

	s.Equal(7070, cfg.Server.Port)
	s.Equal(StorageRedis, cfg.Storage.Type)
	s.Equal("redis://cache:6379", cfg.Storage.RedisURL)
	s.Equal("/tmp/words.txt", cfg.Lexicon.Path)
	s.Equal("http://localhost:9999/", cfg.Definition.URL)
	s.Equal("warn", cfg.Log.Level)
}

func (s *ConfigSuite) TestApplyEnvBadPort() {
	s.T().Setenv("WORDGRID_PORT", "eighty")

	s.Error(Default().ApplyEnv())
}

func (s *ConfigSuite) TestValidate() {
	cfg := Default()
	cfg.Storage.Type = StorageRedis
	s.Error(cfg.Validate())

	cfg = Default()
	cfg.Storage.Type = "postgres"
	s.Error(cfg.Validate())

	cfg = Default()
	cfg.Definition.Delay = Duration{-time.Second}
	s.Error(cfg.Validate())

	cfg = Default()
	cfg.Lexicon.DownloadTimeout = Duration{-time.Second}
	s.Error(cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "loud"
	s.Error(cfg.Validate())
}

func (s *ConfigSuite) TestParseLevel() {
	level, err := ParseLevel("DEBUG")
	s.Require().NoError(err)
	s.Equal(slog.LevelDebug, level)
}
