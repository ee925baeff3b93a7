package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/config"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
)

type FactorySuite struct {
	suite.Suite
	ctx context.Context
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *FactorySuite) TestFromConfigRedis() {
	cfg := config.Default()
	cfg.Storage.Type = config.StorageRedis
	cfg.Storage.RedisURL = "redis://cache:6379/1"
	cfg.Storage.GridTTL = config.Duration{Duration: 48 * time.Hour}
	cfg.Storage.ScanResultTTL = config.Duration{Duration: time.Hour}

	fc := FromConfig(cfg, nil)
	s.Equal(StorageTypeRedis, fc.StorageType)
	s.Require().NotNil(fc.RedisConfig)
	s.Equal("redis://cache:6379/1", fc.RedisConfig.URL)
	s.Equal(48*time.Hour, fc.RedisConfig.GridTTL)
	s.Equal(time.Hour, fc.RedisConfig.ScanResultTTL)
	s.Equal(lexicon.DefaultWordlistURL, fc.LexiconURL)
	s.Equal(lexicon.DefaultDownloadTimeout, fc.LexiconDownloadTimeout)
	s.Equal(definition.DefaultBaseURL, fc.Definition.Client.BaseURL)
}

func (s *FactorySuite) TestFromConfigWithoutDownload() {
	cfg := config.Default()
	cfg.Lexicon.Download = false

	fc := FromConfig(cfg, nil)
	s.Nil(fc.RedisConfig)
	s.Empty(fc.LexiconURL)
	s.Zero(fc.LexiconDownloadTimeout)
}

func (s *FactorySuite) TestLoadLexiconDownloadsMissingFile() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("help\nham\n"))
	}))
	defer server.Close()

	app, err := New(Config{
		LexiconPath: filepath.Join(s.T().TempDir(), "words.txt"),
		LexiconURL:  server.URL,
	})
	s.Require().NoError(err)

	s.Require().NoError(app.LoadLexicon(s.ctx))
	s.True(app.LexiconService.Contains("help"))
	s.Equal(2, app.LexiconService.WordCount())
}

func (s *FactorySuite) TestLoadLexiconDownloadTimesOut() {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	app, err := New(Config{
		LexiconPath:            filepath.Join(s.T().TempDir(), "words.txt"),
		LexiconURL:             server.URL,
		LexiconDownloadTimeout: 50 * time.Millisecond,
	})
	s.Require().NoError(err)

	start := time.Now()
	err = app.LoadLexicon(s.ctx)
	s.ErrorContains(err, "fetch lexicon")
	s.Less(time.Since(start), 5*time.Second)
	s.False(app.LexiconService.IsLoaded())
}
