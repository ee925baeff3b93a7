package definition

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

type CacheSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	calls   map[string]int
	results map[string]model.DefinitionResult
	lookup  LookupFunc
	ctx     context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.calls = make(map[string]int)
	s.results = map[string]model.DefinitionResult{
		"help": model.DefinitionFound{Definition: "to assist"},
		"aah":  model.DefinitionMissing{Reason: "HTTP 404"},
		"busy": model.DefinitionMissing{Reason: "HTTP 503", Retryable: true},
	}
	next := func(_ context.Context, word string) model.DefinitionResult {
		s.calls[word]++
		return s.results[word]
	}
	s.lookup = Cached(next, s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CacheSuite) TestFoundIsCached() {
	first := s.lookup(s.ctx, "HELP")
	second := s.lookup(s.ctx, "help")

	s.Equal(model.DefinitionFound{Definition: "to assist"}, first)
	s.Equal(first, second)
	s.Equal(1, s.calls["help"])

	cached, err := s.storage.GetDefinition(s.ctx, "help")
	s.Require().NoError(err)
	s.True(cached.Found)
	s.Equal(s.clock.Now(), cached.FetchedAt)
}

func (s *CacheSuite) TestDefinitiveMissIsCached() {
	_ = s.lookup(s.ctx, "aah")
	result := s.lookup(s.ctx, "aah")

	ok, _ := model.IsRealWord(result)
	s.False(ok)
	s.Equal(1, s.calls["aah"])
}

func (s *CacheSuite) TestRetryableMissIsNotCached() {
	_ = s.lookup(s.ctx, "busy")
	_ = s.lookup(s.ctx, "busy")

	s.Equal(2, s.calls["busy"])
	_, err := s.storage.GetDefinition(s.ctx, "busy")
	s.ErrorIs(err, model.ErrDefinitionNotCached)
}

func (s *CacheSuite) TestPreloadedCacheSkipsLookup() {
	_ = s.storage.SaveDefinition(s.ctx, &model.CachedDefinition{Word: "tree", Found: true, Definition: "a plant"})

	result := s.lookup(s.ctx, "tree")

	s.Equal(model.DefinitionFound{Definition: "a plant"}, result)
	s.Zero(s.calls["tree"])
}
