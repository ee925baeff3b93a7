package definition

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Cached wraps a LookupFunc with a storage-backed cache. Found definitions and
// definitive misses are stored; retryable misses are not.
func Cached(next LookupFunc, store storage.Storage, clk clock.Clock, logger *slog.Logger) LookupFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return func(ctx context.Context, word string) model.DefinitionResult {
		word = strings.ToLower(word)

		cached, err := store.GetDefinition(ctx, word)
		switch {
		case err == nil:
			logger.Debug("definition cache hit", slog.String("word", word), slog.Bool("found", cached.Found))
			return cached.Result()
		case !errors.Is(err, model.ErrDefinitionNotCached):
			logger.Warn("definition cache read failed", slog.String("word", word), slog.String("error", err.Error()))
		}

		result := next(ctx, word)

		entry := &model.CachedDefinition{Word: word, FetchedAt: clk.Now()}
		switch r := result.(type) {
		case model.DefinitionFound:
			entry.Found = true
			entry.Definition = r.Definition
		case model.DefinitionMissing:
			if r.Retryable {
				return result
			}
			entry.Reason = r.Reason
		}

		if err := store.SaveDefinition(ctx, entry); err != nil {
			logger.Warn("definition cache write failed", slog.String("word", word), slog.String("error", err.Error()))
		}
		return result
	}
}
