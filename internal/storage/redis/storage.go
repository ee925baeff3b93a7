package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Grid operations

func (s *Storage) SaveGrid(ctx context.Context, grid *model.Grid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gridKey(grid.ID), data, s.cfg.GridTTL).Err()
}

func (s *Storage) GetGrid(ctx context.Context, id model.GridID) (*model.Grid, error) {
	data, err := s.client.Get(ctx, gridKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGridNotFound
		}
		return nil, err
	}

	var grid model.Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (s *Storage) DeleteGrid(ctx context.Context, id model.GridID) error {
	// The grid's last result goes with it
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gridKey(id))
	pipe.Del(ctx, scanResultKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Scan result operations

func (s *Storage) SaveScanResult(ctx context.Context, result *model.ScanResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, scanResultKey(result.GridID), data, s.cfg.ScanResultTTL).Err()
}

func (s *Storage) GetScanResult(ctx context.Context, gridID model.GridID) (*model.ScanResult, error) {
	data, err := s.client.Get(ctx, scanResultKey(gridID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScanResultNotFound
		}
		return nil, err
	}

	var result model.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Lexicon operations

func (s *Storage) GetLexiconWords(ctx context.Context) ([]string, error) {
	key := lexiconKey()

	// Check if the lexicon exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrLexiconNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveLexiconWords(ctx context.Context, words []string) error {
	key := lexiconKey()

	// Replace the existing set atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Definition cache operations

func (s *Storage) GetDefinition(ctx context.Context, word string) (*model.CachedDefinition, error) {
	data, err := s.client.Get(ctx, definitionKey(word)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDefinitionNotCached
		}
		return nil, err
	}

	var def model.CachedDefinition
	if err := msgpack.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *Storage) SaveDefinition(ctx context.Context, def *model.CachedDefinition) error {
	data, err := msgpack.Marshal(def)
	if err != nil {
		return err
	}

	// Misses use their own, shorter TTL
	ttl := s.cfg.DefinitionTTL
	if !def.Found {
		ttl = s.cfg.MissingDefinitionTTL
	}
	return s.client.Set(ctx, definitionKey(def.Word), data, ttl).Err()
}
