// Package redisstore implements the activity feed Store on Redis sorted sets.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ActivityFeed/internal/core/activityfeed"
)

// DefaultURL is used when no connection URL is configured
const DefaultURL = "redis://localhost:6379/0"

type redisFeedStore struct {
	client redis.UniversalClient
}

var _ activityfeed.Store = (*redisFeedStore)(nil)

// NewFeedStore wraps an existing client. The caller keeps ownership of the
// client's configuration; Close closes it.
func NewFeedStore(client redis.UniversalClient) activityfeed.Store {
	return &redisFeedStore{client: client}
}

// Connect parses a redis:// URL (redis://:password@host:port/db), opens a
// pooled client and verifies it with PING before returning.
func Connect(ctx context.Context, url string) (activityfeed.Store, error) {
	if url == "" {
		url = DefaultURL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return &redisFeedStore{client: client}, nil
}

func (s *redisFeedStore) Upsert(ctx context.Context, key, member string, score float64) error {
	return s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

// UpsertBatch applies every entry inside MULTI/EXEC
func (s *redisFeedStore) UpsertBatch(ctx context.Context, entries []activityfeed.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.ZAdd(ctx, e.Key, redis.Z{Score: e.Score, Member: e.Member})
		}
		return nil
	})
	return err
}

// RemoveBatch applies every removal inside MULTI/EXEC
func (s *redisFeedStore) RemoveBatch(ctx context.Context, removals []activityfeed.Removal) error {
	if len(removals) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range removals {
			if len(r.Members) == 0 {
				continue
			}
			pipe.ZRem(ctx, r.Key, toArgs(r.Members)...)
		}
		return nil
	})
	return err
}

// DeleteKeys deletes all keys inside MULTI/EXEC. Missing keys are ignored.
func (s *redisFeedStore) DeleteKeys(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Del(ctx, k)
		}
		return nil
	})
	return err
}

func (s *redisFeedStore) Contains(ctx context.Context, key, member string) (bool, error) {
	err := s.client.ZScore(ctx, key, member).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisFeedStore) Cardinality(ctx context.Context, key string) (int64, error) {
	return s.client.ZCard(ctx, key).Result()
}

func (s *redisFeedStore) Page(ctx context.Context, key string, page, pageSize int) ([]string, error) {
	if page < 1 || pageSize < 1 {
		return []string{}, nil
	}
	// An offset past MaxInt64 would wrap negative and read from the tail
	if int64(page-1) > (math.MaxInt64-int64(pageSize))/int64(pageSize) {
		return []string{}, nil
	}
	start := int64(page-1) * int64(pageSize)
	stop := start + int64(pageSize) - 1
	return s.client.ZRevRange(ctx, key, start, stop).Result()
}

func (s *redisFeedStore) RangeByScore(ctx context.Context, key string, low, high float64) ([]string, error) {
	return s.client.ZRevRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: formatScore(low),
		Max: formatScore(high),
	}).Result()
}

func (s *redisFeedStore) RemoveByScoreRange(ctx context.Context, key string, low, high float64) error {
	return s.client.ZRemRangeByScore(ctx, key, formatScore(low), formatScore(high)).Err()
}

// RemoveOutsideRankWindow drops everything below the keep highest scores.
// Ranks are ascending, so the window to delete is [0, -(keep+1)].
func (s *redisFeedStore) RemoveOutsideRankWindow(ctx context.Context, key string, keep int) error {
	return s.client.ZRemRangeByRank(ctx, key, 0, -int64(keep)-1).Err()
}

func (s *redisFeedStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *redisFeedStore) ExpireAt(ctx context.Context, key string, at time.Time) error {
	return s.client.ExpireAt(ctx, key, at).Err()
}

func (s *redisFeedStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, key).Result()
}

func (s *redisFeedStore) Close() error {
	return s.client.Close()
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toArgs(members []string) []interface{} {
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return args
}
