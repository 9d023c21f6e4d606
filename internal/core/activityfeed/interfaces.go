package activityfeed

import (
	"context"
	"time"
)

// Entry is one (key, member, score) upsert in a batch
type Entry struct {
	Key    string
	Member string
	Score  float64
}

// Removal removes Members from the sorted set at Key
type Removal struct {
	Key     string
	Members []string
}

// Store is the ranked-set store the engine delegates to. Every key is a sorted
// set of unique members ordered by score. Reads return members by descending
// score. Batch methods are atomic: either every operation applies or the call
// fails. A missing key behaves as an empty set.
type Store interface {
	Upsert(ctx context.Context, key, member string, score float64) error
	UpsertBatch(ctx context.Context, entries []Entry) error
	RemoveBatch(ctx context.Context, removals []Removal) error
	DeleteKeys(ctx context.Context, keys ...string) error

	Contains(ctx context.Context, key, member string) (bool, error)
	Cardinality(ctx context.Context, key string) (int64, error)

	// Page returns the 1-indexed page of members, highest score first
	Page(ctx context.Context, key string, page, pageSize int) ([]string, error)

	// RangeByScore returns members with low <= score <= high, highest score first
	RangeByScore(ctx context.Context, key string, low, high float64) ([]string, error)

	RemoveByScoreRange(ctx context.Context, key string, low, high float64) error

	// RemoveOutsideRankWindow keeps the keep highest-scored members and drops the rest
	RemoveOutsideRankWindow(ctx context.Context, key string, keep int) error

	Expire(ctx context.Context, key string, ttl time.Duration) error
	ExpireAt(ctx context.Context, key string, at time.Time) error

	// TTL returns the remaining time to live. Negative values follow the store:
	// -1 for no expiry, -2 for a missing key.
	TTL(ctx context.Context, key string) (time.Duration, error)

	Close() error
}

// ItemsLoader resolves a page of raw members in one call. The result keeps the
// input order; nil entries and members missing from the result are dropped.
type ItemsLoader interface {
	LoadItems(ctx context.Context, ids []string) ([]any, error)
}

// ItemLoader resolves a single raw member. ok == false drops the member.
type ItemLoader interface {
	LoadItem(ctx context.Context, id string) (item any, ok bool, err error)
}

// ItemsLoaderFunc adapts a function to ItemsLoader
type ItemsLoaderFunc func(ctx context.Context, ids []string) ([]any, error)

func (f ItemsLoaderFunc) LoadItems(ctx context.Context, ids []string) ([]any, error) {
	return f(ctx, ids)
}

// ItemLoaderFunc adapts a function to ItemLoader
type ItemLoaderFunc func(ctx context.Context, id string) (any, bool, error)

func (f ItemLoaderFunc) LoadItem(ctx context.Context, id string) (any, bool, error) {
	return f(ctx, id)
}

// Service defines the activity feed operations
type Service interface {
	FeedKey(userID string, aggregate bool) string

	UpdateItem(ctx context.Context, userID, itemID string, timestamp float64, opts ...Option) error
	AddItem(ctx context.Context, userID, itemID string, timestamp float64, opts ...Option) error
	AggregateItem(ctx context.Context, userID, itemID string, timestamp float64) error
	AggregateItemForUsers(ctx context.Context, userIDs []string, itemID string, timestamp float64) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	RemoveItems(ctx context.Context, userID string, itemIDs []string) error
	RemoveFeeds(ctx context.Context, userID string) error
	TrimFeed(ctx context.Context, userID string, start, end float64, opts ...Option) error
	TrimFeedToSize(ctx context.Context, userID string, size int, opts ...Option) error
	ExpireFeed(ctx context.Context, userID string, ttl time.Duration, opts ...Option) error
	ExpireFeedAt(ctx context.Context, userID string, at time.Time, opts ...Option) error

	Feed(ctx context.Context, userID string, page int, opts ...Option) ([]any, error)
	FullFeed(ctx context.Context, userID string, opts ...Option) ([]any, error)
	FeedBetweenTimestamps(ctx context.Context, userID string, start, end float64, opts ...Option) ([]any, error)
	TotalItems(ctx context.Context, userID string, opts ...Option) (int64, error)
	TotalPages(ctx context.Context, userID string, opts ...Option) (int64, error)
	CheckItem(ctx context.Context, userID, itemID string, opts ...Option) (bool, error)
	FeedTTL(ctx context.Context, userID string, opts ...Option) (time.Duration, error)
}
