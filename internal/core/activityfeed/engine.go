// Package activityfeed maps per-user activity feeds onto a ranked-set store.
//
// Every user owns two independent sorted sets: an individual feed and an
// aggregate feed. Members are item ids scored by timestamp; reads return the
// highest score first and pass the raw ids through the configured item loader.
package activityfeed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Engine implements Service on top of a Store. It holds no mutable state and is
// safe for concurrent use as long as the Store is.
type Engine struct {
	store    Store
	cfg      Config
	resolver resolver
	logger   *slog.Logger
}

var _ Service = (*Engine)(nil)

// NewEngine creates an engine over an already-connected store.
// A nil logger falls back to slog.Default().
func NewEngine(store Store, cfg Config, logger *slog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("activityfeed: store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("activityfeed: invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:    store,
		cfg:      cfg,
		resolver: newResolver(cfg),
		logger:   logger,
	}, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// UpdateItem adds or updates itemID in the user's individual feed and, when the
// resolved aggregate flag is set, in the aggregate feed as well. Both upserts
// are applied in one atomic batch.
func (e *Engine) UpdateItem(ctx context.Context, userID, itemID string, timestamp float64, opts ...Option) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateItemID(itemID); err != nil {
		return err
	}
	if err := validateTimestamp("timestamp", timestamp); err != nil {
		return err
	}
	r, err := e.resolve(opts)
	if err != nil {
		return err
	}

	if !r.aggregate {
		if err := e.store.Upsert(ctx, e.FeedKey(userID, false), itemID, timestamp); err != nil {
			return storeError("update item", err)
		}
	} else {
		entries := []Entry{
			{Key: e.FeedKey(userID, false), Member: itemID, Score: timestamp},
			{Key: e.FeedKey(userID, true), Member: itemID, Score: timestamp},
		}
		if err := e.store.UpsertBatch(ctx, entries); err != nil {
			return storeError("update item", err)
		}
	}

	e.logger.Debug("feed item updated",
		"user", userID,
		"item", itemID,
		"timestamp", timestamp,
		"aggregate", r.aggregate)
	return nil
}

// AddItem is an alias for UpdateItem
func (e *Engine) AddItem(ctx context.Context, userID, itemID string, timestamp float64, opts ...Option) error {
	return e.UpdateItem(ctx, userID, itemID, timestamp, opts...)
}

// AggregateItem adds itemID to the user's aggregate feed only. Useful when the
// aggregate feed is populated out of band, e.g. fanning out a friend's activity.
func (e *Engine) AggregateItem(ctx context.Context, userID, itemID string, timestamp float64) error {
	return e.AggregateItemForUsers(ctx, []string{userID}, itemID, timestamp)
}

// AggregateItemForUsers adds itemID to the aggregate feed of every user in one
// atomic batch. The individual feeds are not touched.
func (e *Engine) AggregateItemForUsers(ctx context.Context, userIDs []string, itemID string, timestamp float64) error {
	if len(userIDs) == 0 {
		return NewValidationError("user_ids", "at least one user id is required")
	}
	for _, userID := range userIDs {
		if err := validateUserID(userID); err != nil {
			return err
		}
	}
	if err := validateItemID(itemID); err != nil {
		return err
	}
	if err := validateTimestamp("timestamp", timestamp); err != nil {
		return err
	}

	entries := make([]Entry, 0, len(userIDs))
	for _, userID := range userIDs {
		entries = append(entries, Entry{Key: e.FeedKey(userID, true), Member: itemID, Score: timestamp})
	}
	if err := e.store.UpsertBatch(ctx, entries); err != nil {
		return storeError("aggregate item", err)
	}

	e.logger.Debug("feed item aggregated",
		"users", len(userIDs),
		"item", itemID,
		"timestamp", timestamp)
	return nil
}

// RemoveItem removes itemID from both the individual and the aggregate feed of
// the user, regardless of the configured aggregate default.
func (e *Engine) RemoveItem(ctx context.Context, userID, itemID string) error {
	return e.RemoveItems(ctx, userID, []string{itemID})
}

// RemoveItems removes every id in itemIDs from both feeds of the user in one
// atomic batch. Ids that are not present are ignored.
func (e *Engine) RemoveItems(ctx context.Context, userID string, itemIDs []string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if len(itemIDs) == 0 {
		return NewValidationError("item_ids", "at least one item id is required")
	}
	for _, itemID := range itemIDs {
		if err := validateItemID(itemID); err != nil {
			return err
		}
	}

	removals := []Removal{
		{Key: e.FeedKey(userID, false), Members: itemIDs},
		{Key: e.FeedKey(userID, true), Members: itemIDs},
	}
	if err := e.store.RemoveBatch(ctx, removals); err != nil {
		return storeError("remove item", err)
	}

	e.logger.Debug("feed items removed", "user", userID, "items", len(itemIDs))
	return nil
}

// RemoveFeeds deletes both feeds of the user in one atomic batch
func (e *Engine) RemoveFeeds(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := e.store.DeleteKeys(ctx, e.FeedKey(userID, false), e.FeedKey(userID, true)); err != nil {
		return storeError("remove feeds", err)
	}
	e.logger.Debug("feeds removed", "user", userID)
	return nil
}

// TrimFeed removes every member scored within [start, end] from the selected feed
func (e *Engine) TrimFeed(ctx context.Context, userID string, start, end float64, opts ...Option) error {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return err
	}
	if err := validateRange(start, end); err != nil {
		return err
	}
	if err := e.store.RemoveByScoreRange(ctx, key, start, end); err != nil {
		return storeError("trim feed", err)
	}
	return nil
}

// TrimFeedToSize keeps the size highest-scored members of the selected feed
func (e *Engine) TrimFeedToSize(ctx context.Context, userID string, size int, opts ...Option) error {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return err
	}
	if size < 0 {
		return NewValidationError("size", "size must not be negative")
	}
	if err := e.store.RemoveOutsideRankWindow(ctx, key, size); err != nil {
		return storeError("trim feed to size", err)
	}
	return nil
}

// ExpireFeed expires the selected feed after ttl. The store works in whole
// seconds, so ttl must be at least one second. The counterpart feed keeps its
// own expiry.
func (e *Engine) ExpireFeed(ctx context.Context, userID string, ttl time.Duration, opts ...Option) error {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return err
	}
	if ttl < time.Second {
		return NewValidationError("ttl", "ttl must be at least one second")
	}
	if err := e.store.Expire(ctx, key, ttl); err != nil {
		return storeError("expire feed", err)
	}
	return nil
}

// ExpireFeedAt expires the selected feed at the given instant
func (e *Engine) ExpireFeedAt(ctx context.Context, userID string, at time.Time, opts ...Option) error {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return err
	}
	if at.IsZero() {
		return NewValidationError("timestamp", "expiration time is required")
	}
	if err := e.store.ExpireAt(ctx, key, at); err != nil {
		return storeError("expire feed at", err)
	}
	return nil
}

// Feed returns the 1-indexed page of the selected feed, newest first. Pages
// past the end are empty.
func (e *Engine) Feed(ctx context.Context, userID string, page int, opts ...Option) ([]any, error) {
	key, r, err := e.target(userID, opts)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, NewValidationError("page", "page must be at least 1")
	}

	members, err := e.store.Page(ctx, key, page, r.pageSize)
	if err != nil {
		return nil, storeError("feed", err)
	}
	return e.load(ctx, members)
}

// FullFeed returns every member of the selected feed, newest first
func (e *Engine) FullFeed(ctx context.Context, userID string, opts ...Option) ([]any, error) {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return nil, err
	}

	total, err := e.store.Cardinality(ctx, key)
	if err != nil {
		return nil, storeError("full feed", err)
	}
	if total == 0 {
		return []any{}, nil
	}

	members, err := e.store.Page(ctx, key, 1, int(total))
	if err != nil {
		return nil, storeError("full feed", err)
	}
	return e.load(ctx, members)
}

// FeedBetweenTimestamps returns members scored within [start, end], newest first
func (e *Engine) FeedBetweenTimestamps(ctx context.Context, userID string, start, end float64, opts ...Option) ([]any, error) {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	members, err := e.store.RangeByScore(ctx, key, start, end)
	if err != nil {
		return nil, storeError("feed between timestamps", err)
	}
	return e.load(ctx, members)
}

// TotalItems returns the number of members in the selected feed
func (e *Engine) TotalItems(ctx context.Context, userID string, opts ...Option) (int64, error) {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return 0, err
	}
	total, err := e.store.Cardinality(ctx, key)
	if err != nil {
		return 0, storeError("total items", err)
	}
	return total, nil
}

// TotalPages returns ceil(TotalItems / page size)
func (e *Engine) TotalPages(ctx context.Context, userID string, opts ...Option) (int64, error) {
	key, r, err := e.target(userID, opts)
	if err != nil {
		return 0, err
	}
	total, err := e.store.Cardinality(ctx, key)
	if err != nil {
		return 0, storeError("total pages", err)
	}
	return totalPages(total, r.pageSize), nil
}

// CheckItem reports whether itemID is a member of the selected feed
func (e *Engine) CheckItem(ctx context.Context, userID, itemID string, opts ...Option) (bool, error) {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return false, err
	}
	if err := validateItemID(itemID); err != nil {
		return false, err
	}
	ok, err := e.store.Contains(ctx, key, itemID)
	if err != nil {
		return false, storeError("check item", err)
	}
	return ok, nil
}

// FeedTTL returns the remaining time to live of the selected feed as reported
// by the store
func (e *Engine) FeedTTL(ctx context.Context, userID string, opts ...Option) (time.Duration, error) {
	key, _, err := e.target(userID, opts)
	if err != nil {
		return 0, err
	}
	ttl, err := e.store.TTL(ctx, key)
	if err != nil {
		return 0, storeError("feed ttl", err)
	}
	return ttl, nil
}

// target validates the user id, applies option defaults and derives the key
func (e *Engine) target(userID string, opts []Option) (string, resolved, error) {
	if err := validateUserID(userID); err != nil {
		return "", resolved{}, err
	}
	r, err := e.resolve(opts)
	if err != nil {
		return "", resolved{}, err
	}
	return e.FeedKey(userID, r.aggregate), r, nil
}

func (e *Engine) load(ctx context.Context, members []string) ([]any, error) {
	items, err := e.resolver.resolve(ctx, members)
	if err != nil {
		e.logger.Warn("failed to resolve feed items",
			"members", len(members),
			"error", err)
		return nil, err
	}
	return items, nil
}

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

func validateUserID(userID string) error {
	if userID == "" {
		return NewValidationError("user_id", "user_id is required")
	}
	return nil
}

func validateItemID(itemID string) error {
	if itemID == "" {
		return NewValidationError("item_id", "item_id is required")
	}
	return nil
}

func validateTimestamp(field string, ts float64) error {
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return NewValidationError(field, "timestamp must be a finite number")
	}
	return nil
}

func validateRange(start, end float64) error {
	if err := validateTimestamp("start", start); err != nil {
		return err
	}
	return validateTimestamp("end", end)
}
