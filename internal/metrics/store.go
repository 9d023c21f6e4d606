// Package metrics exposes Prometheus instrumentation for the feed store.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ActivityFeed/internal/core/activityfeed"
)

// StoreMetrics holds the collectors recorded by InstrumentedStore
type StoreMetrics struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
}

// NewStoreMetrics creates and registers the store collectors on reg
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activityfeed_store_operation_latency_seconds",
			Help:    "Latency of feed store operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activityfeed_store_operations_total",
			Help: "Total feed store operations",
		}, []string{"op", "status"}),
	}
	reg.MustRegister(m.opLatency, m.ops)
	return m
}

func (m *StoreMetrics) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.opLatency.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	m.ops.WithLabelValues(op, status).Inc()
}

// InstrumentedStore records latency and outcome of every call to the wrapped store
type InstrumentedStore struct {
	next    activityfeed.Store
	metrics *StoreMetrics
}

var _ activityfeed.Store = (*InstrumentedStore)(nil)

// InstrumentStore wraps next with metrics
func InstrumentStore(next activityfeed.Store, m *StoreMetrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Upsert(ctx context.Context, key, member string, score float64) (err error) {
	defer func(start time.Time) { s.metrics.observe("upsert", start, err) }(time.Now())
	return s.next.Upsert(ctx, key, member, score)
}

func (s *InstrumentedStore) UpsertBatch(ctx context.Context, entries []activityfeed.Entry) (err error) {
	defer func(start time.Time) { s.metrics.observe("upsert_batch", start, err) }(time.Now())
	return s.next.UpsertBatch(ctx, entries)
}

func (s *InstrumentedStore) RemoveBatch(ctx context.Context, removals []activityfeed.Removal) (err error) {
	defer func(start time.Time) { s.metrics.observe("remove_batch", start, err) }(time.Now())
	return s.next.RemoveBatch(ctx, removals)
}

func (s *InstrumentedStore) DeleteKeys(ctx context.Context, keys ...string) (err error) {
	defer func(start time.Time) { s.metrics.observe("delete_keys", start, err) }(time.Now())
	return s.next.DeleteKeys(ctx, keys...)
}

func (s *InstrumentedStore) Contains(ctx context.Context, key, member string) (ok bool, err error) {
	defer func(start time.Time) { s.metrics.observe("contains", start, err) }(time.Now())
	return s.next.Contains(ctx, key, member)
}

func (s *InstrumentedStore) Cardinality(ctx context.Context, key string) (n int64, err error) {
	defer func(start time.Time) { s.metrics.observe("cardinality", start, err) }(time.Now())
	return s.next.Cardinality(ctx, key)
}

func (s *InstrumentedStore) Page(ctx context.Context, key string, page, pageSize int) (members []string, err error) {
	defer func(start time.Time) { s.metrics.observe("page", start, err) }(time.Now())
	return s.next.Page(ctx, key, page, pageSize)
}

func (s *InstrumentedStore) RangeByScore(ctx context.Context, key string, low, high float64) (members []string, err error) {
	defer func(start time.Time) { s.metrics.observe("range_by_score", start, err) }(time.Now())
	return s.next.RangeByScore(ctx, key, low, high)
}

func (s *InstrumentedStore) RemoveByScoreRange(ctx context.Context, key string, low, high float64) (err error) {
	defer func(start time.Time) { s.metrics.observe("remove_by_score_range", start, err) }(time.Now())
	return s.next.RemoveByScoreRange(ctx, key, low, high)
}

func (s *InstrumentedStore) RemoveOutsideRankWindow(ctx context.Context, key string, keep int) (err error) {
	defer func(start time.Time) { s.metrics.observe("remove_outside_rank_window", start, err) }(time.Now())
	return s.next.RemoveOutsideRankWindow(ctx, key, keep)
}

func (s *InstrumentedStore) Expire(ctx context.Context, key string, ttl time.Duration) (err error) {
	defer func(start time.Time) { s.metrics.observe("expire", start, err) }(time.Now())
	return s.next.Expire(ctx, key, ttl)
}

func (s *InstrumentedStore) ExpireAt(ctx context.Context, key string, at time.Time) (err error) {
	defer func(start time.Time) { s.metrics.observe("expire_at", start, err) }(time.Now())
	return s.next.ExpireAt(ctx, key, at)
}

func (s *InstrumentedStore) TTL(ctx context.Context, key string) (ttl time.Duration, err error) {
	defer func(start time.Time) { s.metrics.observe("ttl", start, err) }(time.Now())
	return s.next.TTL(ctx, key)
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
