package activityfeed

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// memStore is an in-memory Store used by the engine tests
type memStore struct {
	mu      sync.Mutex
	sets    map[string]map[string]float64
	expiry  map[string]time.Time
	failErr error
	calls   []string
}

func newMemStore() *memStore {
	return &memStore{
		sets:   make(map[string]map[string]float64),
		expiry: make(map[string]time.Time),
	}
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (s *memStore) record(op string) error {
	s.calls = append(s.calls, op)
	return s.failErr
}

func (s *memStore) upsert(key, member string, score float64) {
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]float64)
	}
	s.sets[key][member] = score
}

func (s *memStore) sorted(key string) []string {
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if set[members[i]] != set[members[j]] {
			return set[members[i]] > set[members[j]]
		}
		return members[i] > members[j]
	})
	return members
}

func (s *memStore) Upsert(_ context.Context, key, member string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("upsert"); err != nil {
		return err
	}
	s.upsert(key, member, score)
	return nil
}

func (s *memStore) UpsertBatch(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("upsert_batch"); err != nil {
		return err
	}
	for _, e := range entries {
		s.upsert(e.Key, e.Member, e.Score)
	}
	return nil
}

func (s *memStore) RemoveBatch(_ context.Context, removals []Removal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("remove_batch"); err != nil {
		return err
	}
	for _, r := range removals {
		for _, m := range r.Members {
			delete(s.sets[r.Key], m)
		}
		if len(s.sets[r.Key]) == 0 {
			delete(s.sets, r.Key)
		}
	}
	return nil
}

func (s *memStore) DeleteKeys(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete_keys"); err != nil {
		return err
	}
	for _, k := range keys {
		delete(s.sets, k)
		delete(s.expiry, k)
	}
	return nil
}

// KeyExists is a test helper; the engine never asks whether a key exists
func (s *memStore) KeyExists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sets[key]
	return ok, nil
}

func (s *memStore) Contains(_ context.Context, key, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("contains"); err != nil {
		return false, err
	}
	_, ok := s.sets[key][member]
	return ok, nil
}

func (s *memStore) Cardinality(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("cardinality"); err != nil {
		return 0, err
	}
	return int64(len(s.sets[key])), nil
}

func (s *memStore) Page(_ context.Context, key string, page, pageSize int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("page"); err != nil {
		return nil, err
	}
	members := s.sorted(key)
	if page-1 > len(members)/pageSize {
		return []string{}, nil
	}
	start := (page - 1) * pageSize
	if start >= len(members) {
		return []string{}, nil
	}
	end := min(start+pageSize, len(members))
	return members[start:end], nil
}

func (s *memStore) RangeByScore(_ context.Context, key string, low, high float64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("range_by_score"); err != nil {
		return nil, err
	}
	out := []string{}
	for _, m := range s.sorted(key) {
		if sc := s.sets[key][m]; sc >= low && sc <= high {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) RemoveByScoreRange(_ context.Context, key string, low, high float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("remove_by_score_range"); err != nil {
		return err
	}
	for m, sc := range s.sets[key] {
		if sc >= low && sc <= high {
			delete(s.sets[key], m)
		}
	}
	return nil
}

func (s *memStore) RemoveOutsideRankWindow(_ context.Context, key string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("remove_outside_rank_window"); err != nil {
		return err
	}
	for i, m := range s.sorted(key) {
		if i >= keep {
			delete(s.sets[key], m)
		}
	}
	return nil
}

func (s *memStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("expire"); err != nil {
		return err
	}
	if _, ok := s.sets[key]; ok {
		s.expiry[key] = time.Now().Add(ttl)
	}
	return nil
}

func (s *memStore) ExpireAt(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("expire_at"); err != nil {
		return err
	}
	if _, ok := s.sets[key]; ok {
		s.expiry[key] = at
	}
	return nil
}

func (s *memStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ttl"); err != nil {
		return 0, err
	}
	if _, ok := s.sets[key]; !ok {
		return -2, nil
	}
	at, ok := s.expiry[key]
	if !ok {
		return -1, nil
	}
	return time.Until(at), nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
