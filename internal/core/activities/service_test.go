package activities

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ActivityFeed/internal/core/activityfeed"
)

type mockRepo struct {
	mu         sync.Mutex
	activities map[string]*Activity
	createErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{activities: make(map[string]*Activity)}
}

func (r *mockRepo) Create(_ context.Context, a *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.activities[a.ID]; ok {
		return ErrActivityExists
	}
	a.CreatedAt = time.Now()
	r.activities[a.ID] = a
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, id string) (*Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	return a, nil
}

func (r *mockRepo) GetByIDs(_ context.Context, ids []string) (map[string]*Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*Activity)
	for _, id := range ids {
		if a, ok := r.activities[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (r *mockRepo) List(_ context.Context, afterID string, limit int) ([]*Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Activity
	for id, a := range r.activities {
		if id > afterID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mockRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

type feedCall struct {
	op        string
	users     []string
	itemID    string
	score     float64
	aggregate *bool
}

// mockFeeds records the feed writes made by the service
type mockFeeds struct {
	activityfeed.Service
	calls        []feedCall
	err          error
	aggregateErr error
}

func (f *mockFeeds) UpdateItem(_ context.Context, userID, itemID string, ts float64, opts ...activityfeed.Option) error {
	call := feedCall{op: "update", users: []string{userID}, itemID: itemID, score: ts}
	if len(opts) > 0 {
		v := true
		call.aggregate = &v
	}
	f.calls = append(f.calls, call)
	return f.err
}

func (f *mockFeeds) AggregateItemForUsers(_ context.Context, userIDs []string, itemID string, ts float64) error {
	f.calls = append(f.calls, feedCall{op: "aggregate", users: userIDs, itemID: itemID, score: ts})
	if f.aggregateErr != nil {
		return f.aggregateErr
	}
	return f.err
}

func (f *mockFeeds) RemoveItem(_ context.Context, userID, itemID string) error {
	f.calls = append(f.calls, feedCall{op: "remove", users: []string{userID}, itemID: itemID})
	return f.err
}

func TestPublish_AddsToActorFeedAndFansOut(t *testing.T) {
	repo := newMockRepo()
	feeds := &mockFeeds{}
	svc := NewActivityService(repo, feeds, nil)

	publishedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	activity, err := svc.Publish(context.Background(), PublishRequest{
		ActorID:     "alice",
		Verb:        "post",
		Object:      "post:1",
		Audience:    []string{"bob", "carol"},
		PublishedAt: publishedAt,
	})
	require.NoError(t, err)
	require.NotEmpty(t, activity.ID)

	stored, err := repo.GetByID(context.Background(), activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.ActorID)

	require.Len(t, feeds.calls, 2)
	assert.Equal(t, "update", feeds.calls[0].op)
	assert.Equal(t, []string{"alice"}, feeds.calls[0].users)
	assert.Equal(t, float64(publishedAt.Unix()), feeds.calls[0].score)
	assert.Nil(t, feeds.calls[0].aggregate, "no aggregate override means the engine default applies")

	assert.Equal(t, "aggregate", feeds.calls[1].op)
	assert.Equal(t, []string{"bob", "carol"}, feeds.calls[1].users)
	assert.Equal(t, activity.ID, feeds.calls[1].itemID)
}

func TestPublish_WithoutAudienceSkipsFanOut(t *testing.T) {
	feeds := &mockFeeds{}
	svc := NewActivityService(newMockRepo(), feeds, nil)

	aggregate := true
	_, err := svc.Publish(context.Background(), PublishRequest{
		ActorID:   "alice",
		Verb:      "like",
		Object:    "post:9",
		Aggregate: &aggregate,
	})
	require.NoError(t, err)

	require.Len(t, feeds.calls, 1)
	assert.NotNil(t, feeds.calls[0].aggregate)
}

func TestPublish_DefaultsPublishedAtToNow(t *testing.T) {
	svc := NewActivityService(newMockRepo(), &mockFeeds{}, nil)
	fixed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	svc.(*activityService).now = func() time.Time { return fixed }

	activity, err := svc.Publish(context.Background(), PublishRequest{ActorID: "alice", Verb: "post", Object: "post:1"})
	require.NoError(t, err)
	assert.Equal(t, fixed, activity.PublishedAt)
}

func TestPublish_Validation(t *testing.T) {
	feeds := &mockFeeds{}
	svc := NewActivityService(newMockRepo(), feeds, nil)

	tests := []struct {
		name string
		req  PublishRequest
	}{
		{"missing actor", PublishRequest{Verb: "post", Object: "x"}},
		{"blank actor", PublishRequest{ActorID: "   ", Verb: "post", Object: "x"}},
		{"missing verb", PublishRequest{ActorID: "alice", Object: "x"}},
		{"missing object", PublishRequest{ActorID: "alice", Verb: "post"}},
		{"empty audience member", PublishRequest{ActorID: "alice", Verb: "post", Object: "x", Audience: []string{"bob", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), tt.req)
			assert.True(t, IsValidationError(err))
		})
	}
	assert.Empty(t, feeds.calls)
}

func TestPublish_FeedFailureIsReturned(t *testing.T) {
	repo := newMockRepo()
	feeds := &mockFeeds{err: activityfeed.ErrStoreUnavailable}
	svc := NewActivityService(repo, feeds, nil)

	_, err := svc.Publish(context.Background(), PublishRequest{ActorID: "alice", Verb: "post", Object: "x"})
	require.Error(t, err)
	assert.True(t, activityfeed.IsStoreUnavailable(err))
	assert.Empty(t, repo.activities, "row must not outlive a failed publish")
}

func TestPublish_FanOutFailureRollsBack(t *testing.T) {
	repo := newMockRepo()
	feeds := &mockFeeds{aggregateErr: activityfeed.ErrStoreUnavailable}
	svc := NewActivityService(repo, feeds, nil)

	_, err := svc.Publish(context.Background(), PublishRequest{
		ActorID:  "alice",
		Verb:     "post",
		Object:   "x",
		Audience: []string{"bob"},
	})
	require.Error(t, err)
	assert.True(t, activityfeed.IsStoreUnavailable(err))
	assert.Empty(t, repo.activities)

	require.Len(t, feeds.calls, 3)
	assert.Equal(t, "update", feeds.calls[0].op)
	assert.Equal(t, "aggregate", feeds.calls[1].op)
	assert.Equal(t, "remove", feeds.calls[2].op)
	assert.Equal(t, []string{"alice"}, feeds.calls[2].users)
	assert.Equal(t, feeds.calls[0].itemID, feeds.calls[2].itemID)
}

func TestPublish_RepositoryFailureSkipsFeeds(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("connection reset")
	feeds := &mockFeeds{}
	svc := NewActivityService(repo, feeds, nil)

	_, err := svc.Publish(context.Background(), PublishRequest{ActorID: "alice", Verb: "post", Object: "x"})
	require.Error(t, err)
	assert.Empty(t, feeds.calls)
}

func TestDelete_RemovesFromFeedsAndRepository(t *testing.T) {
	repo := newMockRepo()
	feeds := &mockFeeds{}
	svc := NewActivityService(repo, feeds, nil)
	ctx := context.Background()

	activity, err := svc.Publish(ctx, PublishRequest{ActorID: "alice", Verb: "post", Object: "x", Audience: []string{"bob"}})
	require.NoError(t, err)
	feeds.calls = nil

	require.NoError(t, svc.Delete(ctx, DeleteRequest{ActivityID: activity.ID, Audience: []string{"bob", "alice"}}))

	require.Len(t, feeds.calls, 2)
	assert.Equal(t, []string{"alice"}, feeds.calls[0].users)
	assert.Equal(t, []string{"bob"}, feeds.calls[1].users)

	_, err = repo.GetByID(ctx, activity.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewActivityService(newMockRepo(), &mockFeeds{}, nil)

	err := svc.Delete(context.Background(), DeleteRequest{ActivityID: "missing"})
	assert.ErrorIs(t, err, ErrActivityNotFound)

	err = svc.Delete(context.Background(), DeleteRequest{})
	assert.True(t, IsValidationError(err))
}

func TestItemsLoader_PreservesOrderAndDropsMissing(t *testing.T) {
	repo := newMockRepo()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &Activity{ID: id, ActorID: "alice", Verb: "post", Object: id}))
	}

	items, err := NewItemsLoader(repo).LoadItems(ctx, []string{"c", "gone", "a", "b"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.(*Activity).ID
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
