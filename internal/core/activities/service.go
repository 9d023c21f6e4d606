package activities

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ActivityFeed/internal/core/activityfeed"
)

const (
	maxVerbLength   = 64
	maxAudienceSize = 10000
)

type activityService struct {
	repo   Repository
	feeds  activityfeed.Service
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(repo Repository, feeds activityfeed.Service, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &activityService{
		repo:   repo,
		feeds:  feeds,
		logger: logger,
		now:    time.Now,
	}
}

// Publish stores the activity, adds it to the actor's feed and aggregates it
// into the audience's feeds
func (s *activityService) Publish(ctx context.Context, req PublishRequest) (*Activity, error) {
	if err := s.validatePublish(&req); err != nil {
		return nil, err
	}

	activity := &Activity{
		ID:          uuid.NewString(),
		ActorID:     req.ActorID,
		Verb:        req.Verb,
		Object:      req.Object,
		PublishedAt: req.PublishedAt.UTC(),
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	var opts []activityfeed.Option
	if req.Aggregate != nil {
		opts = append(opts, activityfeed.WithAggregate(*req.Aggregate))
	}
	if err := s.feeds.UpdateItem(ctx, activity.ActorID, activity.ID, activity.Score(), opts...); err != nil {
		s.rollbackPublish(ctx, activity, false)
		return nil, fmt.Errorf("failed to add activity to actor feed: %w", err)
	}

	if len(req.Audience) > 0 {
		if err := s.feeds.AggregateItemForUsers(ctx, req.Audience, activity.ID, activity.Score()); err != nil {
			s.rollbackPublish(ctx, activity, true)
			return nil, fmt.Errorf("failed to fan out activity: %w", err)
		}
	}

	s.logger.Info("activity published",
		"id", activity.ID,
		"actor", activity.ActorID,
		"verb", activity.Verb,
		"audience", len(req.Audience))

	return activity, nil
}

// rollbackPublish undoes a publish whose feed writes failed so no row is left
// behind that no feed references. Failures are logged; the caller already
// returns the original error.
func (s *activityService) rollbackPublish(ctx context.Context, activity *Activity, inActorFeed bool) {
	if inActorFeed {
		if err := s.feeds.RemoveItem(ctx, activity.ActorID, activity.ID); err != nil {
			s.logger.Warn("failed to remove activity from actor feed after failed publish",
				"id", activity.ID,
				"actor", activity.ActorID,
				"error", err)
		}
	}
	if err := s.repo.Delete(ctx, activity.ID); err != nil {
		s.logger.Warn("failed to delete activity after failed publish",
			"id", activity.ID,
			"error", err)
	}
}

// Delete removes the activity row and its id from the actor's and audience's feeds
func (s *activityService) Delete(ctx context.Context, req DeleteRequest) error {
	if req.ActivityID == "" {
		return NewValidationError("id", "activity id is required")
	}

	activity, err := s.repo.GetByID(ctx, req.ActivityID)
	if err != nil {
		return err
	}

	if err := s.feeds.RemoveItem(ctx, activity.ActorID, activity.ID); err != nil {
		return fmt.Errorf("failed to remove activity from actor feed: %w", err)
	}
	for _, userID := range req.Audience {
		if userID == "" || userID == activity.ActorID {
			continue
		}
		if err := s.feeds.RemoveItem(ctx, userID, activity.ID); err != nil {
			return fmt.Errorf("failed to remove activity from feed of %s: %w", userID, err)
		}
	}

	if err := s.repo.Delete(ctx, activity.ID); err != nil && !errors.Is(err, ErrActivityNotFound) {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.logger.Info("activity deleted", "id", activity.ID, "actor", activity.ActorID)
	return nil
}

// Get returns a single activity
func (s *activityService) Get(ctx context.Context, id string) (*Activity, error) {
	if id == "" {
		return nil, NewValidationError("id", "activity id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *activityService) validatePublish(req *PublishRequest) error {
	req.ActorID = strings.TrimSpace(req.ActorID)
	req.Verb = strings.TrimSpace(req.Verb)

	if req.ActorID == "" {
		return NewValidationError("actorId", "actor id is required")
	}
	if req.Verb == "" {
		return NewValidationError("verb", "verb is required")
	}
	if len(req.Verb) > maxVerbLength {
		return NewValidationError("verb", fmt.Sprintf("verb must not exceed %d characters", maxVerbLength))
	}
	if req.Object == "" {
		return NewValidationError("object", "object is required")
	}
	if len(req.Audience) > maxAudienceSize {
		return NewValidationError("audience", fmt.Sprintf("audience must not exceed %d users", maxAudienceSize))
	}
	for _, userID := range req.Audience {
		if userID == "" {
			return NewValidationError("audience", "audience must not contain empty user ids")
		}
	}
	if req.PublishedAt.IsZero() {
		req.PublishedAt = s.now()
	}
	return nil
}
