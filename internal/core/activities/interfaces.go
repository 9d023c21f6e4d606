package activities

import "context"

// Repository defines activity data access
type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)

	// GetByIDs returns the activities found, keyed by id. Missing ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Activity, error)

	// List returns up to limit activities with id > afterID, ordered by id
	List(ctx context.Context, afterID string, limit int) ([]*Activity, error)

	Delete(ctx context.Context, id string) error
}

// Service defines activity business logic
type Service interface {
	Publish(ctx context.Context, req PublishRequest) (*Activity, error)
	Delete(ctx context.Context, req DeleteRequest) error
	Get(ctx context.Context, id string) (*Activity, error)
}
