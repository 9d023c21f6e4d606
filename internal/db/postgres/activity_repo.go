package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"ActivityFeed/internal/core/activities"
)

// MaxBatchSize caps the ids sent in a single ANY($1) query. Larger requests
// are split into several queries.
const MaxBatchSize = 1000

type postgresActivityRepo struct {
	db *sql.DB
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(db *sql.DB) activities.Repository {
	return &postgresActivityRepo{db: db}
}

// Create inserts a new activity
func (r *postgresActivityRepo) Create(ctx context.Context, a *activities.Activity) error {
	query := `
		INSERT INTO activities (id, actor_id, verb, object, published_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, a.ID, a.ActorID, a.Verb, a.Object, a.PublishedAt).Scan(&a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return activities.ErrActivityExists
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetByID retrieves an activity by id
func (r *postgresActivityRepo) GetByID(ctx context.Context, id string) (*activities.Activity, error) {
	query := `
		SELECT id, actor_id, verb, object, published_at, created_at
		FROM activities
		WHERE id = $1`

	a := &activities.Activity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ActorID, &a.Verb, &a.Object, &a.PublishedAt, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, activities.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// GetByIDs retrieves activities for a page of feed members
func (r *postgresActivityRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*activities.Activity, error) {
	result := make(map[string]*activities.Activity, len(ids))

	for start := 0; start < len(ids); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(ids))
		if err := r.getBatch(ctx, ids[start:end], result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresActivityRepo) getBatch(ctx context.Context, ids []string, result map[string]*activities.Activity) error {
	// Use ANY($1) for PostgreSQL array support with pq.Array() for type conversion
	query := `
		SELECT id, actor_id, verb, object, published_at, created_at
		FROM activities
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query activities by ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		a := &activities.Activity{}
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Verb, &a.Object, &a.PublishedAt, &a.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan activity row: %w", err)
		}
		result[a.ID] = a
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating activity rows: %w", err)
	}
	return nil
}

// List returns activities ordered by id, starting after afterID
func (r *postgresActivityRepo) List(ctx context.Context, afterID string, limit int) ([]*activities.Activity, error) {
	query := `
		SELECT id, actor_id, verb, object, published_at, created_at
		FROM activities
		WHERE id > $1
		ORDER BY id
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var out []*activities.Activity
	for rows.Next() {
		a := &activities.Activity{}
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Verb, &a.Object, &a.PublishedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return out, nil
}

// Delete removes an activity
func (r *postgresActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return activities.ErrActivityNotFound
	}
	return nil
}
