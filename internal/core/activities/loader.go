package activities

import (
	"context"

	"ActivityFeed/internal/core/activityfeed"
)

// ItemsLoader resolves feed members into *Activity with one repository query per page
type ItemsLoader struct {
	repo Repository
}

var _ activityfeed.ItemsLoader = (*ItemsLoader)(nil)

// NewItemsLoader creates a feed item loader backed by repo
func NewItemsLoader(repo Repository) *ItemsLoader {
	return &ItemsLoader{repo: repo}
}

// LoadItems returns activities in the order of ids. Ids without a row (deleted
// after being fanned out) are dropped.
func (l *ItemsLoader) LoadItems(ctx context.Context, ids []string) ([]any, error) {
	found, err := l.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(ids))
	for _, id := range ids {
		if a, ok := found[id]; ok {
			items = append(items, a)
		}
	}
	return items, nil
}
