package activityfeed

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// resolver turns the raw members of one read into the items returned to the
// caller. Exactly one implementation is chosen when the Engine is built.
type resolver interface {
	resolve(ctx context.Context, members []string) ([]any, error)
}

func newResolver(cfg Config) resolver {
	switch {
	case cfg.ItemsLoader != nil:
		return batchResolver{loader: cfg.ItemsLoader}
	case cfg.ItemLoader != nil:
		return perItemResolver{loader: cfg.ItemLoader, concurrency: cfg.LoaderConcurrency}
	default:
		return passthroughResolver{}
	}
}

type passthroughResolver struct{}

func (passthroughResolver) resolve(_ context.Context, members []string) ([]any, error) {
	items := make([]any, len(members))
	for i, m := range members {
		items[i] = m
	}
	return items, nil
}

type batchResolver struct {
	loader ItemsLoader
}

func (r batchResolver) resolve(ctx context.Context, members []string) ([]any, error) {
	if len(members) == 0 {
		return []any{}, nil
	}
	loaded, err := r.loader.LoadItems(ctx, members)
	if err != nil {
		return nil, resolverError(err)
	}
	return compact(loaded), nil
}

type perItemResolver struct {
	loader      ItemLoader
	concurrency int
}

func (r perItemResolver) resolve(ctx context.Context, members []string) ([]any, error) {
	if len(members) == 0 {
		return []any{}, nil
	}

	slots := make([]any, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.concurrency, 1))

	for i, member := range members {
		g.Go(func() error {
			item, ok, err := r.loader.LoadItem(gctx, member)
			if err != nil {
				return err
			}
			if ok {
				slots[i] = item
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, resolverError(err)
	}
	return compact(slots), nil
}

// compact drops nil items, preserving order
func compact(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
