package activityfeed

// Option overrides a Config default for a single call
type Option func(*callOptions)

type callOptions struct {
	aggregate *bool
	pageSize  *int
}

// WithAggregate selects the aggregate (true) or individual (false) feed
func WithAggregate(aggregate bool) Option {
	return func(o *callOptions) {
		o.aggregate = &aggregate
	}
}

// WithPageSize overrides the page size. Zero means the configured default.
func WithPageSize(size int) Option {
	return func(o *callOptions) {
		o.pageSize = &size
	}
}

// resolved holds call parameters after defaults have been applied
type resolved struct {
	aggregate bool
	pageSize  int
}

func (e *Engine) resolve(opts []Option) (resolved, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := resolved{
		aggregate: e.cfg.Aggregate,
		pageSize:  e.cfg.PageSize,
	}
	if o.aggregate != nil {
		r.aggregate = *o.aggregate
	}
	if o.pageSize != nil {
		switch {
		case *o.pageSize < 0:
			return resolved{}, NewValidationError("page_size", "page_size must not be negative")
		case *o.pageSize > 0:
			r.pageSize = *o.pageSize
		}
	}
	return r, nil
}
