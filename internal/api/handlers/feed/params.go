package feed

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ActivityFeed/internal/core/activityfeed"
)

// feedOptions reads the optional aggregate and page_size query parameters
func feedOptions(r *http.Request) ([]activityfeed.Option, error) {
	var opts []activityfeed.Option

	if v := r.URL.Query().Get("aggregate"); v != "" {
		aggregate, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("aggregate must be true or false")
		}
		opts = append(opts, activityfeed.WithAggregate(aggregate))
	}

	if v := r.URL.Query().Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("page_size must be an integer")
		}
		opts = append(opts, activityfeed.WithPageSize(size))
	}

	return opts, nil
}

// aggregateOption converts an optional JSON aggregate flag into engine options
func aggregateOption(aggregate *bool) []activityfeed.Option {
	if aggregate == nil {
		return nil
	}
	return []activityfeed.Option{activityfeed.WithAggregate(*aggregate)}
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", name)
	}
	return f, nil
}

func userIDParam(r *http.Request) string {
	return chi.URLParam(r, "userID")
}

func itemIDParam(r *http.Request) string {
	return chi.URLParam(r, "itemID")
}
