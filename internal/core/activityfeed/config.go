package activityfeed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config validation errors
var (
	// ErrMissingNamespace is returned when Namespace is empty
	ErrMissingNamespace = errors.New("Namespace is required")
	// ErrMissingAggregateKey is returned when AggregateKey is empty
	ErrMissingAggregateKey = errors.New("AggregateKey is required")
	// ErrInvalidPageSize is returned when PageSize is not positive
	ErrInvalidPageSize = errors.New("PageSize must be positive")
	// ErrInvalidLoaderConcurrency is returned when LoaderConcurrency is not positive
	ErrInvalidLoaderConcurrency = errors.New("LoaderConcurrency must be positive")
)

const (
	DefaultNamespace    = "activity_feed"
	DefaultAggregateKey = "aggregate"
	DefaultPageSize     = 25
)

// Config holds the process-wide feed settings. It is copied into the Engine at
// construction and never mutated afterwards.
type Config struct {
	// Namespace prefixes every feed key.
	Namespace string

	// AggregateKey is the infix that distinguishes aggregate feeds:
	// "{Namespace}:{AggregateKey}:{userID}".
	AggregateKey string

	// Aggregate is the default for operations called without WithAggregate.
	Aggregate bool

	// PageSize is the default for operations called without WithPageSize.
	PageSize int

	// ItemsLoader resolves a whole page of raw members in one call.
	// Takes precedence over ItemLoader when both are set.
	ItemsLoader ItemsLoader

	// ItemLoader resolves one raw member at a time.
	ItemLoader ItemLoader

	// LoaderConcurrency bounds how many ItemLoader calls run at once for a
	// single page. Ignored for ItemsLoader.
	LoaderConcurrency int
}

// DefaultConfig returns a Config with the stock defaults and no item loader.
func DefaultConfig() Config {
	return Config{
		Namespace:         DefaultNamespace,
		AggregateKey:      DefaultAggregateKey,
		Aggregate:         false,
		PageSize:          DefaultPageSize,
		LoaderConcurrency: 1,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Namespace == "" {
		return ErrMissingNamespace
	}
	if c.AggregateKey == "" {
		return ErrMissingAggregateKey
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	if c.LoaderConcurrency <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLoaderConcurrency, c.LoaderConcurrency)
	}
	return nil
}

// ConfigFromEnv creates a Config from environment variables.
// Uses defaults for any missing environment variables.
//
// Environment variables:
//   - ACTIVITY_FEED_NAMESPACE: key namespace (default: "activity_feed")
//   - ACTIVITY_FEED_AGGREGATE_KEY: aggregate key infix (default: "aggregate")
//   - ACTIVITY_FEED_AGGREGATE: "true"/"1" to aggregate by default (default: false)
//   - ACTIVITY_FEED_PAGE_SIZE: default page size (default: 25)
//   - ACTIVITY_FEED_LOADER_CONCURRENCY: parallel per-item loads per page (default: 1)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ACTIVITY_FEED_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}

	if v := os.Getenv("ACTIVITY_FEED_AGGREGATE_KEY"); v != "" {
		cfg.AggregateKey = v
	}

	if v := os.Getenv("ACTIVITY_FEED_AGGREGATE"); v != "" {
		v = strings.ToLower(v)
		cfg.Aggregate = v == "true" || v == "1"
	}

	if v := os.Getenv("ACTIVITY_FEED_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		} else {
			slog.Warn("[ACTIVITY-FEED] invalid ACTIVITY_FEED_PAGE_SIZE value, using default",
				"value", v,
				"default", cfg.PageSize,
				"error", err,
			)
		}
	}

	if v := os.Getenv("ACTIVITY_FEED_LOADER_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoaderConcurrency = n
		} else {
			slog.Warn("[ACTIVITY-FEED] invalid ACTIVITY_FEED_LOADER_CONCURRENCY value, using default",
				"value", v,
				"default", cfg.LoaderConcurrency,
				"error", err,
			)
		}
	}

	return cfg
}
