package routes

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// RegisterOpsRoutes registers the health and metrics endpoints
func RegisterOpsRoutes(r chi.Router, db *sql.DB, redisClient redis.UniversalClient, gatherer prometheus.Gatherer) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := "OK"
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Health check: redis unavailable: %v", err)
			status, body = http.StatusServiceUnavailable, "redis unavailable"
		} else if db != nil {
			if err := db.PingContext(ctx); err != nil {
				log.Printf("Health check: database unavailable: %v", err)
				status, body = http.StatusServiceUnavailable, "database unavailable"
			}
		}

		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			log.Printf("Failed to write health check response: %v", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
