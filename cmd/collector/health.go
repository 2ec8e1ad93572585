package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ambuso/crypto-etl/internal/scheduler"
	"github.com/ambuso/crypto-etl/internal/version"
	"github.com/ambuso/crypto-etl/internal/writer"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type statsSource interface {
	Stats(ctx context.Context) (writer.TableStats, error)
}

type statusSource interface {
	Status() scheduler.Status
}

// createHealthHandler creates the HTTP handler for health checks and metrics.
func createHealthHandler(db pinger, stats statsSource, runner statusSource, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Version    version.Info   `json:"version"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.Get(),
			Components: make(map[string]any),
		}

		// Check database
		if err := db.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		// Check scheduler
		status := runner.Status()
		health.Components["scheduler"] = status
		if status.ConsecutiveFailures > 0 && health.Status == "healthy" {
			health.Status = "degraded"
		}

		// Table stats are informational; the table may not exist yet.
		if s, err := stats.Stats(ctx); err == nil {
			health.Components["crypto_prices"] = s
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.Handle(metricsPath, promhttp.Handler())

	return mux
}
