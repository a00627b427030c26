package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sbilibin2017/stocktrack-api/internal/logger"
)

// Pinger defines the store connectivity check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse represents the health check body
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall status
	// default: OK
	Status string `json:"status"`

	// Store connectivity
	// default: Connected
	Database string `json:"database"`

	// Check time, RFC 3339
	Timestamp string `json:"timestamp"`
}

// NewHealthHandler returns an HTTP handler reporting store connectivity.
// @Summary Health check
// @Description Pings the relational store and reports connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Store reachable"
// @Failure 500 {object} handlers.HealthResponse "Store unreachable"
// @Router /health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Errorw("health check failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(HealthResponse{
				Status:    "Error",
				Database:  "Disconnected",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    "OK",
			Database:  "Connected",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
