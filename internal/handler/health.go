package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is the store check behind /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealth reports whether the process is up and the store answers.
//
// HTTP: GET /healthz
func HandleHealth(store Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
