package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"marsa/pkg/config"
	"marsa/pkg/errors"
	"marsa/pkg/logger"
)

// Pinger reports reachability of an external dependency. Nil means the
// deployment has no external sink to check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	sink    Pinger
	log     *logger.Logger
	started time.Time
}

func NewHealthHandler(cfg *config.Config, sink Pinger) *HealthHandler {
	return &HealthHandler{sink: sink, log: cfg.Log, started: time.Now()}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health is liveness: the process is up.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = errors.WriteSuccess(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Ready is readiness: the lead sink, when external, must answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.sink != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.sink.Ping(ctx); err != nil {
			h.log.Warn("Readiness check failed", "error", err)
			errors.WriteError(w, errors.Unavailable("lead sink"))
			return
		}
	}
	_ = errors.WriteSuccess(w, http.StatusOK, map[string]any{"status": "ready"})
}
