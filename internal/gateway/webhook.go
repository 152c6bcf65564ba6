// Package gateway is the HTTP edge: the Meta webhook pair, health
// endpoints and the small read-only inspection API.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"

	"marsa/pkg/config"
	"marsa/pkg/errors"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// EventProcessor consumes normalized inbound events.
type EventProcessor interface {
	Process(ctx context.Context, ev model.InboundEvent)
}

// SessionLister exposes the live session snapshot for inspection.
type SessionLister interface {
	Snapshot() []model.Session
}

// StatsFunc aggregates component counters for /api/stats.
type StatsFunc func() map[string]any

type WebhookHandler struct {
	cfg       *config.Config
	processor EventProcessor
	sessions  SessionLister
	stats     StatsFunc
	log       *logger.Logger
}

func NewWebhookHandler(cfg *config.Config, processor EventProcessor, sessions SessionLister, stats StatsFunc) *WebhookHandler {
	return &WebhookHandler{
		cfg:       cfg,
		processor: processor,
		sessions:  sessions,
		stats:     stats,
		log:       cfg.Log,
	}
}

func (h *WebhookHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/webhook", h.Verify)
	router.POST("/webhook", h.Receive)
	router.GET("/api/sessions", h.Sessions)
	router.GET("/api/stats", h.Stats)
}

// Verify answers Meta's subscription handshake: echo hub.challenge when
// the verify token matches.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.cfg.VerifyToken {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	h.log.Warn("Webhook verification rejected", "remote_addr", r.RemoteAddr)
	errors.WriteError(w, errors.Unauthorized("verification failed"))
}

// Receive ingests one webhook delivery. Events are processed
// synchronously so Meta's retry semantics line up with our dedup window;
// the response is always 200 once the payload parses, since retrying a
// conversation step helps nobody.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errors.WriteError(w, errors.InvalidInput("malformed webhook payload"))
		return
	}

	for _, ev := range payload.events() {
		h.processor.Process(r.Context(), ev)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"received"}`))
}

type sessionView struct {
	ID       string         `json:"id"`
	State    model.State    `json:"state"`
	FlowKind model.FlowKind `json:"flow_kind"`
	Language string         `json:"language"`
	Booked   bool           `json:"booked"`
	Expires  string         `json:"expires_at"`
}

// Sessions lists live sessions without their collected answers; names
// and phone numbers stay out of the inspection API.
func (h *WebhookHandler) Sessions(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	sessions := h.sessions.Snapshot()
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })

	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionView{
			ID:       s.ID,
			State:    s.State,
			FlowKind: s.FlowKind,
			Language: s.Language,
			Booked:   s.Reservation != nil && s.Reservation.Confirmed,
			Expires:  s.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	_ = errors.WriteSuccess(w, http.StatusOK, map[string]any{
		"count":    len(views),
		"sessions": views,
	})
}

func (h *WebhookHandler) Stats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = errors.WriteSuccess(w, http.StatusOK, h.stats())
}
