package middleware

import (
	"net/http"
	"sync"
	"time"

	"marsa/pkg/errors"
	"marsa/pkg/logger"
)

// SenderExtractor pulls the rate-limit key (the sender's phone) out of a
// request. Empty means the request is not attributable and passes.
type SenderExtractor func(r *http.Request) string

// SenderRateLimiter caps events per sender over a sliding window, so a
// single number cannot flood the conversation pipeline.
type SenderRateLimiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
	limit  int
	window time.Duration
	log    *logger.Logger
	stopCh chan struct{}
}

func NewSenderRateLimiter(limit int, window time.Duration, log *logger.Logger) *SenderRateLimiter {
	rl := &SenderRateLimiter{
		events: make(map[string][]time.Time),
		limit:  limit,
		window: window,
		log:    log,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *SenderRateLimiter) Allow(sender string) bool {
	if sender == "" {
		return true
	}
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.events[sender][:0]
	for _, at := range rl.events[sender] {
		if now.Sub(at) < rl.window {
			recent = append(recent, at)
		}
	}
	if len(recent) >= rl.limit {
		rl.events[sender] = recent
		return false
	}
	rl.events[sender] = append(recent, now)
	return true
}

func (rl *SenderRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for sender, times := range rl.events {
				if len(times) == 0 || now.Sub(times[len(times)-1]) > rl.window {
					delete(rl.events, sender)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *SenderRateLimiter) Stop() {
	close(rl.stopCh)
}

// SenderRateLimit wraps a handler with the limiter using the given
// extractor.
func SenderRateLimit(rl *SenderRateLimiter, extract SenderExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sender := extract(r)
			if !rl.Allow(sender) {
				rl.log.Warn("Sender rate limited",
					"request_id", RequestID(r), "sender", sender)
				errors.WriteError(w, &errors.AppError{
					Code:       errors.CodeUnavailable,
					Message:    "too many messages, slow down",
					HTTPStatus: http.StatusTooManyRequests,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MaxRequestSize rejects request bodies above the limit before any
// handler reads them.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
