// Package app wires routers, middleware and the HTTP server, and owns
// the graceful shutdown sequence.
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"marsa/pkg/config"
	"marsa/pkg/contracts"
	"marsa/pkg/middleware"
)

// Stopper is a background worker that must be stopped before the server
// exits: sweepers, schedulers, dedup stores.
type Stopper interface {
	Stop()
}

type Application struct {
	cfg         *config.Config
	server      *http.Server
	rateLimiter *middleware.SenderRateLimiter
	workers     []Stopper
}

func New(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// OnShutdown registers a worker to stop during graceful shutdown, in
// registration order.
func (a *Application) OnShutdown(w Stopper) {
	a.workers = append(a.workers, w)
}

// SetHandlers builds the two middleware chains. Health endpoints get the
// minimal chain; everything else gets the full webhook security stack.
func (a *Application) SetHandlers(appHandler, healthHandler contracts.Handler, extractor middleware.SenderExtractor) {
	log := a.cfg.Log

	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)
	var health http.Handler = healthRouter
	health = middleware.RequestLogging(log)(health)
	health = middleware.Recovery(log)(health)

	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	a.rateLimiter = middleware.NewSenderRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, log)

	var handler http.Handler = appRouter
	handler = middleware.SenderRateLimit(a.rateLimiter, extractor)(handler)
	handler = middleware.WebhookSignature(a.cfg.WhatsAppAppSecret, log)(handler)
	if a.cfg.WhatsAppAppSecret != "" {
		log.Info("Webhook signature verification enabled")
	}
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.Recovery(log)(handler)

	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/ready", health)
	mux.Handle("/", handler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)
	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)
	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	log := a.cfg.Log

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first so no new events race the worker
	// teardown below.
	if err := a.server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			log.Fatal("Could not stop server", "error", err)
		}
	}

	log.Info("Stopping background workers", "count", len(a.workers))
	a.rateLimiter.Stop()
	for _, w := range a.workers {
		w.Stop()
	}

	log.Info("Server stopped gracefully")
}
