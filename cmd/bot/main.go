package main

import (
	"context"

	"marsa/internal/admin"
	"marsa/internal/bot"
	"marsa/internal/dispatch"
	"marsa/internal/engine"
	"marsa/internal/gateway"
	"marsa/internal/leads"
	"marsa/internal/ledger"
	"marsa/internal/messaging"
	"marsa/internal/scheduler"
	"marsa/internal/session"
	"marsa/pkg/app"
	"marsa/pkg/config"
	"marsa/pkg/model"
)

func main() {
	cfg := config.Load("bot")
	ctx := context.Background()

	led := ledger.New(cfg)

	// The scheduler fires into the processor, which does not exist yet;
	// the indirection breaks the construction cycle.
	var deliver func(model.ReminderJob)
	sched := scheduler.New(cfg, func(job model.ReminderJob) {
		if deliver != nil {
			deliver(job)
		}
	})

	sessions := session.NewStore(cfg, led, sched)
	sessions.StartSweeper(cfg.SweepInterval)

	writer, pinger := buildLeadSink(ctx, cfg)

	sender := messaging.NewWhatsAppSender(cfg)
	disp := dispatch.New(cfg, sender, writer, sched, led)
	eng := engine.New(cfg, led)
	adminSurface := admin.New(cfg, led, sessions, sched, disp)
	processor := bot.NewProcessor(cfg, eng, sessions, disp, adminSurface)
	deliver = processor.DeliverReminder(ctx)

	stats := func() map[string]any {
		return map[string]any{
			"sessions":   sessions.Stats(),
			"ledger":     led.Stats(),
			"scheduler":  sched.Stats(),
			"dispatcher": disp.Stats(),
			"processor":  processor.Stats(),
			"occupancy":  led.Occupancy(),
		}
	}

	webhook := gateway.NewWebhookHandler(cfg, processor, sessions, stats)
	health := gateway.NewHealthHandler(cfg, pinger)

	application := app.New(cfg)
	application.SetHandlers(webhook, health, gateway.SenderFromRequest)
	application.OnShutdown(sessions)
	application.OnShutdown(sched)
	application.OnShutdown(processor)
	application.Run()
}

// buildLeadSink selects the persistence collaborator. Mongo also serves
// the readiness probe.
func buildLeadSink(ctx context.Context, cfg *config.Config) (leads.Writer, gateway.Pinger) {
	switch cfg.LeadsSink {
	case config.SinkMongo:
		mw, err := leads.NewMongoWriter(ctx, cfg)
		if err != nil {
			cfg.Log.Fatal("Mongo lead sink unavailable", "error", err)
		}
		return leads.NewValidatingWriter(mw), mw
	case config.SinkKafka:
		kw, err := leads.NewKafkaWriter(cfg)
		if err != nil {
			cfg.Log.Fatal("Kafka lead sink misconfigured", "error", err)
		}
		return leads.NewValidatingWriter(kw), nil
	default:
		return leads.NewValidatingWriter(leads.NewLogWriter(cfg.Log)), nil
	}
}
