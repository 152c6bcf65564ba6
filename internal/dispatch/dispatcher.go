// Package dispatch executes engine commands against their collaborators.
// It carries no conversation policy; each command maps onto exactly one
// collaborator call.
package dispatch

import (
	"context"
	"sync/atomic"

	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// MessageSender delivers outbound messages to the chat platform.
type MessageSender interface {
	Send(ctx context.Context, msg model.SendMessage) error
}

// LeadWriter persists lead rows to the configured sink.
type LeadWriter interface {
	Write(ctx context.Context, record model.LeadRecord) error
}

// ReminderScheduler registers and cancels deferred reminder jobs.
type ReminderScheduler interface {
	Schedule(job model.ReminderJob) bool
	Cancel(jobID string) bool
}

// CapacityReleaser returns seats to the availability ledger.
type CapacityReleaser interface {
	Release(key model.SlotKey, partySize int)
}

type Dispatcher struct {
	sender    MessageSender
	leads     LeadWriter
	scheduler ReminderScheduler
	ledger    CapacityReleaser
	log       *logger.Logger

	sendFailures    int64
	persistFailures int64
}

func New(cfg *config.Config, sender MessageSender, leads LeadWriter, scheduler ReminderScheduler, ledger CapacityReleaser) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		leads:     leads,
		scheduler: scheduler,
		ledger:    ledger,
		log:       cfg.Log,
	}
}

// Dispatch runs commands in order. Failures are logged and counted but
// never stop the batch: the guest has already been promised the outcome,
// so a failed lead write must not block the confirmation message behind it.
func (d *Dispatcher) Dispatch(ctx context.Context, cmds []model.Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case model.SendMessage:
			if err := d.sender.Send(ctx, c); err != nil {
				atomic.AddInt64(&d.sendFailures, 1)
				d.log.Error("Outbound message failed", "to", c.To, "error", err)
			}
		case model.PersistLead:
			if err := d.leads.Write(ctx, c.Record); err != nil {
				atomic.AddInt64(&d.persistFailures, 1)
				d.log.Error("Lead persistence failed",
					"contact", c.Record.Contact, "intent", c.Record.Intent, "error", err)
			}
		case model.ScheduleReminder:
			d.scheduler.Schedule(c.Job)
		case model.CancelReminder:
			d.scheduler.Cancel(c.JobID)
		case model.ReleaseCapacity:
			d.ledger.Release(c.Slot, c.PartySize)
		default:
			d.log.Error("Unknown command", "command", cmd.CommandName())
		}
	}
}

// Stats reports lifetime failure counters for the admin surface.
type Stats struct {
	SendFailures    int64 `json:"send_failures"`
	PersistFailures int64 `json:"persist_failures"`
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		SendFailures:    atomic.LoadInt64(&d.sendFailures),
		PersistFailures: atomic.LoadInt64(&d.persistFailures),
	}
}
