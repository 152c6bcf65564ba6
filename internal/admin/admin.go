// Package admin is the operator chat surface. Allow-listed senders can
// inspect counters and pending reminders with plain text commands;
// anything unrecognized falls through to normal conversational handling.
package admin

import (
	"fmt"
	"sort"
	"strings"

	"marsa/internal/dispatch"
	"marsa/internal/ledger"
	"marsa/internal/scheduler"
	"marsa/internal/session"
	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
	"marsa/pkg/sanitizer"
)

type Surface struct {
	ledger     *ledger.Ledger
	sessions   *session.Store
	scheduler  *scheduler.Scheduler
	dispatcher *dispatch.Dispatcher
	log        *logger.Logger
}

func New(cfg *config.Config, led *ledger.Ledger, sessions *session.Store, sched *scheduler.Scheduler, disp *dispatch.Dispatcher) *Surface {
	return &Surface{
		ledger:     led,
		sessions:   sessions,
		scheduler:  sched,
		dispatcher: disp,
		log:        cfg.Log,
	}
}

const helpText = `🔧 Admin commands:

stats - counters for sessions, seats, reminders and failures
reminder - list pending reminder jobs
reminder <id> - cancel a pending reminder
help - this message

Anything else is handled as a normal guest message.`

// HandleCommand interprets operator text. handled=false means the text
// is not an admin command.
func (s *Surface) HandleCommand(senderID, text string) ([]model.Command, bool) {
	words := strings.Fields(strings.ToLower(sanitizer.TrimAndNormalize(text)))
	if len(words) == 0 {
		return nil, false
	}

	switch words[0] {
	case "stats":
		if len(words) != 1 {
			return nil, false
		}
		return reply(senderID, s.statsText()), true
	case "reminder", "reminders":
		switch len(words) {
		case 1:
			return reply(senderID, s.pendingText()), true
		case 2:
			return reply(senderID, s.cancelText(senderID, words[1])), true
		}
		return nil, false
	case "help":
		if len(words) != 1 {
			return nil, false
		}
		return reply(senderID, helpText), true
	}
	return nil, false
}

func (s *Surface) statsText() string {
	led := s.ledger.Stats()
	sess := s.sessions.Stats()
	sched := s.scheduler.Stats()
	disp := s.dispatcher.Stats()

	var b strings.Builder
	b.WriteString("📊 Stats\n\n")
	fmt.Fprintf(&b, "Sessions: %d active, %d swept\n", sess.Active, sess.Swept)
	fmt.Fprintf(&b, "Seats: %d/%d reserved across %d slots\n", led.SeatsReserved, led.SeatsCapacity, led.Slots)
	fmt.Fprintf(&b, "Reminders: %d pending, %d scheduled, %d fired, %d cancelled\n",
		sched.Pending, sched.Scheduled, sched.Fired, sched.Cancelled)
	fmt.Fprintf(&b, "Failures: %d send, %d persist", disp.SendFailures, disp.PersistFailures)
	return b.String()
}

func (s *Surface) pendingText() string {
	jobs := s.scheduler.Pending()
	if len(jobs) == 0 {
		return "No pending reminders."
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].FireAt.Before(jobs[j].FireAt) })

	var b strings.Builder
	fmt.Fprintf(&b, "⏰ %d pending reminder(s):\n\n", len(jobs))
	for _, job := range jobs {
		fmt.Fprintf(&b, "%s - %s, %s %s, fires %s\n",
			job.ID, job.Payload.Resource, job.Payload.Date, job.Payload.Timeslot,
			job.FireAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("\nReply: reminder <id> to cancel one.")
	return b.String()
}

func (s *Surface) cancelText(senderID, jobID string) string {
	if s.scheduler.Cancel(jobID) {
		s.log.Info("Reminder cancelled by admin", "job_id", jobID, "admin", senderID)
		return "✅ Reminder " + jobID + " cancelled."
	}
	return "❌ No pending reminder with id " + jobID + "."
}

func reply(to, body string) []model.Command {
	return []model.Command{model.SendMessage{To: to, Body: body}}
}
