package admin

import (
	"strings"
	"testing"
	"time"

	"marsa/internal/dispatch"
	"marsa/internal/ledger"
	"marsa/internal/scheduler"
	"marsa/internal/session"
	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

func newSurface(t *testing.T) (*Surface, *scheduler.Scheduler, *ledger.Ledger) {
	t.Helper()
	cfg := &config.Config{
		Tours:      config.DefaultTours,
		Timeslots:  config.DefaultTimeslots,
		SessionTTL: time.Hour,
		Log:        logger.New(logger.Config{Level: logger.ERROR, Service: "test"}),
	}
	led := ledger.New(cfg)
	sched := scheduler.New(cfg, func(model.ReminderJob) {})
	t.Cleanup(sched.Stop)
	sessions := session.NewStore(cfg, led, sched)
	disp := dispatch.New(cfg, nil, nil, sched, led)
	return New(cfg, led, sessions, sched, disp), sched, led
}

func body(t *testing.T, cmds []model.Command) string {
	t.Helper()
	if len(cmds) != 1 {
		t.Fatalf("expected one reply, got %d commands", len(cmds))
	}
	msg, ok := cmds[0].(model.SendMessage)
	if !ok {
		t.Fatalf("expected SendMessage, got %T", cmds[0])
	}
	return msg.Body
}

func TestStatsCommand(t *testing.T) {
	s, _, led := newSurface(t)
	led.CheckAndReserve(model.SlotKey{Resource: "Snorkeling", Date: "2026-09-10", Timeslot: "8:00 AM"}, 2)

	cmds, handled := s.HandleCommand("+96899999999", "stats")
	if !handled {
		t.Fatal("expected stats to be handled")
	}
	text := body(t, cmds)
	if !strings.Contains(text, "2/6 reserved") {
		t.Errorf("expected seat counters in stats, got %q", text)
	}
}

func TestReminderListAndCancel(t *testing.T) {
	s, sched, _ := newSurface(t)

	cmds, handled := s.HandleCommand("+96899999999", "reminder")
	if !handled || !strings.Contains(body(t, cmds), "No pending") {
		t.Error("expected empty pending list")
	}

	sched.Schedule(model.ReminderJob{
		ID:     "job-1",
		FireAt: time.Now().Add(time.Hour),
		Payload: model.ReminderPayload{
			Resource: "Snorkeling", Date: "2026-09-10", Timeslot: "8:00 AM",
		},
	})

	cmds, _ = s.HandleCommand("+96899999999", "reminder")
	if !strings.Contains(body(t, cmds), "job-1") {
		t.Error("expected job-1 in listing")
	}

	cmds, _ = s.HandleCommand("+96899999999", "reminder job-1")
	if !strings.Contains(body(t, cmds), "cancelled") {
		t.Error("expected cancellation confirmation")
	}
	if sched.Cancel("job-1") {
		t.Error("expected job already gone")
	}

	cmds, _ = s.HandleCommand("+96899999999", "reminder job-1")
	if !strings.Contains(body(t, cmds), "No pending reminder") {
		t.Error("expected unknown-job reply")
	}
}

func TestNonCommandsFallThrough(t *testing.T) {
	s, _, _ := newSurface(t)

	for _, text := range []string{"hello", "book a tour", "", "statsplease", "reminder one two"} {
		if _, handled := s.HandleCommand("+96899999999", text); handled {
			t.Errorf("expected %q to fall through", text)
		}
	}

	if _, handled := s.HandleCommand("+96899999999", "help"); !handled {
		t.Error("expected help to be handled")
	}
}
