package scheduler

import (
	"sync"
	"testing"
	"time"

	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

func testConfig() *config.Config {
	return &config.Config{Log: logger.New(logger.Config{Level: logger.ERROR, Service: "test"})}
}

func TestScheduleFiresOnce(t *testing.T) {
	var mu sync.Mutex
	var fired []model.ReminderJob
	done := make(chan struct{})

	s := New(testConfig(), func(job model.ReminderJob) {
		mu.Lock()
		fired = append(fired, job)
		mu.Unlock()
		close(done)
	})
	defer s.Stop()

	job := model.ReminderJob{
		ID:        "job-1",
		SessionID: "96891234567",
		FireAt:    time.Now().Add(20 * time.Millisecond),
		Payload:   model.ReminderPayload{Name: "Ahmed", Resource: "Snorkeling"},
	}
	if !s.Schedule(job) {
		t.Fatal("expected future job to be accepted")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(fired))
	}
	if fired[0].ID != "job-1" || fired[0].Status != model.ReminderFired {
		t.Errorf("unexpected fired job: %+v", fired[0])
	}

	stats := s.Stats()
	if stats.Fired != 1 || stats.Pending != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestScheduleRejectsPastDueTime(t *testing.T) {
	s := New(testConfig(), func(model.ReminderJob) {
		t.Error("past-due job must not fire")
	})
	defer s.Stop()

	job := model.ReminderJob{ID: "job-1", FireAt: time.Now().Add(-time.Minute)}
	if s.Schedule(job) {
		t.Error("expected past-due job to be rejected")
	}
	if stats := s.Stats(); stats.Scheduled != 0 {
		t.Errorf("expected nothing scheduled, got %+v", stats)
	}
}

func TestCancelPreventsDelivery(t *testing.T) {
	s := New(testConfig(), func(model.ReminderJob) {
		t.Error("cancelled job must not fire")
	})
	defer s.Stop()

	job := model.ReminderJob{ID: "job-1", FireAt: time.Now().Add(50 * time.Millisecond)}
	s.Schedule(job)

	if !s.Cancel("job-1") {
		t.Fatal("expected cancel to succeed")
	}
	if s.Cancel("job-1") {
		t.Error("expected second cancel to report unknown job")
	}
	if s.Cancel("never-existed") {
		t.Error("expected cancel of unknown id to fail")
	}

	time.Sleep(100 * time.Millisecond)

	stats := s.Stats()
	if stats.Cancelled != 1 || stats.Fired != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStopCancelsAllPending(t *testing.T) {
	s := New(testConfig(), func(model.ReminderJob) {
		t.Error("no job may fire after Stop")
	})

	for _, id := range []string{"a", "b", "c"} {
		s.Schedule(model.ReminderJob{ID: id, FireAt: time.Now().Add(50 * time.Millisecond)})
	}
	s.Stop()

	if s.Schedule(model.ReminderJob{ID: "late", FireAt: time.Now().Add(time.Hour)}) {
		t.Error("expected Schedule to refuse after Stop")
	}

	time.Sleep(100 * time.Millisecond)
	if stats := s.Stats(); stats.Pending != 0 {
		t.Errorf("expected no pending jobs after Stop, got %+v", stats)
	}
}

func TestPendingSnapshot(t *testing.T) {
	s := New(testConfig(), func(model.ReminderJob) {})
	defer s.Stop()

	s.Schedule(model.ReminderJob{ID: "a", FireAt: time.Now().Add(time.Hour)})
	s.Schedule(model.ReminderJob{ID: "b", FireAt: time.Now().Add(2 * time.Hour)})

	pending := s.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending jobs, got %d", len(pending))
	}
	for _, job := range pending {
		if job.Status != model.ReminderScheduled {
			t.Errorf("expected scheduled status, got %s", job.Status)
		}
	}
}
