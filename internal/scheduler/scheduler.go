// Package scheduler fires reservation reminders at their due time. Jobs
// live in memory only; a restart loses pending reminders, which is an
// accepted trade-off for this deployment.
package scheduler

import (
	"sync"
	"time"

	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// FireFunc delivers a due reminder. It runs on the timer goroutine, so
// implementations must not block for long.
type FireFunc func(job model.ReminderJob)

type entry struct {
	job   model.ReminderJob
	timer *time.Timer
}

type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*entry
	stopped bool

	fire FireFunc
	log  *logger.Logger

	scheduled int64
	fired     int64
	cancelled int64
}

func New(cfg *config.Config, fire FireFunc) *Scheduler {
	return &Scheduler{
		pending: make(map[string]*entry),
		fire:    fire,
		log:     cfg.Log,
	}
}

// Schedule registers a job to fire at job.FireAt. Jobs whose due time is
// not in the future are dropped rather than fired immediately, matching
// bookings made inside the reminder lead window.
func (s *Scheduler) Schedule(job model.ReminderJob) bool {
	delay := time.Until(job.FireAt)
	if delay <= 0 {
		s.log.Info("Reminder due time already passed, not scheduling",
			"job_id", job.ID, "fire_at", job.FireAt)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	job.Status = model.ReminderScheduled
	e := &entry{job: job}
	e.timer = time.AfterFunc(delay, func() { s.onFire(job.ID) })
	s.pending[job.ID] = e
	s.scheduled++

	s.log.Info("Reminder scheduled",
		"job_id", job.ID, "session_id", job.SessionID, "fire_at", job.FireAt)
	return true
}

// onFire removes the job before invoking the callback so cancellation
// racing the timer sees it gone. Delivery is at most once.
func (s *Scheduler) onFire(jobID string) {
	s.mu.Lock()
	e, ok := s.pending[jobID]
	if ok {
		delete(s.pending, jobID)
		s.fired++
	}
	stopped := s.stopped
	s.mu.Unlock()

	if !ok || stopped {
		return
	}
	e.job.Status = model.ReminderFired
	s.fire(e.job)
}

// Cancel stops a pending job. Returns false when the job is unknown or
// has already fired.
func (s *Scheduler) Cancel(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[jobID]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, jobID)
	s.cancelled++

	s.log.Info("Reminder cancelled", "job_id", jobID)
	return true
}

// Pending lists unsent jobs in no particular order.
func (s *Scheduler) Pending() []model.ReminderJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ReminderJob, 0, len(s.pending))
	for _, e := range s.pending {
		out = append(out, e.job)
	}
	return out
}

// Stop cancels all pending timers. No job fires after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
}

// Stats is a lifetime counter snapshot for the admin surface.
type Stats struct {
	Pending   int   `json:"pending"`
	Scheduled int64 `json:"scheduled"`
	Fired     int64 `json:"fired"`
	Cancelled int64 `json:"cancelled"`
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Pending:   len(s.pending),
		Scheduled: s.scheduled,
		Fired:     s.fired,
		Cancelled: s.cancelled,
	}
}
