// Package session holds per-sender conversation state in memory with a
// sliding TTL. A background sweeper evicts idle sessions and rolls back
// any capacity held by an unconfirmed reservation.
package session

import (
	"sync"
	"time"

	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// CapacityReleaser is the ledger-facing hook the sweeper uses to return
// seats held by abandoned bookings.
type CapacityReleaser interface {
	Release(key model.SlotKey, partySize int)
}

// ReminderCanceller cancels a pending reminder when its session is
// evicted mid-flow.
type ReminderCanceller interface {
	Cancel(jobID string) bool
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	ttl       time.Duration
	ledger    CapacityReleaser
	reminders ReminderCanceller
	log       *logger.Logger

	swept  int64
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewStore(cfg *config.Config, ledger CapacityReleaser, reminders ReminderCanceller) *Store {
	return &Store{
		sessions:  make(map[string]*model.Session),
		ttl:       cfg.SessionTTL,
		ledger:    ledger,
		reminders: reminders,
		log:       cfg.Log,
		stopCh:    make(chan struct{}),
	}
}

// Get returns a copy of the session for id, or false if none exists.
// Callers mutate through Update so reads never race writers.
func (s *Store) Get(id string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	return cloneSession(sess), true
}

// CreateOrReset replaces any existing session for id with a fresh one in
// the given state. Capacity held by an unconfirmed reservation on the old
// session is released first.
func (s *Store) CreateOrReset(id string, state model.State, language string) model.Session {
	now := time.Now()

	s.mu.Lock()
	if old, ok := s.sessions[id]; ok {
		s.rollback(old)
	}
	sess := &model.Session{
		ID:             id,
		State:          state,
		FlowKind:       model.FlowBooking,
		Language:       language,
		Fields:         make(map[model.FieldKey]string),
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.ttl),
	}
	s.sessions[id] = sess
	out := cloneSession(sess)
	s.mu.Unlock()

	return out
}

// Update applies a patch to the session for id and refreshes its TTL.
// Returns false if the session no longer exists.
func (s *Store) Update(id string, patch model.SessionPatch) (model.Session, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, false
	}

	if patch.State != nil {
		sess.State = *patch.State
	}
	if patch.FlowKind != nil {
		sess.FlowKind = *patch.FlowKind
	}
	if patch.Language != nil {
		sess.Language = *patch.Language
	}
	for k, v := range patch.Fields {
		sess.Fields[k] = v
	}
	if patch.ClearReservation {
		sess.Reservation = nil
	} else if patch.Reservation != nil {
		res := *patch.Reservation
		sess.Reservation = &res
	}
	if patch.ReminderID != nil {
		sess.ReminderID = *patch.ReminderID
	}
	sess.LastActivityAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	return cloneSession(sess), true
}

// Delete removes the session for id without touching the ledger. Used
// when the caller has already settled the reservation.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep evicts sessions whose ExpiresAt is at or before now, rolling back
// unconfirmed reservations and pending reminders. Returns the eviction
// count. Completed sessions keep their confirmed reservation; expiry just
// forgets the conversation.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	var evicted []*model.Session
	for id, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			evicted = append(evicted, sess)
			delete(s.sessions, id)
		}
	}
	s.swept += int64(len(evicted))
	s.mu.Unlock()

	for _, sess := range evicted {
		s.rollback(sess)
	}
	if len(evicted) > 0 {
		s.log.Info("Swept expired sessions", "count", len(evicted))
	}
	return len(evicted)
}

// rollback releases capacity held by an unconfirmed reservation and
// cancels a pending reminder for a session leaving the store mid-flow.
// Confirmed reservations and their reminders survive eviction.
func (s *Store) rollback(sess *model.Session) {
	if sess.Reservation != nil && !sess.Reservation.Confirmed {
		s.ledger.Release(sess.Reservation.Slot, sess.Reservation.PartySize)
		if sess.ReminderID != "" && s.reminders != nil {
			s.reminders.Cancel(sess.ReminderID)
		}
	}
}

// StartSweeper runs Sweep on the given interval until Stop is called.
func (s *Store) StartSweeper(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(time.Now())
			case <-s.stopCh:
				return
			}
		}
	}()
}

func (s *Store) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// Stats is a point-in-time summary for the admin surface.
type Stats struct {
	Active int   `json:"active"`
	Swept  int64 `json:"swept"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Active: len(s.sessions), Swept: s.swept}
}

// Snapshot lists copies of all live sessions, for the inspection API.
func (s *Store) Snapshot() []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, cloneSession(sess))
	}
	return out
}

func cloneSession(sess *model.Session) model.Session {
	out := *sess
	out.Fields = make(map[model.FieldKey]string, len(sess.Fields))
	for k, v := range sess.Fields {
		out.Fields[k] = v
	}
	if sess.Reservation != nil {
		res := *sess.Reservation
		out.Reservation = &res
	}
	return out
}
