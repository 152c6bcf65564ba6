// Package ledger tracks reserved versus maximum occupancy per bookable
// slot. It is the only shared mutable state in the service; every counter
// change goes through a per-slot lock so reserved never exceeds capacity
// and never drops below zero.
package ledger

import (
	"sort"
	"sync"
	"time"

	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

type slot struct {
	mu       sync.Mutex
	capacity int
	reserved int
}

// ReserveResult reports the outcome of a check-and-reserve attempt.
// AvailableBefore is the remaining room at the moment of the attempt.
type ReserveResult struct {
	OK              bool
	AvailableBefore int
	Capacity        int
}

type Ledger struct {
	mu    sync.RWMutex
	slots map[model.SlotKey]*slot

	cfg *config.Config
	log *logger.Logger
}

func New(cfg *config.Config) *Ledger {
	return &Ledger{
		slots: make(map[model.SlotKey]*slot),
		cfg:   cfg,
		log:   cfg.Log,
	}
}

// slotFor returns the entry for key, lazily creating it with the catalog
// capacity on first use. Slots are never deleted.
func (l *Ledger) slotFor(key model.SlotKey) *slot {
	l.mu.RLock()
	s, ok := l.slots[key]
	l.mu.RUnlock()
	if ok {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok = l.slots[key]; ok {
		return s
	}

	capacity := 1
	if tour, ok := l.cfg.Tour(key.Resource); ok {
		capacity = tour.Capacity
	}
	s = &slot{capacity: capacity}
	l.slots[key] = s
	return s
}

// CheckAndReserve atomically verifies reserved+partySize <= capacity and,
// if so, takes the seats. The slot lock is held only for the counter
// check and increment.
func (l *Ledger) CheckAndReserve(key model.SlotKey, partySize int) ReserveResult {
	s := l.slotFor(key)

	s.mu.Lock()
	available := s.capacity - s.reserved
	ok := partySize > 0 && partySize <= available
	if ok {
		s.reserved += partySize
	}
	s.mu.Unlock()

	if !ok {
		l.log.Info("Reservation rejected, slot full",
			"slot", key.String(),
			"party_size", partySize,
			"available", available,
		)
	}
	return ReserveResult{OK: ok, AvailableBefore: available, Capacity: s.capacity}
}

// Release returns seats taken by a cancelled or abandoned booking. The
// counter never underflows below zero.
func (l *Ledger) Release(key model.SlotKey, partySize int) {
	s := l.slotFor(key)

	s.mu.Lock()
	s.reserved -= partySize
	if s.reserved < 0 {
		s.reserved = 0
	}
	s.mu.Unlock()

	l.log.Info("Capacity released", "slot", key.String(), "party_size", partySize)
}

// SuggestAlternatives scans forward day by day from the given day
// (inclusive) and returns up to three chronologically ordered slots with
// enough remaining room for partySize.
func (l *Ledger) SuggestAlternatives(resource string, partySize int, from time.Time, windowDays int) []model.SlotAvailability {
	const maxSuggestions = 3

	var out []model.SlotAvailability
	for day := 0; day < windowDays && len(out) < maxSuggestions; day++ {
		date := from.AddDate(0, 0, day).Format(model.DateLayout)
		for _, timeslot := range l.cfg.Timeslots {
			key := model.SlotKey{Resource: resource, Date: date, Timeslot: timeslot}
			s := l.slotFor(key)

			s.mu.Lock()
			remaining := s.capacity - s.reserved
			capacity := s.capacity
			s.mu.Unlock()

			if remaining >= partySize {
				out = append(out, model.SlotAvailability{
					Key:       key,
					Remaining: remaining,
					Capacity:  capacity,
				})
				if len(out) == maxSuggestions {
					break
				}
			}
		}
	}
	return out
}

// Stats is an aggregate snapshot for the admin surface.
type Stats struct {
	Slots         int `json:"slots"`
	SeatsReserved int `json:"seats_reserved"`
	SeatsCapacity int `json:"seats_capacity"`
}

func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Stats{Slots: len(l.slots)}
	for _, s := range l.slots {
		s.mu.Lock()
		stats.SeatsReserved += s.reserved
		stats.SeatsCapacity += s.capacity
		s.mu.Unlock()
	}
	return stats
}

// Reserved reports the current reserved count for a slot. Intended for
// tests and the admin surface.
func (l *Ledger) Reserved(key model.SlotKey) int {
	s := l.slotFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved
}

// Occupancy lists non-empty slots sorted chronologically, for the admin
// stats command.
func (l *Ledger) Occupancy() []model.SlotAvailability {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []model.SlotAvailability
	for key, s := range l.slots {
		s.mu.Lock()
		if s.reserved > 0 {
			out = append(out, model.SlotAvailability{
				Key:       key,
				Remaining: s.capacity - s.reserved,
				Capacity:  s.capacity,
			})
		}
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Date != out[j].Key.Date {
			return out[i].Key.Date < out[j].Key.Date
		}
		if out[i].Key.Resource != out[j].Key.Resource {
			return out[i].Key.Resource < out[j].Key.Resource
		}
		return out[i].Key.Timeslot < out[j].Key.Timeslot
	})
	return out
}
