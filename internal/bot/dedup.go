package bot

import (
	"sync"
	"time"
)

// DedupStore suppresses webhook redeliveries by platform message ID.
// Entries expire after a TTL; a background goroutine prunes them.
type DedupStore struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewDedupStore(ttl time.Duration) *DedupStore {
	s := &DedupStore{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.cleanup()
	return s
}

// FirstSeen records the ID and reports whether this is its first
// appearance within the TTL.
func (s *DedupStore) FirstSeen(id string) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if at, ok := s.seen[id]; ok && now.Sub(at) < s.ttl {
		return false
	}
	s.seen[id] = now
	return true
}

func (s *DedupStore) cleanup() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, at := range s.seen {
				if now.Sub(at) >= s.ttl {
					delete(s.seen, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *DedupStore) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
