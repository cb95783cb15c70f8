package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/core/ports"
	"github.com/brightpixel/rolodex/internal/pkg/metrics"
)

// State owns every record and token the service knows about. A single lock
// guards the staff roster, the participants and the active-token table.
type State struct {
	mu           sync.RWMutex
	staff        map[int]*domain.Staff
	participants map[string]*domain.Participant
	tokens       map[string]domain.TokenEntry

	// persistMu orders snapshot writes. It is taken before mu is released so
	// writes land in mutation order.
	persistMu sync.Mutex
	store     ports.SnapshotStore
	log       zerolog.Logger
}

// NewState builds the service state from the loaded staff roster and either a
// restored snapshot or the pristine participant set. A nil store disables
// persistence.
func NewState(staff []domain.Staff, snap *domain.Snapshot, store ports.SnapshotStore, log zerolog.Logger) *State {
	s := &State{
		staff:        make(map[int]*domain.Staff, len(staff)),
		participants: make(map[string]*domain.Participant),
		tokens:       make(map[string]domain.TokenEntry),
		store:        store,
		log:          log,
	}
	for i := range staff {
		rec := staff[i]
		s.staff[rec.UID] = &rec
	}
	if snap != nil {
		for username, p := range snap.Participants {
			s.participants[username] = p.Clone()
		}
		maps.Copy(s.tokens, snap.Tokens)
	}
	return s
}

// participantForToken returns the record owning a token entry. Caller holds mu.
func (s *State) participantForToken(entry domain.TokenEntry) (*domain.Participant, bool) {
	p, ok := s.participants[entry.Username]
	return p, ok
}

// view runs fn under the read lock.
func (s *State) view(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// mutate runs fn under the write lock. When fn reports a change, the whole
// state is captured and written to the store before mutate returns. The write
// itself happens after the state lock is released.
func (s *State) mutate(ctx context.Context, fn func() (bool, error)) error {
	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	if s.store == nil {
		s.mu.Unlock()
		return nil
	}
	snap := s.snapshotLocked()
	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	return s.save(context.WithoutCancel(ctx), snap)
}

func (s *State) save(ctx context.Context, snap *domain.Snapshot) error {
	start := time.Now()
	err := s.store.Save(ctx, snap)
	metrics.SnapshotWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SnapshotWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("save snapshot: %w", err)
	}
	metrics.SnapshotWritesTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Int("participants", len(snap.Participants)).Int("tokens", len(snap.Tokens)).Msg("saved participant data")
	return nil
}

// snapshotLocked copies the mutable state. Caller holds mu.
func (s *State) snapshotLocked() *domain.Snapshot {
	snap := &domain.Snapshot{
		Participants: make(map[string]*domain.Participant, len(s.participants)),
		Tokens:       maps.Clone(s.tokens),
	}
	for username, p := range s.participants {
		snap.Participants[username] = p.Clone()
	}
	return snap
}
