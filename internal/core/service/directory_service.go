package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/pkg/metrics"
)

// DirectoryService implements listing, lookup and self-edit of records.
type DirectoryService struct {
	state   *State
	log     zerolog.Logger
	shuffle func(n int, swap func(i, j int))
}

func NewDirectoryService(state *State, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{state: state, log: log, shuffle: rand.Shuffle}
}

// List returns every staff entry plus the caller's own full entry, in a
// different random order on each call.
func (s *DirectoryService) List(_ context.Context, p *domain.Principal) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := s.state.view(func() error {
		own, ok := s.state.participants[p.Username]
		if !ok {
			return domain.ErrBadToken
		}
		entries = make([]domain.Entry, 0, len(s.state.staff)+1)
		for _, st := range s.state.staff {
			entries = append(entries, st.View(p.Privileged))
		}
		entries = append(entries, own.View())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	return entries, nil
}

// Get returns the caller's own full entry or a staff entry. Other
// participants are never visible.
func (s *DirectoryService) Get(_ context.Context, p *domain.Principal, uid int) (domain.Entry, error) {
	var entry domain.Entry
	err := s.state.view(func() error {
		if uid == p.UID {
			own, ok := s.state.participants[p.Username]
			if !ok {
				return domain.ErrBadToken
			}
			entry = own.View()
			return nil
		}
		if st, ok := s.state.staff[uid]; ok {
			entry = st.View(p.Privileged)
			return nil
		}
		return domain.ErrUserNotFound
	})
	return entry, err
}

// Update merges a JSON object of attribute changes into the caller's own
// record. Editing anyone else is rejected, privileged or not.
func (s *DirectoryService) Update(ctx context.Context, p *domain.Principal, uid int, body []byte) error {
	// 1. Ownership.
	if uid != p.UID {
		if p.Privileged {
			metrics.RecordUpdatesTotal.WithLabelValues("not_implemented").Inc()
			return domain.ErrNotImplemented
		}
		metrics.RecordUpdatesTotal.WithLabelValues("forbidden").Inc()
		return domain.ErrForbidden
	}

	// 2. Payload shape and attribute whitelist.
	changes, err := domain.ParseChanges(body)
	if err == nil {
		err = changes.Validate()
	}
	if err != nil {
		metrics.RecordUpdatesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	// 3. Merge against the current record and swap it in.
	err = s.state.mutate(ctx, func() (bool, error) {
		current, ok := s.state.participants[p.Username]
		if !ok {
			return false, domain.ErrBadToken
		}
		next, changed := current.Merge(changes)
		if !changed {
			return false, domain.ErrNotModified
		}
		s.state.participants[p.Username] = next
		return true, nil
	})
	switch {
	case errors.Is(err, domain.ErrNotModified):
		metrics.RecordUpdatesTotal.WithLabelValues("not_modified").Inc()
		return err
	case err != nil:
		return err
	}

	metrics.RecordUpdatesTotal.WithLabelValues("updated").Inc()
	s.log.Info().Str("username", p.Username).Int("uid", uid).Int("changes", len(changes)).Msg("record updated")
	return nil
}
