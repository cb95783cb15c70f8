package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/pkg/metrics"
)

// AuthService issues, validates and resolves access tokens.
type AuthService struct {
	state *State
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

func NewAuthService(state *State, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = domain.AccessTokenLifetime
	}
	return &AuthService{state: state, ttl: ttl, log: log, now: time.Now}
}

// IssueToken authenticates a participant and hands out a fresh token. Any
// previously issued token of that participant stops validating.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (*domain.IssuedToken, error) {
	username = domain.NormalizeUsername(username)

	// 1. Credential check. Stored hashes never change, so the comparison runs
	//    outside the lock.
	var stored string
	_ = s.state.view(func() error {
		if p, ok := s.state.participants[username]; ok {
			stored = p.Password
		}
		return nil
	})
	if stored == "" || !checkPassword(stored, password) {
		metrics.TokensIssuedTotal.WithLabelValues("rejected").Inc()
		s.log.Debug().Str("username", username).Msg("rejected credentials")
		return nil, domain.ErrBadCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	var issued *domain.IssuedToken
	err = s.state.mutate(ctx, func() (bool, error) {
		p, ok := s.state.participants[username]
		if !ok {
			return false, domain.ErrBadCredentials
		}

		// 2. Revoke the previous token, if any.
		if p.Token != nil {
			delete(s.state.tokens, *p.Token)
		}

		// 3. Record the new one.
		entry := domain.TokenEntry{
			Username: username,
			UID:      p.UID,
			Expires:  s.now().Add(s.ttl).Unix(),
		}
		s.state.tokens[token] = entry
		p.Token = &token

		issued = &domain.IssuedToken{Token: token, UID: entry.UID, Expires: entry.Expires}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues("issued").Inc()
	s.log.Debug().Str("username", username).Int("uid", issued.UID).Msg("issued access token")
	return issued, nil
}

// ValidateToken returns the entry of a known, unexpired token.
func (s *AuthService) ValidateToken(_ context.Context, token string) (domain.TokenEntry, error) {
	var entry domain.TokenEntry
	err := s.state.view(func() error {
		var err error
		entry, err = s.activeEntry(token)
		return err
	})
	return entry, err
}

// Authorize validates a token and resolves its owner. Privilege is derived
// from the owner's current position on every call.
func (s *AuthService) Authorize(_ context.Context, token string) (*domain.Principal, error) {
	var principal *domain.Principal
	err := s.state.view(func() error {
		entry, err := s.activeEntry(token)
		if err != nil {
			return err
		}
		p, ok := s.state.participantForToken(entry)
		if !ok {
			return domain.ErrBadToken
		}
		principal = &domain.Principal{UID: p.UID, Username: p.Username, Privileged: p.Privileged()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if principal.Privileged {
		metrics.PrivilegedCallsTotal.Inc()
		s.log.Info().Str("username", principal.Username).Msg("privileged call")
	}
	return principal, nil
}

// activeEntry looks up a token that has not expired yet. Expired entries are
// left in the table. Caller holds the state lock.
func (s *AuthService) activeEntry(token string) (domain.TokenEntry, error) {
	entry, ok := s.state.tokens[token]
	if !ok || entry.Expired(s.now()) {
		return domain.TokenEntry{}, domain.ErrBadToken
	}
	return entry, nil
}
