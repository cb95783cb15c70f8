package ports

import (
	"context"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

// AuthService issues access tokens and resolves them to principals.
type AuthService interface {
	IssueToken(ctx context.Context, username, password string) (*domain.IssuedToken, error)
	Authorize(ctx context.Context, token string) (*domain.Principal, error)
}
