package ports

import (
	"context"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

// DirectoryService serves listing, lookup and self-edit of directory records.
type DirectoryService interface {
	List(ctx context.Context, p *domain.Principal) ([]domain.Entry, error)
	Get(ctx context.Context, p *domain.Principal, uid int) (domain.Entry, error)
	// Update applies a JSON object body of attribute changes to the caller's
	// own record. It returns domain.ErrNotModified when nothing changed.
	Update(ctx context.Context, p *domain.Principal, uid int, body []byte) error
}
