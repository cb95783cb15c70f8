package ports

import (
	"context"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

// SnapshotStore persists the whole mutable state.
type SnapshotStore interface {
	Save(ctx context.Context, snap *domain.Snapshot) error
	// Load returns domain.ErrSnapshotNotFound when nothing was saved yet.
	Load(ctx context.Context) (*domain.Snapshot, error)
	Ping(ctx context.Context) error
}
