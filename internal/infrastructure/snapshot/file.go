// Package snapshot stores the service state as a single JSON file.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

// FileStore writes the whole snapshot to one file on every save. Writes are
// not atomic: a crash mid-write can leave a truncated file behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(_ context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Ping checks that the snapshot directory exists.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

// Decode parses a JSON snapshot document. Missing maps are replaced with
// empty ones. A null participant record is rejected.
func Decode(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Participants == nil {
		snap.Participants = make(map[string]*domain.Participant)
	}
	for username, p := range snap.Participants {
		if p == nil {
			return nil, fmt.Errorf("decode snapshot: participant %q has no record", username)
		}
	}
	if snap.Tokens == nil {
		snap.Tokens = make(map[string]domain.TokenEntry)
	}
	return &snap, nil
}
