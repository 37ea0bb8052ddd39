package snapshotrepo

import (
	"sync"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/session"
)

// MemoryRepo is an in-memory snapshot store for tests and for callers that
// want a session scoped to the process lifetime.
type MemoryRepo struct {
	mu       sync.Mutex
	snapshot *session.Snapshot
}

var _ session.SnapshotRepo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Load() (*session.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return nil, apperrors.ErrSnapshotNotFound
	}
	snapshot := *r.snapshot
	return &snapshot, nil
}

func (r *MemoryRepo) Save(snapshot *session.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *snapshot
	r.snapshot = &copied
	return nil
}

func (r *MemoryRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
	return nil
}
