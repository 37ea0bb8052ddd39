// Package snapshotrepo provides persisted session snapshot stores: a
// file-backed store for real use and an in-memory store for tests.
package snapshotrepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/session"
)

const snapshotFileName = "session.json"

// FileRepo stores the session snapshot as a JSON file under a data folder.
// It is the desktop analog of the browser's local storage: one writer, one
// process, last write wins.
type FileRepo struct {
	path string
	mu   sync.Mutex
}

var _ session.SnapshotRepo = (*FileRepo)(nil)

// NewFileRepo creates a FileRepo rooted at the given folder, creating the
// folder if needed.
func NewFileRepo(folder string) (*FileRepo, error) {
	if folder == "" {
		return nil, errors.New("[NewFileRepo] folder is required")
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileRepo] creating data folder")
	}
	return &FileRepo{path: filepath.Join(folder, snapshotFileName)}, nil
}

// Load reads the persisted snapshot. A missing file yields
// apperrors.ErrSnapshotNotFound; an unreadable one ErrSnapshotCorrupt.
func (r *FileRepo) Load() (*session.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, errors.Wrap(err, "[FileRepo.Load] reading snapshot")
	}

	var snapshot session.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(apperrors.ErrSnapshotCorrupt, err.Error())
	}
	return &snapshot, nil
}

// Save writes the snapshot atomically (temp file + rename) with owner-only
// permissions, since it carries live credentials.
func (r *FileRepo) Save(snapshot *session.Snapshot) error {
	if snapshot == nil {
		return errors.New("[FileRepo.Save] snapshot is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] encoding snapshot")
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] writing snapshot")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] replacing snapshot")
	}
	return nil
}

// Clear removes the snapshot file. Clearing an absent snapshot is a no-op.
func (r *FileRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] removing snapshot")
	}
	return nil
}
