package snapshotrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/session"
	"github.com/jinsdrum/petplace/session/snapshotrepo"
	"github.com/jinsdrum/petplace/users"
)

func TestFileRepoSaveAndLoad(t *testing.T) {
	repo, err := snapshotrepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	want := &session.Snapshot{
		AccessToken:  "T1",
		RefreshToken: "R1",
		User:         &users.Profile{ID: 1, Email: "alice@example.com", Name: "Alice"},
	}
	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileRepoLoadWithoutSnapshot(t *testing.T) {
	repo, err := snapshotrepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrSnapshotNotFound)
}

func TestFileRepoLoadCorruptSnapshot(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "session.json"), []byte("not json"), 0o600))

	repo, err := snapshotrepo.NewFileRepo(folder)
	require.NoError(t, err)

	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrSnapshotCorrupt)
}

func TestFileRepoClearIsIdempotent(t *testing.T) {
	repo, err := snapshotrepo.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(&session.Snapshot{AccessToken: "T1"}))
	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())

	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrSnapshotNotFound)
}

func TestFileRepoSnapshotIsOwnerOnly(t *testing.T) {
	folder := t.TempDir()
	repo, err := snapshotrepo.NewFileRepo(folder)
	require.NoError(t, err)
	require.NoError(t, repo.Save(&session.Snapshot{AccessToken: "T1", RefreshToken: "R1"}))

	info, err := os.Stat(filepath.Join(folder, "session.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileRepoRequiresFolder(t *testing.T) {
	_, err := snapshotrepo.NewFileRepo("")
	require.Error(t, err)
}

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepo()

	_, err := repo.Load()
	require.ErrorIs(t, err, apperrors.ErrSnapshotNotFound)

	saved := &session.Snapshot{AccessToken: "T1", User: &users.Profile{ID: 7}}
	require.NoError(t, repo.Save(saved))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, saved, got)

	// The store hands out copies; mutating one must not affect the other.
	got.AccessToken = "changed"
	again, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "T1", again.AccessToken)

	require.NoError(t, repo.Clear())
	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrSnapshotNotFound)
}
