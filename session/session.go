package session

import (
	"github.com/jinsdrum/petplace/users"
)

// State is the lifecycle state of the session.
// Uninitialized -> Loading -> {Authenticated, Anonymous}; Authenticated falls
// back to Anonymous on logout or refresh failure, and Anonymous becomes
// Authenticated only through a successful login or registration.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Session is the in-memory authenticated state of the running application.
// Invariant: CurrentUser is non-nil if and only if AccessToken is non-empty.
type Session struct {
	AccessToken  string
	RefreshToken string
	CurrentUser  *users.Profile
}

// IsAuthenticated reports whether the session holds both a token and the
// profile that validated it.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != "" && s.CurrentUser != nil
}

// Snapshot is the durable copy of the session that survives a restart. It is
// the bootstrap source of truth until re-validated against the backend.
type Snapshot struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.Profile `json:"user"`
}

// SnapshotRepo persists the session snapshot. Only the session manager writes
// through it; writes are last-write-wins with a single-writer assumption.
// Load returns apperrors.ErrSnapshotNotFound when no snapshot exists.
type SnapshotRepo interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Clear() error
}
