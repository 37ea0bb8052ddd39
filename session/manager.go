package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/transport"
	"github.com/jinsdrum/petplace/users"
)

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDetails are the account creation fields.
type RegisterDetails struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Name             string   `json:"name"`
	Nickname         string   `json:"nickname,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	PetTypes         []string `json:"pet_types,omitempty"`
	Address          string   `json:"address,omitempty"`
	MarketingConsent bool     `json:"marketing_consent,omitempty"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// authPayload is the atomic login/register response: profile and token pair
// arrive together or not at all.
type authPayload struct {
	User   *users.Profile `json:"user"`
	Tokens tokenPair      `json:"tokens"`
}

// Manager is the single authority for session state: it owns the token pair,
// the cached user profile and the persisted snapshot, and it is the only
// component permitted to write the snapshot. It implements
// transport.TokenProvider for the request pipeline.
type Manager struct {
	api       *transport.Client
	snapshots SnapshotRepo
	nowTime   func() time.Time

	mu         sync.Mutex
	state      State
	session    Session
	generation uint64
	listeners  []func(State)

	refreshGroup singleflight.Group
}

var _ transport.TokenProvider = (*Manager)(nil)

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager initializes a session Manager with required dependencies. The
// api client must be the bare (non-retrying) transport: the manager's own
// calls, the refresh call in particular, must never re-enter the 401 pipeline.
func NewManager(api *transport.Client, snapshots SnapshotRepo, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] api client is required")
	}
	if snapshots == nil {
		return nil, errors.New("[NewManager] snapshot repo is required")
	}

	manager := &Manager{
		api:       api,
		snapshots: snapshots,
		nowTime:   time.Now,
		state:     StateUninitialized,
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// OnStateChange registers a listener invoked after every state transition.
// Listeners are how dependent components observe logout fan-out; they are
// called outside the manager's lock and must not block.
func (m *Manager) OnStateChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Bootstrap reconstructs the session from the persisted snapshot. A present
// snapshot is restored optimistically before the backend confirms it, so the
// caller observes an authenticated state without waiting on the network; the
// token is then validated against /auth/me and the session is torn down if
// the backend rejects it. Loading is over by the time Bootstrap returns.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return errors.New("[Manager.Bootstrap] session already bootstrapped")
	}
	m.state = StateLoading
	m.mu.Unlock()
	m.notify(StateLoading)

	snap, err := m.snapshots.Load()
	if err != nil && !apperrors.Is(err, apperrors.ErrSnapshotNotFound) {
		log.Debug().Err(err).Msg("discarding unreadable session snapshot")
	}
	if err != nil || snap == nil || snap.AccessToken == "" || snap.User == nil {
		_ = m.snapshots.Clear()
		m.becomeAnonymous()
		return nil
	}

	// Optimistic restore: the brief window where a token the backend has
	// already expired is shown as live is an accepted trade-off for instant
	// perceived login.
	m.mu.Lock()
	m.session = Session{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
		CurrentUser:  snap.User,
	}
	m.state = StateAuthenticated
	generation := m.generation
	m.mu.Unlock()
	m.notify(StateAuthenticated)

	if expiry, ok := TokenExpiry(snap.AccessToken); ok && m.nowTime().After(expiry) {
		log.Debug().Time("expired_at", expiry).Msg("restored access token is past its expiry")
	}

	var profile users.Profile
	err = m.api.DoWithToken(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
	}, snap.AccessToken, &profile)
	if err != nil {
		log.Debug().Err(err).Msg("session bootstrap validation failed")
		m.clearIfGeneration(generation)
		return nil
	}

	m.mu.Lock()
	if m.generation != generation || m.session.AccessToken == "" {
		m.mu.Unlock()
		return nil
	}
	m.session.CurrentUser = &profile
	updated := m.snapshotLocked()
	m.mu.Unlock()
	if err := m.snapshots.Save(updated); err != nil {
		log.Debug().Err(err).Msg("failed to persist refreshed profile")
	}
	return nil
}

// Login exchanges credentials for a session. On failure the server's message
// is propagated unchanged and the current session is left untouched.
func (m *Manager) Login(ctx context.Context, credentials Credentials) (*users.Profile, error) {
	if err := ValidateCredentials(credentials); err != nil {
		return nil, err
	}

	var payload authPayload
	if err := m.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   credentials,
	}, &payload); err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] login rejected")
	}

	if err := m.install(payload); err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] installing session")
	}
	return payload.User, nil
}

// Register creates an account and signs the new user in with the returned
// token pair.
func (m *Manager) Register(ctx context.Context, details RegisterDetails) (*users.Profile, error) {
	if err := ValidateRegistration(details); err != nil {
		return nil, err
	}

	var payload authPayload
	if err := m.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   details,
	}, &payload); err != nil {
		return nil, errors.Wrap(err, "[Manager.Register] registration rejected")
	}

	if err := m.install(payload); err != nil {
		return nil, errors.Wrap(err, "[Manager.Register] installing session")
	}
	return payload.User, nil
}

// install atomically replaces the session from a login/register payload.
func (m *Manager) install(payload authPayload) error {
	if payload.User == nil || payload.Tokens.AccessToken == "" || payload.Tokens.RefreshToken == "" {
		return errors.New("incomplete auth payload: user and token pair must arrive together")
	}

	m.mu.Lock()
	m.session = Session{
		AccessToken:  payload.Tokens.AccessToken,
		RefreshToken: payload.Tokens.RefreshToken,
		CurrentUser:  payload.User,
	}
	m.generation++
	m.state = StateAuthenticated
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.snapshots.Save(snap); err != nil {
		log.Debug().Err(err).Msg("failed to persist session snapshot")
	}
	m.notify(StateAuthenticated)
	return nil
}

// Logout clears the in-memory session and the persisted snapshot. It is
// local-only (the backend holds no revocable server-side session) and
// idempotent: calling it twice leaves the same empty state.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.session = Session{}
	m.generation++
	m.state = StateAnonymous
	m.mu.Unlock()

	_ = m.snapshots.Clear()
	m.notify(StateAnonymous)
}

// UpdateProfile merges the given fields into the current profile server-side
// and replaces the cached profile with the backend's authoritative copy.
// Tokens are untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.Profile, error) {
	m.mu.Lock()
	token := m.session.AccessToken
	generation := m.generation
	m.mu.Unlock()
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	var profile users.Profile
	if err := m.api.DoWithToken(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/auth/update-profile",
		Body:   update,
	}, token, &profile); err != nil {
		return nil, errors.Wrap(err, "[Manager.UpdateProfile] update rejected")
	}

	m.mu.Lock()
	if m.generation != generation || m.session.AccessToken == "" {
		// Logged out while the update was in flight; do not resurrect.
		m.mu.Unlock()
		return &profile, nil
	}
	m.session.CurrentUser = &profile
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.snapshots.Save(snap); err != nil {
		log.Debug().Err(err).Msg("failed to persist session snapshot")
	}
	return &profile, nil
}

// ChangePassword updates the account password. The session and tokens are
// unaffected.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	m.mu.Lock()
	token := m.session.AccessToken
	m.mu.Unlock()
	if token == "" {
		return apperrors.ErrNotAuthenticated
	}

	err := m.api.DoWithToken(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/auth/change-password",
		Body: map[string]string{
			"current_password": currentPassword,
			"new_password":     newPassword,
		},
	}, token, nil)
	return errors.Wrap(err, "[Manager.ChangePassword] change rejected")
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token. Concurrent callers share a single in-flight backend call; any
// failure is fatal for the session and clears it the same way Logout does. A
// refresh that resolves after the user has logged out is discarded rather
// than re-applied.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	refreshToken := m.session.RefreshToken
	generation := m.generation
	m.mu.Unlock()
	if refreshToken == "" {
		return "", apperrors.ErrNoRefreshToken
	}

	// The shared flight runs on a context detached from the individual
	// caller: one caller being canceled must not fail the siblings attached
	// to the same flight, and must never tear down a session over a token
	// the backend never rejected. The transport's own timeout still bounds
	// the call.
	flightCtx := context.WithoutCancel(ctx)
	result, err, shared := m.refreshGroup.Do("refresh", func() (any, error) {
		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := m.api.DoWithToken(flightCtx, transport.Request{
			Method: http.MethodPost,
			Path:   "/auth/refresh",
		}, refreshToken, &payload); err != nil {
			return "", err
		}
		if payload.AccessToken == "" {
			return "", errors.New("refresh response carried no access token")
		}
		return payload.AccessToken, nil
	})
	if err != nil {
		log.Debug().Err(err).Bool("shared", shared).Msg("token refresh failed, clearing session")
		m.clearIfGeneration(generation)
		return "", errors.Wrap(err, "[Manager.RefreshAccessToken] refresh rejected")
	}

	accessToken := result.(string)
	m.mu.Lock()
	if m.generation != generation || m.session.RefreshToken == "" {
		// The user logged out while the refresh was in flight; the resolved
		// token must not resurrect the session.
		m.mu.Unlock()
		return "", apperrors.ErrSessionTerminated
	}
	m.session.AccessToken = accessToken
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.snapshots.Save(snap); err != nil {
		log.Debug().Err(err).Msg("failed to persist session snapshot")
	}
	return accessToken, nil
}

// AccessToken returns the current access token, empty when anonymous.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.AccessToken
}

// CurrentUser returns a copy of the cached profile, nil when anonymous.
func (m *Manager) CurrentUser() *users.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.CurrentUser == nil {
		return nil
	}
	profile := *m.session.CurrentUser
	return &profile
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsLoading reports whether the initial bootstrap is still running.
func (m *Manager) IsLoading() bool {
	return m.State() == StateLoading
}

// IsAuthenticated reports whether a validated session is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.session.IsAuthenticated()
}

// IsAdmin reports whether the signed-in user has admin privileges.
func (m *Manager) IsAdmin() bool {
	return m.CurrentUser().IsAdmin()
}

func (m *Manager) becomeAnonymous() {
	m.mu.Lock()
	m.session = Session{}
	m.state = StateAnonymous
	m.mu.Unlock()
	m.notify(StateAnonymous)
}

// clearIfGeneration clears the session and snapshot unless the session has
// already been replaced since the caller sampled its generation.
func (m *Manager) clearIfGeneration(generation uint64) {
	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		return
	}
	m.session = Session{}
	m.generation++
	m.state = StateAnonymous
	m.mu.Unlock()

	_ = m.snapshots.Clear()
	m.notify(StateAnonymous)
}

func (m *Manager) snapshotLocked() *Snapshot {
	return &Snapshot{
		AccessToken:  m.session.AccessToken,
		RefreshToken: m.session.RefreshToken,
		User:         m.session.CurrentUser,
	}
}

func (m *Manager) notify(state State) {
	m.mu.Lock()
	listeners := make([]func(State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}
