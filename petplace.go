// Package petplace is a Go client for the PetPlace pet-friendly-facility
// directory API: authentication with transparent token refresh, facility
// search, reviews, the blog and the affiliate marketing endpoints.
package petplace

import (
	"net/http"

	"github.com/jinsdrum/petplace/affiliate"
	"github.com/jinsdrum/petplace/blog"
	"github.com/jinsdrum/petplace/businesses"
	"github.com/jinsdrum/petplace/reviews"
	"github.com/jinsdrum/petplace/session"
	"github.com/jinsdrum/petplace/session/snapshotrepo"
	"github.com/jinsdrum/petplace/transport"
	"github.com/jinsdrum/petplace/users"
	"github.com/pkg/errors"
)

// Client bundles the session manager with the resource services. All
// services share one authenticated request pipeline backed by the session
// manager, so an expired access token is refreshed once for everyone.
type Client struct {
	Session    *session.Manager
	Users      *users.Service
	Businesses *businesses.Service
	Reviews    *reviews.Service
	Blog       *blog.Service
	Affiliate  *affiliate.Service
}

type settings struct {
	httpClient *http.Client
	userAgent  string
	snapshots  session.SnapshotRepo
	dataFolder string
}

// Option defines a function type to modify the client settings.
type Option func(*settings)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// WithSnapshotRepo supplies a custom persisted-session store.
func WithSnapshotRepo(repo session.SnapshotRepo) Option {
	return func(s *settings) {
		s.snapshots = repo
	}
}

// WithDataFolder persists the session snapshot as a file under the given
// folder, so the session survives process restarts. Without this (or a
// custom repo) the session lives only as long as the process.
func WithDataFolder(folder string) Option {
	return func(s *settings) {
		s.dataFolder = folder
	}
}

// New creates a Client for the given API base URL (including the /api
// prefix, e.g. "http://localhost:8000/api").
func New(baseURL string, options ...Option) (*Client, error) {
	var cfg settings
	for _, opt := range options {
		opt(&cfg)
	}

	var transportOptions []transport.Option
	if cfg.httpClient != nil {
		transportOptions = append(transportOptions, transport.WithHTTPClient(cfg.httpClient))
	}
	if cfg.userAgent != "" {
		transportOptions = append(transportOptions, transport.WithUserAgent(cfg.userAgent))
	}

	base, err := transport.New(baseURL, transportOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[petplace.New] creating transport")
	}

	snapshots := cfg.snapshots
	if snapshots == nil {
		if cfg.dataFolder != "" {
			snapshots, err = snapshotrepo.NewFileRepo(cfg.dataFolder)
			if err != nil {
				return nil, errors.Wrap(err, "[petplace.New] creating snapshot store")
			}
		} else {
			snapshots = snapshotrepo.NewMemoryRepo()
		}
	}

	manager, err := session.NewManager(base, snapshots)
	if err != nil {
		return nil, errors.Wrap(err, "[petplace.New] creating session manager")
	}

	authed := transport.NewAuthClient(base, manager)

	return &Client{
		Session:    manager,
		Users:      users.NewService(authed),
		Businesses: businesses.NewService(authed),
		Reviews:    reviews.NewService(authed),
		Blog:       blog.NewService(authed),
		Affiliate:  affiliate.NewService(authed),
	}, nil
}
