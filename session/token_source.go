package session

import (
	"golang.org/x/oauth2"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
)

// TokenSource returns an oauth2.TokenSource view of the session so HTTP
// stacks that speak x/oauth2 can consume the session's credentials.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{m: m}
}

type tokenSource struct {
	m *Manager
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	token := ts.m.AccessToken()
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
