package transport

import (
	"context"
	"net/http"
)

// TokenProvider supplies the pipeline with the current access token and a way
// to obtain a fresh one after the backend has rejected it. The session manager
// implements it; RefreshAccessToken must de-duplicate concurrent callers.
type TokenProvider interface {
	AccessToken() string
	RefreshAccessToken(ctx context.Context) (string, error)
}

// AuthClient decorates every outbound request with the current access token
// and transparently recovers from a single expired-token rejection: a 401 on
// the first attempt triggers a refresh through the TokenProvider followed by
// exactly one retry. A 401 on the retry, and every non-401 failure, is
// surfaced to the caller unchanged.
type AuthClient struct {
	client *Client
	tokens TokenProvider
}

// NewAuthClient wires the pipeline around a base Client and a TokenProvider.
func NewAuthClient(client *Client, tokens TokenProvider) *AuthClient {
	return &AuthClient{client: client, tokens: tokens}
}

// Do runs the request through the full pipeline.
func (a *AuthClient) Do(ctx context.Context, req Request, out any) error {
	return a.do(ctx, req, out, 0)
}

// attempt is carried explicitly instead of being flagged on the request, so a
// retry never mutates shared request state; each attempt builds a brand new
// *http.Request.
func (a *AuthClient) do(ctx context.Context, req Request, out any, attempt int) error {
	err := a.client.do(ctx, req, a.tokens.AccessToken(), out)
	if err == nil || attempt > 0 || StatusCode(err) != http.StatusUnauthorized {
		return err
	}

	if _, refreshErr := a.tokens.RefreshAccessToken(ctx); refreshErr != nil {
		// The session manager has already torn the session down at this
		// point; surface the original rejection to the caller.
		return err
	}
	return a.do(ctx, req, out, attempt+1)
}
