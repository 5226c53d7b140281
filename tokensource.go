package yandexid

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// TokenSource returns an oauth2.TokenSource backed by this client's refresh
// flow, so Yandex tokens can feed any library built on x/oauth2. The source
// reuses the token until it expires, then refreshes it once and caches the
// result. It is safe for concurrent use.
func (c *OAuthClient) TokenSource(ctx context.Context, token *Token) oauth2.TokenSource {
	return &refreshTokenSource{ctx: ctx, client: c, token: token}
}

type refreshTokenSource struct {
	ctx    context.Context
	client *OAuthClient

	mu    sync.Mutex
	token *Token
}

// Token implements oauth2.TokenSource.
func (s *refreshTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.Valid() {
		return s.token.OAuth2Token(), nil
	}
	if s.token == nil || s.token.RefreshToken == "" {
		return nil, fmt.Errorf("token expired and no refresh token is available")
	}

	refreshed, err := s.client.RefreshToken(s.ctx, s.token.RefreshToken)
	if err != nil {
		return nil, err
	}
	s.token = refreshed
	return refreshed.OAuth2Token(), nil
}
