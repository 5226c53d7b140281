package yandexid

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-yandex/yandexid/internal/testutil"
)

func TestTokenSource_ReusesValidToken(t *testing.T) {
	refreshes := 0
	server := testutil.NewOAuthServer(t, map[string]http.HandlerFunc{
		"/token": func(w http.ResponseWriter, r *http.Request) {
			refreshes++
			testutil.JSONResponse(t, w, http.StatusOK, testutil.TokenResponse())
		},
	})

	client, _ := newTestClient(t, func(cfg *OAuthConfig) { cfg.BaseURL = server.URL })

	token := &Token{
		AccessToken:  "still-good",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		RefreshToken: "R",
		issuedAt:     time.Now(),
	}
	source := client.TokenSource(context.Background(), token)

	for i := 0; i < 3; i++ {
		got, err := source.Token()
		if err != nil {
			t.Fatalf("Token() error = %v", err)
		}
		if got.AccessToken != "still-good" {
			t.Errorf("AccessToken = %q, want cached token", got.AccessToken)
		}
	}
	if refreshes != 0 {
		t.Errorf("refresh endpoint hit %d times for a valid token, want 0", refreshes)
	}
}

func TestTokenSource_RefreshesExpiredOnce(t *testing.T) {
	refreshes := 0
	server := testutil.NewOAuthServer(t, map[string]http.HandlerFunc{
		"/token": func(w http.ResponseWriter, r *http.Request) {
			refreshes++
			testutil.JSONResponse(t, w, http.StatusOK, testutil.TokenResponse())
		},
	})

	client, _ := newTestClient(t, func(cfg *OAuthConfig) { cfg.BaseURL = server.URL })

	expired := &Token{
		AccessToken:  "stale",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		RefreshToken: "R",
		issuedAt:     time.Now().Add(-2 * time.Hour),
	}
	source := client.TokenSource(context.Background(), expired)

	for i := 0; i < 3; i++ {
		got, err := source.Token()
		if err != nil {
			t.Fatalf("Token() error = %v", err)
		}
		if got.AccessToken != "test-access-token" {
			t.Errorf("AccessToken = %q, want refreshed token", got.AccessToken)
		}
	}
	if refreshes != 1 {
		t.Errorf("refresh endpoint hit %d times, want exactly 1", refreshes)
	}
}

func TestTokenSource_NoRefreshToken(t *testing.T) {
	client, _ := newTestClient(t, nil)

	expired := &Token{
		AccessToken: "stale",
		ExpiresIn:   3600,
		issuedAt:    time.Now().Add(-2 * time.Hour),
	}
	source := client.TokenSource(context.Background(), expired)

	if _, err := source.Token(); err == nil {
		t.Error("Token() without refresh token succeeded, want error")
	}
}
