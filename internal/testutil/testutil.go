// Package testutil provides testing helpers for the yandexid SDK.
package testutil

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewMockHTTPServer creates a test HTTP server with the given handler.
func NewMockHTTPServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// NewOAuthServer creates a mock Yandex OAuth server. The handlers map routes
// endpoint paths ("/token", "/revoke_token") to handlers; unrouted paths
// return 404.
func NewOAuthServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// JSONResponse writes v as a JSON response with the given status.
func JSONResponse(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

// TokenResponse is a canned successful token endpoint body.
func TokenResponse() map[string]any {
	return map[string]any{
		"access_token":  "test-access-token",
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "test-refresh-token",
	}
}

// OAuthErrorResponse is a canned provider error body.
func OAuthErrorResponse(code, description string) map[string]any {
	return map[string]any{
		"error":             code,
		"error_description": description,
	}
}

// UserInfoResponse is a canned Yandex ID user-info body.
func UserInfoResponse() map[string]any {
	return map[string]any{
		"login":             "test.user",
		"id":                "1000034426",
		"client_id":         "test-client-id",
		"psuid":             "1.AAceCw.tbHgw5DtJ9_zeqPrk-Ba2w.qPWSRC5v2t2IaksPJgnge",
		"default_email":     "test.user@yandex.ru",
		"emails":            []string{"test.user@yandex.ru"},
		"default_avatar_id": "131652443",
		"is_avatar_empty":   false,
		"first_name":        "Test",
		"last_name":         "User",
		"display_name":      "test.user",
		"real_name":         "Test User",
		"sex":               "male",
	}
}

// RequireBasicAuth fails the request with 401 unless it carries the expected
// Basic credentials.
func RequireBasicAuth(t *testing.T, clientID, clientSecret string, next http.HandlerFunc) http.HandlerFunc {
	t.Helper()
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != want {
			t.Errorf("Authorization = %q, want %q", r.Header.Get("Authorization"), want)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// GenerateRandomString returns a URL-safe random string of n bytes of entropy.
func GenerateRandomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
