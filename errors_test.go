package yandexid

import (
	"errors"
	"testing"
)

func TestProviderErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		table map[string]error
		code  string
		want  error
	}{
		{name: "exchange authorization_pending", table: exchangeErrors, code: "authorization_pending", want: ErrAuthorizationPending},
		{name: "exchange bad_verification_code", table: exchangeErrors, code: "bad_verification_code", want: ErrBadVerificationCode},
		{name: "exchange invalid_client", table: exchangeErrors, code: "invalid_client", want: ErrInvalidClient},
		{name: "exchange invalid_grant", table: exchangeErrors, code: "invalid_grant", want: ErrInvalidGrant},
		{name: "exchange invalid_request", table: exchangeErrors, code: "invalid_request", want: ErrInvalidRequest},
		{name: "exchange invalid_scope", table: exchangeErrors, code: "invalid_scope", want: ErrInvalidScope},
		{name: "exchange unauthorized_client", table: exchangeErrors, code: "unauthorized_client", want: ErrUnauthorizedClient},
		{name: "exchange unsupported_grant_type", table: exchangeErrors, code: "unsupported_grant_type", want: ErrUnsupportedGrantType},
		{name: "exchange unknown code falls through", table: exchangeErrors, code: "rate_limit_exceeded", want: ErrOAuth},

		{name: "refresh invalid_grant", table: refreshErrors, code: "invalid_grant", want: ErrInvalidGrant},
		{name: "refresh unsupported_grant_type", table: refreshErrors, code: "unsupported_grant_type", want: ErrUnsupportedGrantType},
		{name: "refresh does not recognize invalid_scope", table: refreshErrors, code: "invalid_scope", want: ErrOAuth},
		{name: "refresh does not recognize authorization_pending", table: refreshErrors, code: "authorization_pending", want: ErrOAuth},

		{name: "revoke invalid_client", table: revokeErrors, code: "invalid_client", want: ErrInvalidClient},
		{name: "revoke invalid_request", table: revokeErrors, code: "invalid_request", want: ErrInvalidRequest},
		{name: "revoke unauthorized_client", table: revokeErrors, code: "unauthorized_client", want: ErrUnauthorizedClient},
		{name: "revoke does not recognize invalid_grant", table: revokeErrors, code: "invalid_grant", want: ErrOAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newProviderError(tt.table, tt.code, "some description")
			if !errors.Is(err, tt.want) {
				t.Errorf("newProviderError(%q) = %v, want kind %v", tt.code, err, tt.want)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Description != "some description" {
				t.Errorf("Description = %q, want preserved verbatim", err.Description)
			}
		})
	}
}

func TestProviderError_Error(t *testing.T) {
	err := newProviderError(exchangeErrors, "invalid_grant", "Code has expired")
	if got, want := err.Error(), "invalid_grant: Code has expired"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestProviderError_As(t *testing.T) {
	var err error = newProviderError(refreshErrors, "invalid_client", "bad credentials")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatal("errors.As failed to match *ProviderError")
	}
	if perr.Description != "bad credentials" {
		t.Errorf("Description = %q, want %q", perr.Description, "bad credentials")
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 503, Body: []byte("upstream down")}
	if got, want := err.Error(), "unexpected response status 503"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
