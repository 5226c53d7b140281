package yandexid

import (
	"errors"
	"fmt"
)

// OAuth error codes reported by the Yandex OAuth token and revocation endpoints.
const (
	ErrorCodeAuthorizationPending = "authorization_pending"
	ErrorCodeBadVerificationCode  = "bad_verification_code"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidScope         = "invalid_scope"
	ErrorCodeUnauthorizedClient   = "unauthorized_client"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
)

// Sentinel errors for the provider error taxonomy. A *ProviderError wraps
// exactly one of these, so callers can dispatch with errors.Is:
//
//	if errors.Is(err, yandexid.ErrAuthorizationPending) { ... }
var (
	// ErrAuthorizationPending indicates the user has not completed authorization yet.
	ErrAuthorizationPending = errors.New("authorization pending")

	// ErrBadVerificationCode indicates the verification code has the wrong shape.
	ErrBadVerificationCode = errors.New("bad verification code")

	// ErrInvalidClient indicates the client ID or client secret is invalid.
	ErrInvalidClient = errors.New("invalid client")

	// ErrInvalidGrant indicates the verification code or refresh token is invalid or expired.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrInvalidRequest indicates the request format is invalid.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidScope indicates the application scope changed after the code was issued.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrUnauthorizedClient indicates the application is disabled or not yet approved.
	ErrUnauthorizedClient = errors.New("unauthorized client")

	// ErrUnsupportedGrantType indicates an unsupported grant_type value.
	ErrUnsupportedGrantType = errors.New("unsupported grant type")

	// ErrOAuth is the generic fallback for provider error codes outside the
	// operation's recognized set.
	ErrOAuth = errors.New("oauth error")
)

// Validation sentinels for device parameters. Returned wrapped with the
// concrete reason, before any network call is made.
var (
	// ErrInvalidDeviceID indicates a device ID that is too short, too long,
	// or not purely alphanumeric.
	ErrInvalidDeviceID = errors.New("invalid device id")

	// ErrInvalidDeviceName indicates a device name longer than 100 characters.
	ErrInvalidDeviceName = errors.New("invalid device name")
)

// Per-operation error code tables. Each token-lifecycle operation recognizes
// its own set of provider codes; a code outside the set falls through to
// ErrOAuth. The sets are deliberately distinct (revocation never reports
// invalid_grant, for example) and must not be merged.
var (
	exchangeErrors = map[string]error{
		ErrorCodeAuthorizationPending: ErrAuthorizationPending,
		ErrorCodeBadVerificationCode:  ErrBadVerificationCode,
		ErrorCodeInvalidClient:        ErrInvalidClient,
		ErrorCodeInvalidGrant:         ErrInvalidGrant,
		ErrorCodeInvalidRequest:       ErrInvalidRequest,
		ErrorCodeInvalidScope:         ErrInvalidScope,
		ErrorCodeUnauthorizedClient:   ErrUnauthorizedClient,
		ErrorCodeUnsupportedGrantType: ErrUnsupportedGrantType,
	}

	refreshErrors = map[string]error{
		ErrorCodeInvalidClient:        ErrInvalidClient,
		ErrorCodeInvalidGrant:         ErrInvalidGrant,
		ErrorCodeInvalidRequest:       ErrInvalidRequest,
		ErrorCodeUnauthorizedClient:   ErrUnauthorizedClient,
		ErrorCodeUnsupportedGrantType: ErrUnsupportedGrantType,
	}

	revokeErrors = map[string]error{
		ErrorCodeInvalidClient:      ErrInvalidClient,
		ErrorCodeInvalidRequest:     ErrInvalidRequest,
		ErrorCodeUnauthorizedClient: ErrUnauthorizedClient,
	}
)

// ProviderError is an OAuth error reported by Yandex in a response body.
// Code and Description are carried verbatim from the provider; the wrapped
// sentinel identifies the taxonomy kind.
type ProviderError struct {
	kind        error
	Code        string
	Description string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unwrap returns the taxonomy sentinel this error maps to.
func (e *ProviderError) Unwrap() error {
	return e.kind
}

// newProviderError maps a provider error code through an operation's table.
// Unrecognized codes map to ErrOAuth.
func newProviderError(table map[string]error, code, description string) *ProviderError {
	kind, ok := table[code]
	if !ok {
		kind = ErrOAuth
	}
	return &ProviderError{kind: kind, Code: code, Description: description}
}

// HTTPError is a transport-level failure: a non-2xx response whose body did
// not contain a parsable OAuth error. The body is kept for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected response status %d", e.StatusCode)
}
