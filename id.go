package yandexid

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIDBaseURL is the Yandex ID API endpoint base.
const DefaultIDBaseURL = "https://login.yandex.ru"

// infoPath is the user-info endpoint path.
const infoPath = "/info"

// UserInfoFormat selects the user-info response representation.
type UserInfoFormat string

// Supported user-info formats.
const (
	FormatJSON UserInfoFormat = "json"
	FormatXML  UserInfoFormat = "xml"
	FormatJWT  UserInfoFormat = "jwt"
)

// IDConfig holds Yandex ID API client configuration.
type IDConfig struct {
	// OAuthToken is the access token used for every request (required).
	OAuthToken string

	// BaseURL overrides the Yandex ID endpoint base. Defaults to
	// DefaultIDBaseURL. Mainly useful in tests.
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout bounds each call when the caller's context carries no
	// deadline (default: 30s).
	RequestTimeout time.Duration

	// Logger for structured logging (optional, uses slog.Default if not provided).
	Logger *slog.Logger

	// OnWarning receives non-fatal diagnostics. Defaults to logging at Warn level.
	OnWarning WarnFunc

	// RateLimit enables client-side request limiting. Zero disables it.
	RateLimit RateLimitConfig

	// Transport overrides the HTTP transport entirely. Mainly useful in tests.
	Transport Transport
}

// IDClient fetches the authenticated user's profile from the Yandex ID API.
// It holds no mutable state and is safe for concurrent use.
type IDClient struct {
	oauthToken     string
	transport      Transport
	requestTimeout time.Duration
	logger         *slog.Logger
	warn           WarnFunc
}

// NewIDClient creates a Yandex ID API client.
func NewIDClient(cfg *IDConfig) (*IDClient, error) {
	if cfg.OAuthToken == "" {
		return nil, fmt.Errorf("oauth token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultIDBaseURL
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = defaultRequestTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	warn := cfg.OnWarning
	if warn == nil {
		warn = slogWarnFunc(logger)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = newHTTPTransport(baseURL, cfg.HTTPClient, requestTimeout, cfg.RateLimit)
	}

	return &IDClient{
		oauthToken:     cfg.OAuthToken,
		transport:      transport,
		requestTimeout: requestTimeout,
		logger:         logger,
		warn:           warn,
	}, nil
}

// UserInfoOption customizes a user-info request.
type UserInfoOption func(*userInfoOptions)

type userInfoOptions struct {
	withOpenIDIdentity bool
	jwtSecret          string
}

// WithOpenIDIdentity requests the user's OpenID identities in the response.
func WithOpenIDIdentity() UserInfoOption {
	return func(o *userInfoOptions) { o.withOpenIDIdentity = true }
}

// WithJWTSecret asks Yandex to sign the jwt-format response with the given
// secret instead of the client secret. Yandex recommends against it; using
// this option emits a security warning.
func WithJWTSecret(secret string) UserInfoOption {
	return func(o *userInfoOptions) { o.jwtSecret = secret }
}

// RawUserInfo fetches the user profile in the given format and returns the
// raw response body.
//
// Query parameters are omitted when unset: with_openid_identity is sent as
// "1" only when requested and jwt_secret only when supplied, matching the
// original wrapper's behavior rather than always sending zero values.
func (c *IDClient) RawUserInfo(ctx context.Context, format UserInfoFormat, opts ...UserInfoOption) (string, error) {
	var o userInfoOptions
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := ensureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("format", string(format))
	if o.withOpenIDIdentity {
		q.Set("with_openid_identity", "1")
	}
	if o.jwtSecret != "" {
		c.warn(Warning{
			Code:    WarningCodeInsecureJWTSecret,
			Message: "using jwt_secret is not recommended for security reasons",
		})
		q.Set("jwt_secret", o.jwtSecret)
	}

	h := http.Header{}
	h.Set("Authorization", "OAuth "+c.oauthToken)

	resp, err := c.transport.Request(ctx, http.MethodGet, infoPath, q, nil, h)
	if err != nil {
		return "", fmt.Errorf("user info request: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	return string(resp.Body), nil
}

// UserInfo fetches the user profile in JSON format and parses it.
func (c *IDClient) UserInfo(ctx context.Context, opts ...UserInfoOption) (*User, error) {
	data, err := c.RawUserInfo(ctx, FormatJSON, opts...)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &user, nil
}

// UserInfoXML fetches the user profile in XML format. The document is
// returned as received; XML validation is not implemented.
func (c *IDClient) UserInfoXML(ctx context.Context, opts ...UserInfoOption) (string, error) {
	return c.RawUserInfo(ctx, FormatXML, opts...)
}

// RawUserInfoJWT fetches the user profile as an encoded JWT without
// verifying it.
func (c *IDClient) RawUserInfoJWT(ctx context.Context, opts ...UserInfoOption) (string, error) {
	return c.RawUserInfo(ctx, FormatJWT, opts...)
}

// UserInfoJWT fetches the user profile in JWT format and verifies the
// HMAC-SHA256 signature with the given secret: the application's client
// secret, or the jwt_secret when the request was made with WithJWTSecret.
// The client never fetches or caches signing keys.
func (c *IDClient) UserInfoJWT(ctx context.Context, secret string, opts ...UserInfoOption) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("a client secret or jwt secret is required to verify the response")
	}

	raw, err := c.RawUserInfoJWT(ctx, opts...)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to verify user info JWT: %w", err)
	}

	return claims, nil
}
