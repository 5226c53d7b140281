package yandexid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/go-yandex/yandexid/instrumentation"
	"github.com/go-yandex/yandexid/storage"
)

// DefaultOAuthBaseURL is the Yandex OAuth endpoint base.
const DefaultOAuthBaseURL = "https://oauth.yandex.ru"

// Yandex OAuth endpoint paths.
const (
	authorizePath = "/authorize"
	tokenPath     = "/token"
	revokePath    = "/revoke_token"
)

// Token operation names used for instrumentation.
const (
	opExchangeCode = "exchange_code"
	opRefreshToken = "refresh_token"
	opRevokeToken  = "revoke_token"
)

// OAuthConfig holds Yandex OAuth client configuration.
type OAuthConfig struct {
	// ClientID is the application's OAuth client ID (required).
	ClientID string

	// ClientSecret is the application's OAuth client secret (required).
	ClientSecret string

	// RedirectURI is where Yandex redirects after user consent (required).
	RedirectURI string

	// Scope is the scope granted to the application, used to check
	// optional_scope requests. Optional.
	Scope string

	// BaseURL overrides the Yandex OAuth endpoint base. Defaults to
	// DefaultOAuthBaseURL. Mainly useful in tests.
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout bounds each call when the caller's context carries no
	// deadline (default: 30s).
	RequestTimeout time.Duration

	// Logger for structured logging (optional, uses slog.Default if not provided).
	Logger *slog.Logger

	// OnWarning receives non-fatal diagnostics (half-specified device
	// parameters, ignored optional scopes). Defaults to logging at Warn level.
	OnWarning WarnFunc

	// RateLimit enables client-side request limiting. Zero disables it.
	RateLimit RateLimitConfig

	// TokenStore, when set, persists tokens after a successful exchange or
	// refresh and deletes them on revocation. Callers that manage their own
	// persistence leave it nil.
	TokenStore storage.TokenStore

	// TokenStoreKey is the key tokens are stored under. Defaults to ClientID.
	TokenStoreKey string

	// Instrumentation enables OpenTelemetry metrics and traces for token
	// operations. Nil disables instrumentation.
	Instrumentation *instrumentation.Instrumentation

	// Transport overrides the HTTP transport entirely. When set, BaseURL,
	// HTTPClient and RateLimit are ignored for network calls. Mainly useful
	// in tests.
	Transport Transport
}

// OAuthClient implements the client side of the Yandex OAuth token lifecycle:
// authorization URL construction, code exchange, refresh and revocation.
//
// The client's only state is its immutable credentials and the injected
// transport; it is safe for concurrent use.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scope        string
	baseURL      string

	transport      Transport
	requestTimeout time.Duration
	logger         *slog.Logger
	warn           WarnFunc
	store          storage.TokenStore
	storeKey       string
	inst           *instrumentation.Instrumentation
}

// NewOAuthClient creates a Yandex OAuth client.
func NewOAuthClient(cfg *OAuthConfig) (*OAuthClient, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("redirect URI is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOAuthBaseURL
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

	storeKey := cfg.TokenStoreKey
	if storeKey == "" {
		storeKey = cfg.ClientID
	}

	return &OAuthClient{
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		redirectURI:    cfg.RedirectURI,
		scope:          cfg.Scope,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		transport:      transport,
		requestTimeout: requestTimeout,
		logger:         logger,
		warn:           warn,
		store:          cfg.TokenStore,
		storeKey:       storeKey,
		inst:           cfg.Instrumentation,
	}, nil
}

// AuthorizationParams are the per-call parameters of AuthorizationURL.
type AuthorizationParams struct {
	// ResponseType is "code" or "token". Defaults to "code".
	ResponseType string

	// DeviceID identifies the device a token is issued for. Validated:
	// 6-50 alphanumeric characters.
	DeviceID string

	// DeviceName is a user-visible device name, at most 100 characters.
	// Ignored by Yandex unless DeviceID is also set.
	DeviceName string

	// LoginHint prefills the account chooser.
	LoginHint string

	// Scope narrows the requested scope for this authorization.
	Scope string

	// OptionalScope lists comma-separated scopes the user may decline.
	OptionalScope string

	// ForceConfirm forces the consent screen even for an authorized app.
	ForceConfirm bool

	// State is returned verbatim in the redirect.
	State string
}

// AuthorizationURL assembles the browser authorization URL. It performs no
// network call. Invalid device parameters abort with a validation error and
// no URL; half-specified device parameters produce a warning but keep the
// parameter that Yandex honors.
func (c *OAuthClient) AuthorizationURL(params AuthorizationParams) (string, error) {
	responseType := params.ResponseType
	if responseType == "" {
		responseType = "code"
	}

	q := url.Values{}
	q.Set("response_type", responseType)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("client_id", c.clientID)

	if err := c.setDeviceParams(q, params.DeviceID, params.DeviceName); err != nil {
		return "", err
	}
	if params.LoginHint != "" {
		q.Set("login_hint", params.LoginHint)
	}
	if params.Scope != "" {
		q.Set("scope", params.Scope)
	}
	if params.OptionalScope != "" {
		c.checkOptionalScope(params.Scope, params.OptionalScope)
		q.Set("optional_scope", params.OptionalScope)
	}
	if params.ForceConfirm {
		q.Set("force_confirm", "1")
	}
	if params.State != "" {
		q.Set("state", params.State)
	}

	return c.baseURL + authorizePath + "?" + q.Encode(), nil
}

// ExchangeOption customizes an authorization-code exchange.
type ExchangeOption func(*exchangeOptions)

type exchangeOptions struct {
	deviceID   string
	deviceName string
}

// WithDeviceID binds the issued token to a device. The ID must be 6-50
// alphanumeric characters.
func WithDeviceID(deviceID string) ExchangeOption {
	return func(o *exchangeOptions) { o.deviceID = deviceID }
}

// WithDeviceName names the device a token is issued for. Ignored by Yandex
// unless a device ID is also supplied.
func WithDeviceName(deviceName string) ExchangeOption {
	return func(o *exchangeOptions) { o.deviceName = deviceName }
}

// ExchangeCode exchanges a verification code for a token pair.
//
// Device parameters are validated before any network call. A provider error
// in the response body maps through the exchange error set; a non-2xx
// response without a parsable error body surfaces *HTTPError.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string, opts ...ExchangeOption) (*Token, error) {
	var o exchangeOptions
	for _, opt := range opts {
		opt(&o)
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	if err := c.setDeviceParams(form, o.deviceID, o.deviceName); err != nil {
		return nil, err
	}

	return c.requestToken(ctx, opExchangeCode, form, exchangeErrors)
}

// RefreshToken exchanges a refresh token for a fresh token pair. A provider
// error in the response body maps through the refresh error set.
func (c *OAuthClient) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.requestToken(ctx, opRefreshToken, form, refreshErrors)
}

// RevokeToken revokes an access token and the refresh token paired with it.
// There is no false-return path: the call either succeeds or returns the
// mapped provider error. Revocation recognizes a narrower error set than the
// exchanges; any other code, invalid_grant included, maps to ErrOAuth.
func (c *OAuthClient) RevokeToken(ctx context.Context, accessToken string) error {
	ctx, cancel := ensureContextTimeout(ctx, c.requestTimeout)
	defer cancel()
	ctx, end := c.observe(ctx, opRevokeToken)

	form := url.Values{}
	form.Set("access_token", accessToken)

	resp, err := c.transport.Request(ctx, http.MethodPost, revokePath, nil, form, c.authHeader())
	if err != nil {
		err = fmt.Errorf("revoke request: %w", err)
		end(err)
		return err
	}

	if perr := providerErrorFromBody(resp.Body, revokeErrors); perr != nil {
		end(perr)
		return perr
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
		end(err)
		return err
	}
	end(nil)

	if c.store != nil {
		if err := c.store.DeleteToken(ctx, c.storeKey); err != nil {
			c.logger.Error("failed to delete stored token", "error", err)
		}
	}
	return nil
}

// requestToken POSTs a form to the token endpoint and decodes the outcome.
func (c *OAuthClient) requestToken(ctx context.Context, operation string, form url.Values, table map[string]error) (*Token, error) {
	ctx, cancel := ensureContextTimeout(ctx, c.requestTimeout)
	defer cancel()
	ctx, end := c.observe(ctx, operation)

	resp, err := c.transport.Request(ctx, http.MethodPost, tokenPath, nil, form, c.authHeader())
	if err != nil {
		err = fmt.Errorf("token request: %w", err)
		end(err)
		return nil, err
	}

	token, err := decodeTokenResponse(resp, table)
	end(err)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		c.saveToken(ctx, token)
	}
	return token, nil
}

// decodeTokenResponse applies the shared response invariant: a body carrying
// "error" is conclusive failure regardless of HTTP status, a body without it
// is conclusive success; non-2xx without a parsable error body is a
// transport-level failure.
func decodeTokenResponse(resp *Response, table map[string]error) (*Token, error) {
	if perr := providerErrorFromBody(resp.Body, table); perr != nil {
		return nil, perr
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	var token Token
	if err := json.Unmarshal(resp.Body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	token.issuedAt = time.Now()
	return &token, nil
}

// providerErrorFromBody extracts a provider error from a response body, or
// nil when the body carries no "error" field.
func providerErrorFromBody(body []byte, table map[string]error) *ProviderError {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return nil
	}
	return newProviderError(table, er.Error, er.ErrorDescription)
}

// setDeviceParams validates and applies device parameters, emitting the
// half-specification warnings. Validation failures are logged and abort the
// call before any request is made.
func (c *OAuthClient) setDeviceParams(values url.Values, deviceID, deviceName string) error {
	if deviceID != "" {
		if err := ValidateDeviceID(deviceID); err != nil {
			c.logger.Error("device ID validation failed", "error", err)
			return err
		}
		values.Set("device_id", deviceID)
		if deviceName == "" {
			c.warn(Warning{
				Code:    WarningCodeUnknownDevice,
				Message: "device_id is specified, but device_name is not; Yandex will issue the token for an unknown device",
			})
		}
	}
	if deviceName != "" {
		if err := ValidateDeviceName(deviceName); err != nil {
			c.logger.Error("device name validation failed", "error", err)
			return err
		}
		values.Set("device_name", deviceName)
		if deviceID == "" {
			c.warn(Warning{
				Code:    WarningCodeDeviceNameIgnored,
				Message: "device_name is specified, but device_id is not; device_name will be ignored",
			})
		}
	}
	return nil
}

// checkOptionalScope warns about optional scopes outside the granted scope.
// The explicit per-call scope takes precedence over the client's configured
// scope; with neither set the check is skipped.
func (c *OAuthClient) checkOptionalScope(callScope, optionalScope string) {
	granted := callScope
	if granted == "" {
		granted = c.scope
	}
	if granted == "" {
		return
	}
	if ignored := OptionalScopeWarnings(granted, optionalScope); len(ignored) > 0 {
		c.warn(Warning{
			Code:    WarningCodeOptionalScopeIgnored,
			Message: fmt.Sprintf("optional scopes %s are not in scope and will be ignored", strings.Join(ignored, ", ")),
		})
	}
}

// authHeader builds the Basic auth header from the client credentials.
func (c *OAuthClient) authHeader() http.Header {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	h := http.Header{}
	h.Set("Authorization", "Basic "+credentials)
	return h
}

// saveToken persists a token to the configured store. Persistence is an
// add-on; a store failure is logged but does not fail the call that already
// obtained the token.
func (c *OAuthClient) saveToken(ctx context.Context, token *Token) {
	stored := &storage.Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Scope:        token.Scope,
		Expiry:       token.Expiry(),
	}
	if err := c.store.SaveToken(ctx, c.storeKey, stored); err != nil {
		c.logger.Error("failed to persist token", "error", err)
	}
}

// observe starts a span and returns a completion func that records the
// operation metric. No-ops when instrumentation is not configured.
func (c *OAuthClient) observe(ctx context.Context, operation string) (context.Context, func(error)) {
	if c.inst == nil {
		return ctx, func(error) {}
	}

	start := time.Now()
	ctx, span := c.inst.Tracer().Start(ctx, "yandexid."+operation)

	return ctx, func(err error) {
		outcome := instrumentation.OutcomeSuccess
		var perr *ProviderError
		switch {
		case err == nil:
		case errors.As(err, &perr):
			outcome = instrumentation.OutcomeProviderError
			c.inst.Metrics().RecordProviderError(ctx, operation, perr.Code)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		default:
			outcome = instrumentation.OutcomeTransportError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.inst.Metrics().RecordTokenOperation(ctx, operation, outcome, time.Since(start))
		span.End()
	}
}
