package yandexid

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is a successful response from the token endpoint. It is only ever
// constructed from a body that carried no "error" field.
type Token struct {
	// AccessToken is the OAuth access token.
	AccessToken string `json:"access_token"`

	// TokenType is the token type, always "bearer" for Yandex.
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// RefreshToken is the refresh token paired with the access token.
	RefreshToken string `json:"refresh_token"`

	// Scope is set only when some requested scope was declined.
	Scope string `json:"scope,omitempty"`

	// issuedAt anchors ExpiresIn to an absolute time. Set when the token is
	// decoded from a response; zero for tokens built by hand.
	issuedAt time.Time
}

// Expiry returns the absolute expiration time of the access token. For
// tokens not obtained through this client, ExpiresIn is counted from now.
func (t *Token) Expiry() time.Time {
	base := t.issuedAt
	if base.IsZero() {
		base = time.Now()
	}
	return base.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Valid reports whether the access token exists and has not expired.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != "" && time.Now().Before(t.Expiry())
}

// OAuth2Token converts the token to a golang.org/x/oauth2 token so it can be
// used with libraries built on the x/oauth2 ecosystem.
func (t *Token) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
	}
}
