// Package storage defines the interface for persisting OAuth tokens between
// process runs. Persistence is optional: the OAuth client works without a
// store, and callers that manage tokens themselves never touch this package.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no token is stored under a key.
var ErrNotFound = errors.New("token not found")

// Token is the persisted shape of an OAuth token. Expiry is absolute; the
// relative expires_in from the wire is resolved before storage.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Scope        string
	Expiry       time.Time
}

// Expired reports whether the access token's lifetime has passed. The
// refresh token may still be usable.
func (t *Token) Expired() bool {
	return !t.Expiry.IsZero() && time.Now().After(t.Expiry)
}

// TokenStore stores and retrieves tokens by caller-chosen key. All methods
// accept a context for cancellation; implementations must be safe for
// concurrent use.
type TokenStore interface {
	// SaveToken stores a token under key, replacing any previous value.
	SaveToken(ctx context.Context, key string, token *Token) error

	// GetToken retrieves the token stored under key, or ErrNotFound.
	GetToken(ctx context.Context, key string) (*Token, error)

	// DeleteToken removes the token stored under key. Deleting a missing
	// key is not an error.
	DeleteToken(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
