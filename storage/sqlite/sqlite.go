// Package sqlite provides a durable token store backed by SQLite, using the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/go-yandex/yandexid/security"
	"github.com/go-yandex/yandexid/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
	key           TEXT PRIMARY KEY,
	access_token  TEXT NOT NULL,
	token_type    TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	scope         TEXT NOT NULL DEFAULT '',
	expiry_ms     INTEGER NOT NULL DEFAULT 0
);
`

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite implementation of storage.TokenStore. Token material is
// encrypted at rest when an encryptor with a key is supplied.
type Store struct {
	db        *sql.DB
	encryptor *security.Encryptor
}

// Option configures a Store.
type Option func(*Store)

// WithEncryptor encrypts access and refresh tokens at rest.
func WithEncryptor(enc *security.Encryptor) Option {
	return func(s *Store) { s.encryptor = enc }
}

// Open opens a SQLite token store at path and creates the schema if needed.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if s.encryptor == nil {
		s.encryptor, _ = security.NewEncryptor(nil)
	}
	return s, nil
}

// SaveToken implements storage.TokenStore.
func (s *Store) SaveToken(ctx context.Context, key string, token *storage.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}

	access, err := s.encryptor.Encrypt(token.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refresh, err := s.encryptor.Encrypt(token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tokens (key, access_token, token_type, refresh_token, scope, expiry_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			refresh_token = excluded.refresh_token,
			scope = excluded.scope,
			expiry_ms = excluded.expiry_ms`,
		key, access, token.TokenType, refresh, token.Scope, toMillis(token.Expiry))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetToken implements storage.TokenStore.
func (s *Store) GetToken(ctx context.Context, key string) (*storage.Token, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT access_token, token_type, refresh_token, scope, expiry_ms
		FROM tokens WHERE key = ?`, key)

	var (
		token    storage.Token
		expiryMS int64
	)
	err := row.Scan(&token.AccessToken, &token.TokenType, &token.RefreshToken, &token.Scope, &expiryMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	token.Expiry = fromMillis(expiryMS)

	token.AccessToken, err = s.encryptor.Decrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	token.RefreshToken, err = s.encryptor.Decrypt(token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}
	return &token, nil
}

// DeleteToken implements storage.TokenStore.
func (s *Store) DeleteToken(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Close implements storage.TokenStore.
func (s *Store) Close() error {
	return s.db.Close()
}
