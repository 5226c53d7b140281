// Package memory provides an in-memory token store. It is suitable for
// tests and single-process use; tokens do not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-yandex/yandexid/security"
	"github.com/go-yandex/yandexid/storage"
)

// Store is an in-memory implementation of storage.TokenStore. Token material
// is encrypted at rest when an encryptor with a key is supplied.
type Store struct {
	mu        sync.RWMutex
	tokens    map[string]*storage.Token
	encryptor *security.Encryptor
	closed    bool
}

// Option configures a Store.
type Option func(*Store)

// WithEncryptor encrypts access and refresh tokens at rest.
func WithEncryptor(enc *security.Encryptor) Option {
	return func(s *Store) { s.encryptor = enc }
}

// New creates an in-memory token store.
func New(opts ...Option) *Store {
	s := &Store{tokens: make(map[string]*storage.Token)}
	for _, opt := range opts {
		opt(s)
	}
	if s.encryptor == nil {
		// Pass-through encryptor keeps the storage paths uniform.
		s.encryptor, _ = security.NewEncryptor(nil)
	}
	return s
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

	stored := *token
	stored.AccessToken = access
	stored.RefreshToken = refresh

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("store is closed")
	}
	s.tokens[key] = &stored
	return nil
}

// GetToken implements storage.TokenStore.
func (s *Store) GetToken(ctx context.Context, key string) (*storage.Token, error) {
	s.mu.RLock()
	stored, ok := s.tokens[key]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}

	access, err := s.encryptor.Decrypt(stored.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refresh, err := s.encryptor.Decrypt(stored.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	token := *stored
	token.AccessToken = access
	token.RefreshToken = refresh
	return &token, nil
}

// DeleteToken implements storage.TokenStore.
func (s *Store) DeleteToken(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key)
	return nil
}

// Close implements storage.TokenStore.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.tokens = make(map[string]*storage.Token)
	return nil
}
