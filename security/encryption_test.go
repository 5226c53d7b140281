package security

import (
	"bytes"
	"strings"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestNewEncryptor(t *testing.T) {
	tests := []struct {
		name        string
		key         []byte
		wantErr     bool
		wantEnabled bool
	}{
		{name: "nil key disables encryption", key: nil, wantEnabled: false},
		{name: "empty key disables encryption", key: []byte{}, wantEnabled: false},
		{name: "32-byte key enables encryption", key: testKey(), wantEnabled: true},
		{name: "short key rejected", key: []byte("too-short"), wantErr: true},
		{name: "long key rejected", key: bytes.Repeat([]byte{1}, 33), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncryptor(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if enc.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", enc.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}

	plaintext := "y0_AgAAAABelieveMeThisIsAnAccessToken"
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if ciphertext == plaintext {
		t.Error("Encrypt() returned plaintext unchanged with encryption enabled")
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptor_Disabled(t *testing.T) {
	enc, err := NewEncryptor(nil)
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}

	out, err := enc.Encrypt("as-is")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if out != "as-is" {
		t.Errorf("Encrypt() = %q, want pass-through", out)
	}

	out, err = enc.Decrypt("as-is")
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if out != "as-is" {
		t.Errorf("Decrypt() = %q, want pass-through", out)
	}
}

func TestEncryptor_DecryptErrors(t *testing.T) {
	enc, err := NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}

	if _, err := enc.Decrypt("not base64!!!"); err == nil {
		t.Error("Decrypt() of invalid base64 succeeded, want error")
	}
	if _, err := enc.Decrypt("QQ=="); err == nil || !strings.Contains(err.Error(), "nonce") {
		t.Errorf("Decrypt() of truncated ciphertext error = %v, want nonce length error", err)
	}

	// A different key must not decrypt the ciphertext.
	ciphertext, err := enc.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	other, err := NewEncryptor(bytes.Repeat([]byte{0x24}, 32))
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}
	if _, err := other.Decrypt(ciphertext); err == nil {
		t.Error("Decrypt() with wrong key succeeded, want error")
	}
}
