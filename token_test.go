package yandexid

import (
	"testing"
	"time"
)

func TestToken_Expiry(t *testing.T) {
	issued := time.Now().Add(-30 * time.Minute)
	token := &Token{
		AccessToken: "A",
		ExpiresIn:   3600,
		issuedAt:    issued,
	}

	want := issued.Add(time.Hour)
	if got := token.Expiry(); !got.Equal(want) {
		t.Errorf("Expiry() = %v, want %v", got, want)
	}
	if !token.Valid() {
		t.Error("Valid() = false for a token with 30 minutes left")
	}
}

func TestToken_Valid(t *testing.T) {
	expired := &Token{
		AccessToken: "A",
		ExpiresIn:   3600,
		issuedAt:    time.Now().Add(-2 * time.Hour),
	}
	if expired.Valid() {
		t.Error("Valid() = true for an expired token")
	}

	var nilToken *Token
	if nilToken.Valid() {
		t.Error("Valid() = true for a nil token")
	}

	empty := &Token{ExpiresIn: 3600}
	if empty.Valid() {
		t.Error("Valid() = true for a token without an access token")
	}
}

func TestToken_OAuth2Token(t *testing.T) {
	issued := time.Now()
	token := &Token{
		AccessToken:  "A",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		RefreshToken: "R",
		issuedAt:     issued,
	}

	converted := token.OAuth2Token()
	if converted.AccessToken != "A" {
		t.Errorf("AccessToken = %q, want A", converted.AccessToken)
	}
	if converted.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want bearer", converted.TokenType)
	}
	if converted.RefreshToken != "R" {
		t.Errorf("RefreshToken = %q, want R", converted.RefreshToken)
	}
	if !converted.Expiry.Equal(issued.Add(time.Hour)) {
		t.Errorf("Expiry = %v, want issuedAt+1h", converted.Expiry)
	}
}
