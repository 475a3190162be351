package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	tok, exp, err := s.IssueToken("user-1", true)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry should be in the future, got %v", exp)
	}
	claims, err := s.ParseAndValidate(tok)
	if err != nil {
		t.Fatalf("ParseAndValidate error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Fatalf("IsAdmin should be true")
	}
	if claims.ExpiresAt != exp.Unix() {
		t.Fatalf("ExpiresAt = %d, want %d", claims.ExpiresAt, exp.Unix())
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, _, err := NewJWTSigner("secret-a", time.Hour).IssueToken("user-1", true)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	_, err = NewJWTSigner("secret-b", time.Hour).ParseAndValidate(tok)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("want ErrSignatureInvalid, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	s.ttl = -time.Minute
	tok, _, err := s.IssueToken("user-1", true)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	_, err = s.ParseAndValidate(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := s.ParseAndValidate(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("token %q: want ErrMalformed, got %v", tok, err)
		}
	}
}

func TestParseKeepsClaimsUnchanged(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	tok, _, err := s.IssueToken("user-2", false)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	claims, err := s.ParseAndValidate(tok)
	if err != nil {
		t.Fatalf("ParseAndValidate error: %v", err)
	}
	if claims.UserID != "user-2" || claims.IsAdmin {
		t.Fatalf("claims mutated: %+v", claims)
	}
}
