package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func gateHandler(t *testing.T, signer *JWTSigner) (http.Handler, *Claims) {
	t.Helper()
	var seen Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := FromContext(r.Context()); ok {
			seen = *c
		}
		w.WriteHeader(http.StatusOK)
	})
	return Gate(signer, DefaultExemptions("/api/v1"), nil)(inner), &seen
}

func TestGateRejectsMissingToken(t *testing.T) {
	h, _ := gateHandler(t, NewJWTSigner("secret", time.Hour))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Fatalf("body should carry a message field: %s", rec.Body.String())
	}
}

func TestGateRejectsInvalidToken(t *testing.T) {
	h, _ := gateHandler(t, NewJWTSigner("secret", time.Hour))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGateRejectsNonAdmin(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)
	h, _ := gateHandler(t, signer)
	tok, _, err := signer.IssueToken("user-1", false)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin on non-exempt path: status = %d, want 401", rec.Code)
	}
}

func TestGateAcceptsAdminAndAttachesClaims(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)
	h, seen := gateHandler(t, signer)
	tok, _, err := signer.IssueToken("admin-1", true)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.UserID != "admin-1" || !seen.IsAdmin {
		t.Fatalf("claims not attached to context: %+v", seen)
	}
}

func TestGateExemptPathSkipsCredentialEntirely(t *testing.T) {
	h, seen := gateHandler(t, NewJWTSigner("secret", time.Hour))

	// No credential at all.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("exempt path without token: status = %d, want 200", rec.Code)
	}
	if seen.UserID != "" {
		t.Fatalf("exempt request should carry no claims, got %+v", seen)
	}

	// A non-admin credential is irrelevant on an exempt path.
	other := NewJWTSigner("other-secret", time.Hour)
	tok, _, _ := other.IssueToken("user-1", false)
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/products/abc", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("exempt path with bad token: status = %d, want 200", rec.Code)
	}
}

func TestGateCustomRevocationPredicate(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// Accept everyone, admin or not.
	h := Gate(signer, DefaultExemptions("/api/v1"), func(*Claims) bool { return false })(inner)

	tok, _, _ := signer.IssueToken("user-1", false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("custom predicate should accept non-admin, status = %d", rec.Code)
	}
}
