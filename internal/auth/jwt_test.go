package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const (
	testSecret = "test-secret-at-least-32-chars-long-for-security"
	testIssuer = "http://localhost:54321/auth/v1"
)

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)
	userID := uuid.New()

	token, expiresAt, err := manager.GenerateAccessToken(userID, AccessClaims{
		Email:       "investor@fund.com",
		AppMetadata: map[string]any{"role": "admin"},
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if time.Until(expiresAt) <= 14*time.Minute {
		t.Errorf("expiresAt too early: %v", expiresAt)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	gotID, err := claims.UserID()
	if err != nil || gotID != userID {
		t.Errorf("expected userID %s, got %s (%v)", userID, gotID, err)
	}
	if claims.Email != "investor@fund.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.Role != AuthenticatedAudience {
		t.Errorf("expected role %q, got %q", AuthenticatedAudience, claims.Role)
	}
	if claims.AppMetadata["role"] != "admin" {
		t.Errorf("expected app_metadata.role admin, got %v", claims.AppMetadata["role"])
	}
}

func TestJWTManager_ValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, -1*time.Hour)

	token, _, err := manager.GenerateAccessToken(uuid.New(), AccessClaims{})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = manager.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !strings.Contains(err.Error(), "expired") && !strings.Contains(err.Error(), "parse token") {
		t.Errorf("expected expiry-related error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager(testSecret, testIssuer, 15*time.Minute)
	manager2 := NewJWTManager("different-secret-32-chars-long-for-security!!", testIssuer, 15*time.Minute)

	token, _, err := manager1.GenerateAccessToken(uuid.New(), AccessClaims{})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager2.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	for _, token := range []string{"not.a.jwt", "invalid-token", "header.payload"} {
		if _, err := manager.ValidateAccessToken(token); err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestJWTManager_ValidateAccessToken_WrongIssuer(t *testing.T) {
	manager1 := NewJWTManager(testSecret, testIssuer, 15*time.Minute)
	manager2 := NewJWTManager(testSecret, "https://other.supabase.co/auth/v1", 15*time.Minute)

	token, _, err := manager1.GenerateAccessToken(uuid.New(), AccessClaims{})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = manager2.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
	if !strings.Contains(err.Error(), "invalid issuer") {
		t.Errorf("expected 'invalid issuer' error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_IssuerCheckDisabled(t *testing.T) {
	issuing := NewJWTManager(testSecret, testIssuer, 15*time.Minute)
	verifying := NewJWTManager(testSecret, "", 15*time.Minute)

	token, _, err := issuing.GenerateAccessToken(uuid.New(), AccessClaims{})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := verifying.ValidateAccessToken(token); err != nil {
		t.Fatalf("unexpected error with issuer check disabled: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_EmptyString(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	_, err := manager.ValidateAccessToken("")
	if err == nil {
		t.Fatal("expected error for empty token, got nil")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestJWTManager_GenerateRefreshToken_Uniqueness(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	tokens := make(map[string]bool)
	hashes := make(map[string]bool)

	for range 100 {
		raw, hash, err := manager.GenerateRefreshToken()
		if err != nil {
			t.Fatalf("GenerateRefreshToken failed: %v", err)
		}
		if raw == "" || hash == "" {
			t.Fatal("expected non-empty raw and hash")
		}
		if tokens[raw] {
			t.Errorf("duplicate raw token: %s", raw)
		}
		if hashes[hash] {
			t.Errorf("duplicate hash: %s", hash)
		}
		tokens[raw] = true
		hashes[hash] = true
	}
}

func TestJWTManager_GenerateRefreshToken_HashMatches(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, 15*time.Minute)

	raw, hash, err := manager.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if recomputed := HashToken(raw); recomputed != hash {
		t.Errorf("hash mismatch: expected %s, got %s", hash, recomputed)
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	raw := "test-token-12345"

	if HashToken(raw) != HashToken(raw) {
		t.Error("hash is not deterministic")
	}
	if HashToken(raw) == HashToken("different-token-67890") {
		t.Error("different inputs produced same hash")
	}
}
