package auth

import (
	"testing"
	"time"

	"presskit/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
}

func TestIssuePairAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)

	pair, err := issuer.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected both tokens to be set")
	}

	claims, err := issuer.Verify(pair.Access, TypeAccess)
	if err != nil {
		t.Fatalf("Verify access: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want admin", claims.Role)
	}

	if _, err := issuer.Verify(pair.Refresh, TypeRefresh); err != nil {
		t.Fatalf("Verify refresh: %v", err)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)
	pair, err := issuer.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	if _, err := issuer.Verify(pair.Refresh, TypeAccess); err != ErrInvalidToken {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
	if _, err := issuer.Verify(pair.Access, TypeRefresh); err != ErrInvalidToken {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute, -time.Minute)
	pair, err := issuer.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	if _, err := issuer.Verify(pair.Access, TypeAccess); err != ErrInvalidToken {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour, 24*time.Hour)
	other := NewIssuer("secret-b", time.Hour, 24*time.Hour)

	pair, err := issuer.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	if _, err := other.Verify(pair.Access, TypeAccess); err != ErrInvalidToken {
		t.Errorf("token signed with a different secret accepted: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := issuer.Verify(token, TypeAccess); err != ErrInvalidToken {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}
