package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"presskit/internal/auth"
	"presskit/internal/models"
)

func testIssuer() *auth.Issuer {
	return auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
}

func tokenFor(t *testing.T, issuer *auth.Issuer, role models.Role) string {
	t.Helper()
	pair, err := issuer.IssuePair(&models.User{ID: 1, Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	return pair.Access
}

// echoIdentity records the identity the middleware placed in the context.
func echoIdentity(captured **Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = IdentityFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	issuer := testIssuer()
	var got *Identity
	handler := Authenticate(issuer)(echoIdentity(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleAdmin))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected identity in context")
	}
	if got.UserID != 1 || got.Role != models.RoleAdmin {
		t.Errorf("identity = %+v", got)
	}
	if !got.IsAdmin() {
		t.Error("IsAdmin = false, want true")
	}
}

func TestAuthenticatePassesAnonymous(t *testing.T) {
	issuer := testIssuer()

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Identity
			handler := Authenticate(issuer)(echoIdentity(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("status = %d, want request to pass through", rr.Code)
			}
			if got != nil {
				t.Errorf("expected anonymous request, got identity %+v", got)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	issuer := testIssuer()
	handler := Authenticate(issuer)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	// Anonymous is rejected.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rr.Code)
	}

	// A valid token passes.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleEditor))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated: status = %d, want 200", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	issuer := testIssuer()
	handler := Authenticate(issuer)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	// Editors are rejected with 403.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleEditor))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("editor: status = %d, want 403", rr.Code)
	}

	// Admins pass.
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleAdmin))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", rr.Code)
	}
}
