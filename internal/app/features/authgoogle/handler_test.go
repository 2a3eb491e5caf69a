// internal/app/features/authgoogle/handler_test.go
package authgoogle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	"github.com/ponsectors/ponsectors/internal/app/store/oauthstate"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/authz"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

func newTestHandler(t *testing.T, clientID string) *Handler {
	t.Helper()
	st := memstore.NewSeeded().Stores()
	sm := auth.NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), "ponsectors_session", "", false, zap.NewNop())
	return NewHandler(st.Users, oauthstate.NewMemory(), sm, authz.NewPolicy(nil), clientID, "secret", "http://localhost:8080", zap.NewNop())
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "google_not_configured") {
		t.Errorf("redirect location = %q", loc)
	}
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	h := newTestHandler(t, "client-id")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google?return=/projects", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") || !strings.Contains(loc, "state=") {
		t.Errorf("redirect location = %q", loc)
	}
}

func TestServeCallback_RejectsUnknownState(t *testing.T) {
	h := newTestHandler(t, "client-id")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=bogus&code=x", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid_state") {
		t.Errorf("redirect location = %q", loc)
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t, "client-id")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=x", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid_state") {
		t.Errorf("redirect location = %q", loc)
	}
}

func TestFindOrCreateUser_MatchesExistingByEmail(t *testing.T) {
	h := newTestHandler(t, "client-id")

	u, err := h.findOrCreateUser(context.Background(), &googleUserInfo{
		ID:    "google-1",
		Email: "Amir@Example.com",
		Name:  "Amir Musema",
	})
	if err != nil {
		t.Fatalf("findOrCreateUser: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("matched user = %q, want u1", u.ID)
	}
}

func TestFindOrCreateUser_RegistersNewAccount(t *testing.T) {
	h := newTestHandler(t, "client-id")

	u, err := h.findOrCreateUser(context.Background(), &googleUserInfo{
		ID:            "google-2",
		Email:         "new@example.com",
		Name:          "New Person",
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("findOrCreateUser: %v", err)
	}
	if u.ID == "" || u.Role != models.RoleStandard {
		t.Errorf("created user = %+v", u)
	}
	if !u.IsVerified {
		t.Error("verified google email should carry over")
	}
}

func TestSafeReturn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "/"},
		{"/projects", "/projects"},
		{"//evil.example.com", "/"},
		{"https://evil.example.com", "/"},
	}
	for _, tc := range cases {
		if got := safeReturn(tc.in); got != tc.want {
			t.Errorf("safeReturn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStateStore_OneTimeUse(t *testing.T) {
	states := oauthstate.NewMemory()
	ctx := context.Background()

	if err := states.Save(ctx, "nonce", "/projects", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}
	ret, ok, err := states.Validate(ctx, "nonce")
	if err != nil || !ok || ret != "/projects" {
		t.Fatalf("first validate = (%q, %v, %v)", ret, ok, err)
	}
	if _, ok, _ := states.Validate(ctx, "nonce"); ok {
		t.Error("state nonce was accepted twice")
	}
}
