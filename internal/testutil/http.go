package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// AdminUser returns a session user with the Admin role.
func AdminUser() auth.SessionUser {
	return auth.SessionUser{
		ID:    uuid.NewString(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
	}
}

// StandardUser returns a session user with the Standard role.
func StandardUser() auth.SessionUser {
	return auth.SessionUser{
		ID:    uuid.NewString(),
		Name:  "Test User",
		Email: "user@test.com",
		Role:  models.RoleStandard,
	}
}

// PremiumUser returns a session user with the Premium role.
func PremiumUser() auth.SessionUser {
	return auth.SessionUser{
		ID:    uuid.NewString(),
		Name:  "Test Institution",
		Email: "premium@test.com",
		Role:  models.RolePremium,
	}
}

// SessionFor builds a session user from a stored account, as the login
// handler would.
func SessionFor(u models.User) auth.SessionUser {
	return auth.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NewRequest creates an HTTP request for testing. A non-empty body is
// sent as JSON.
func NewRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// NewAuthenticatedRequest creates a request with a user already in
// context, bypassing the session middleware.
func NewAuthenticatedRequest(method, target, body string, user auth.SessionUser) *http.Request {
	return auth.WithUser(NewRequest(method, target, body), user)
}

// WithChiURLParam injects a chi route parameter into the request context
// so handlers can be tested without running the router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithChiURLParams injects several route parameters at once.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ResponseRecorder wraps httptest.ResponseRecorder with assertions.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks that the response body contains the expected
// substring.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q (body: %s)", expected, r.Body.String())
	}
}
