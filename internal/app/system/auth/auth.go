// Package auth manages cookie sessions and the middleware gates that
// protect signed-in routes.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type ctxKey int

const userKey ctxKey = 0

// SessionUser is the slice of account state carried in the session cookie.
type SessionUser struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (su SessionUser) IsAdmin() bool { return su.Role == models.RoleAdmin }

// UserFetcher refreshes session users from the backing store so role
// changes take effect without forcing a re-login.
type UserFetcher func(ctx context.Context, id string) (SessionUser, bool)

// SessionManager owns the session cookie for the app.
type SessionManager struct {
	store   sessions.Store
	name    string
	logger  *zap.Logger
	fetcher UserFetcher
}

// NewSessionManager builds a cookie-backed session manager. The key must
// stay stable across restarts or every session is invalidated.
func NewSessionManager(secret []byte, name, domain string, secure bool, logger *zap.Logger) *SessionManager {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   60 * 60 * 24 * 14,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: cs, name: name, logger: logger}
}

// SetUserFetcher installs a refresh hook applied when a session is restored.
func (m *SessionManager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// SignIn writes the user into the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, su SessionUser) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values["uid"] = su.ID
	sess.Values["name"] = su.Name
	sess.Values["email"] = su.Email
	sess.Values["role"] = string(su.Role)
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// LoadSessionUser restores the signed-in user from the cookie, refreshing
// it through the fetcher when one is installed.
func (m *SessionManager) LoadSessionUser(r *http.Request) (SessionUser, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return SessionUser{}, false
	}
	id, _ := sess.Values["uid"].(string)
	if id == "" {
		return SessionUser{}, false
	}
	su := SessionUser{ID: id}
	su.Name, _ = sess.Values["name"].(string)
	su.Email, _ = sess.Values["email"].(string)
	if role, ok := sess.Values["role"].(string); ok {
		su.Role = models.UserRole(role)
	}
	if m.fetcher != nil {
		if fresh, ok := m.fetcher(r.Context(), id); ok {
			return fresh, true
		}
		return SessionUser{}, false
	}
	return su, true
}

// CurrentUser returns the user placed in the request context by the
// middleware, or false when the request is anonymous.
func CurrentUser(r *http.Request) (SessionUser, bool) {
	su, ok := r.Context().Value(userKey).(SessionUser)
	return su, ok
}

// WithUser stores the user in the request context. Exposed for handler tests.
func WithUser(r *http.Request, su SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, su))
}

// RequireSignedIn rejects anonymous requests with a 401 JSON body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		su, ok := m.LoadSessionUser(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "sign-in required")
			return
		}
		next.ServeHTTP(w, WithUser(r, su))
	})
}

// RequireRole rejects signed-in users whose role is not in the allowed set.
func (m *SessionManager) RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			su, ok := CurrentUser(r)
			if !ok {
				if su, ok = m.LoadSessionUser(r); !ok {
					writeAuthError(w, http.StatusUnauthorized, "sign-in required")
					return
				}
				r = WithUser(r, su)
			}
			for _, role := range roles {
				if su.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden, "insufficient role")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
