// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/store/oauthstate"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/authz"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Handler runs the Google OAuth sign-in flow. Accounts are created on
// first sign-in; a returning Google user is matched by email.
type Handler struct {
	Users      store.Users
	States     oauthstate.States
	SessionMgr *auth.SessionManager
	Policy     *authz.Policy
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewHandler(users store.Users, states oauthstate.States, sm *auth.SessionManager, policy *authz.Policy, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		States:       states,
		SessionMgr:   sm,
		Policy:       policy,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google sign-in is enabled.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin starts the flow by redirecting to Google's consent screen.
// GET /api/auth/google
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("google sign-in not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	nonce := securecookie.GenerateRandomKey(32)
	if nonce == nil {
		h.Log.Error("failed to generate oauth state")
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	state := fmt.Sprintf("%x", nonce)
	returnURL := r.URL.Query().Get("return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.States.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save oauth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback completes the flow: validates the state nonce, exchanges
// the code, fetches the Google profile, then signs in an existing
// account or registers a new Standard one.
// GET /api/auth/google/callback
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("google oauth error", zap.String("error", errParam))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	vctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.States.Validate(vctx, state)
	if err != nil {
		h.Log.Error("failed to validate oauth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired oauth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}
	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	info, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	u, err := h.findOrCreateUser(ctx, info)
	if err != nil {
		h.Log.Error("google sign-in failed", zap.Error(err), zap.String("email", info.Email))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	role := h.Policy.EffectiveRole(u.Email, u.Role)
	su := auth.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: role}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in via google", zap.String("user_id", u.ID))
	http.Redirect(w, r, safeReturn(returnURL), http.StatusSeeOther)
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func (h *Handler) findOrCreateUser(ctx context.Context, info *googleUserInfo) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, info.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	created, err := h.Users.Create(ctx, models.User{
		Email:           info.Email,
		Name:            info.Name,
		StakeholderType: models.StakeholderIndividual,
		AvatarURL:       info.Picture,
		Role:            models.RoleStandard,
		IsVerified:      info.EmailVerified,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		// Raced with another sign-in for the same address.
		return h.Users.GetByEmail(ctx, info.Email)
	}
	if err != nil {
		return models.User{}, err
	}
	h.Log.Info("account created via google", zap.String("user_id", created.ID))
	return created, nil
}

// safeReturn keeps post-login redirects on this site.
func safeReturn(returnURL string) string {
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return "/"
	}
	return returnURL
}
