// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/store"
	sysauth "github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/authz"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/app/system/ratelimit"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

const minPasswordLen = 8

type Handler struct {
	Users      store.Users
	SessionMgr *sysauth.SessionManager
	Policy     *authz.Policy
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(users store.Users, sm *sysauth.SessionManager, policy *authz.Policy, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sm,
		Policy:     policy,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

type registerRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Name            string   `json:"name"`
	StakeholderType string   `json:"stakeholderType"`
	Subtype         string   `json:"subtype"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	FocusAreas      []string `json:"focusAreas"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an account with the Standard role and signs the
// new user in.
// POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateRegistration(req); msg != "" {
		weberrors.Message(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Email:           req.Email,
		PasswordHash:    string(hash),
		Name:            req.Name,
		StakeholderType: models.StakeholderType(req.StakeholderType),
		Subtype:         strings.TrimSpace(req.Subtype),
		Country:         strings.TrimSpace(req.Country),
		City:            strings.TrimSpace(req.City),
		FocusAreas:      req.FocusAreas,
		Role:            models.RoleStandard,
	})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	h.establishSession(w, r, u)
	h.Log.Info("user registered", zap.String("user_id", u.ID))
	weberrors.JSON(w, http.StatusCreated, h.withEffectiveRole(u))
}

// HandleLogin verifies credentials and establishes the session. The
// admin allow-list override is applied here and written back to the
// account record when it disagrees.
// POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if ok, reason := h.Limiter.Check(r, req.Email); !ok {
		weberrors.Message(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Limiter.ResetEmail(u.Email)

	effective := h.Policy.EffectiveRole(u.Email, u.Role)
	if effective != u.Role {
		if err := h.Users.UpdateRole(ctx, u.ID, effective); err != nil {
			// The override still applies for this session.
			h.Log.Warn("role persist failed", zap.String("user_id", u.ID), zap.Error(err))
		}
		u.Role = effective
	}

	h.establishSession(w, r, u)
	h.Log.Info("user signed in", zap.String("user_id", u.ID))
	weberrors.JSON(w, http.StatusOK, u)
}

// HandleLogout clears the session cookie.
// POST /api/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// HandleMe returns the signed-in user's account.
// GET /api/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		weberrors.Message(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, h.withEffectiveRole(u))
}

func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, u models.User) {
	su := sysauth.SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  h.Policy.EffectiveRole(u.Email, u.Role),
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Warn("session write failed", zap.String("user_id", u.ID), zap.Error(err))
	}
}

func (h *Handler) withEffectiveRole(u models.User) models.User {
	u.Role = h.Policy.EffectiveRole(u.Email, u.Role)
	return u
}

func validateRegistration(req registerRequest) string {
	if normalize.Email(req.Email) == "" {
		return "email is required"
	}
	if len(req.Password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	if normalize.Name(req.Name) == "" {
		return "name is required"
	}
	if !models.IsValidStakeholderType(models.StakeholderType(req.StakeholderType)) {
		return "invalid stakeholder type"
	}
	for _, area := range req.FocusAreas {
		if !models.IsValidThematicArea(area) {
			return "invalid focus area: " + area
		}
	}
	return ""
}
