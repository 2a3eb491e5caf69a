// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/htmlsanitize"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Handler serves public profiles and the signed-in user's own profile.
type Handler struct {
	Users    store.Users
	Projects store.Projects
	Log      *zap.Logger
}

func NewHandler(users store.Users, projects store.Projects, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Projects: projects, Log: logger}
}

// publicProfile is the view other users see. It omits the email address
// and the bookmark set.
type publicProfile struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	StakeholderType models.StakeholderType `json:"stakeholderType"`
	Subtype         string                 `json:"subtype,omitempty"`
	Country         string                 `json:"country"`
	City            string                 `json:"city,omitempty"`
	FocusAreas      []string               `json:"focusAreas"`
	About           string                 `json:"about,omitempty"`
	AvatarURL       string                 `json:"avatarUrl,omitempty"`
	IsVerified      bool                   `json:"isVerified"`
}

func toPublic(u models.User) publicProfile {
	return publicProfile{
		ID:              u.ID,
		Name:            u.Name,
		StakeholderType: u.StakeholderType,
		Subtype:         u.Subtype,
		Country:         u.Country,
		City:            u.City,
		FocusAreas:      u.FocusAreas,
		About:           u.About,
		AvatarURL:       u.AvatarURL,
		IsVerified:      u.IsVerified,
	}
}

// HandleGetProfile returns another user's public profile.
// GET /api/users/{id}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, toPublic(u))
}

type profileUpdateRequest struct {
	Name            string   `json:"name"`
	StakeholderType string   `json:"stakeholderType"`
	Subtype         string   `json:"subtype"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	FocusAreas      []string `json:"focusAreas"`
	About           string   `json:"about"`
	AvatarURL       string   `json:"avatarUrl"`
}

// HandleUpdateMe edits the current user's own profile.
// PUT /api/me
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		weberrors.Message(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req profileUpdateRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProfile(&req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cur, err := h.Users.GetByID(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	cur.Name = req.Name
	cur.StakeholderType = models.StakeholderType(req.StakeholderType)
	cur.Subtype = req.Subtype
	cur.Country = req.Country
	cur.City = req.City
	cur.FocusAreas = req.FocusAreas
	cur.About = htmlsanitize.Sanitize(req.About)
	cur.AvatarURL = req.AvatarURL

	if err := h.Users.Update(ctx, cur); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	updated, err := h.Users.GetByID(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, updated)
}

// HandleSaved returns the current user's bookmarked projects, resolved
// and filtered to what the user may still see. A bookmark pointing at a
// project that has since been deleted or unshared is skipped, not an
// error.
// GET /api/me/saved
func (h *Handler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		weberrors.Message(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	viewer := contentpolicy.Viewer{UserID: su.ID, Role: su.Role}
	saved := []models.Project{}
	for _, id := range u.SavedProjectIDs {
		p, err := h.Projects.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			weberrors.Write(w, h.Log, err)
			return
		}
		if contentpolicy.CanView(viewer, p.OwnerID, p.Status) {
			saved = append(saved, p)
		}
	}
	weberrors.JSON(w, http.StatusOK, saved)
}

func validateProfile(req *profileUpdateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("name is required")
	}
	if !models.IsValidStakeholderType(models.StakeholderType(req.StakeholderType)) {
		return errors.New("invalid stakeholder type")
	}
	if strings.TrimSpace(req.Country) == "" {
		return errors.New("country is required")
	}
	for _, area := range req.FocusAreas {
		if !models.IsValidThematicArea(area) {
			return errors.New("unknown focus area: " + area)
		}
	}
	return nil
}
