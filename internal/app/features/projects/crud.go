// internal/app/features/projects/crud.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/app/policy/projectpolicy"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/htmlsanitize"
	"github.com/ponsectors/ponsectors/internal/app/system/paging"
	"github.com/ponsectors/ponsectors/internal/app/system/search"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type projectRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	ThematicArea string              `json:"thematicArea"`
	Country      string              `json:"country"`
	City         string              `json:"city"`
	Status       string              `json:"status"`
	Visibility   string              `json:"visibility"`
	Attachments  []models.Attachment `json:"attachments"`
}

// HandleList returns projects the caller may see.
// GET /api/projects                 everything visible to the caller
// GET /api/projects?view=portfolio  Shared and Public only
// GET /api/projects?view=mine       owned or collaborating
// Supports ?q= keyword filtering and ?page=/?per_page= pagination.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Stores.Projects.GetAll(ctx)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	v := viewer(r)
	switch r.URL.Query().Get("view") {
	case "portfolio":
		all = contentpolicy.PortfolioProjects(all)
	case "mine":
		mine := all[:0]
		for _, p := range all {
			if p.OwnerID == v.UserID || p.HasCollaborator(v.UserID) {
				mine = append(mine, p)
			}
		}
		all = mine
	default:
		all = contentpolicy.FilterProjects(v, all)
	}

	if q := r.URL.Query().Get("q"); q != "" {
		matched := all[:0]
		for _, p := range all {
			if search.Matches(q, p.Title, p.Description, p.ThematicArea, p.Country, p.City) {
				matched = append(matched, p)
			}
		}
		all = matched
	}

	page := paging.Parse(r)
	weberrors.JSON(w, http.StatusOK, paging.Slice(all, &page))
}

// HandleGet returns one project if the caller may see it.
// GET /api/projects/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !contentpolicy.CanView(viewer(r), p.OwnerID, p.Status) {
		// Hide the existence of unshared projects.
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}
	weberrors.JSON(w, http.StatusOK, p)
}

// HandleCreate creates a project as Draft or submits it straight to
// Pending. The creator becomes the Owner collaborator.
// POST /api/projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	var req projectRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProject(req); msg != "" {
		weberrors.Message(w, http.StatusBadRequest, msg)
		return
	}
	status := models.ContentStatus(req.Status)
	if req.Status == "" {
		status = models.StatusDraft
	}
	if !status.IsCreatable() {
		weberrors.Message(w, http.StatusBadRequest, "new projects must be Draft or Pending")
		return
	}
	visibility := models.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityRestricted {
		weberrors.Message(w, http.StatusBadRequest, "invalid visibility")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Stores.Projects.Create(ctx, models.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  htmlsanitize.Sanitize(req.Description),
		ThematicArea: req.ThematicArea,
		Country:      strings.TrimSpace(req.Country),
		City:         strings.TrimSpace(req.City),
		OwnerID:      su.ID,
		Status:       status,
		Visibility:   visibility,
		Attachments:  req.Attachments,
	})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Log.Info("project created", zap.String("project_id", p.ID), zap.String("owner_id", su.ID))
	weberrors.JSON(w, http.StatusCreated, p)
}

// HandleUpdate edits a project. Passing status Pending on a Draft
// resubmits it for review; any other status change is refused here and
// belongs to moderation.
// PUT /api/projects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !projectpolicy.CanEdit(actor(r), p) {
		weberrors.Message(w, http.StatusForbidden, "not allowed to edit this project")
		return
	}

	var req projectRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProject(req); msg != "" {
		weberrors.Message(w, http.StatusBadRequest, msg)
		return
	}

	if req.Status != "" && models.ContentStatus(req.Status) != p.Status {
		to := models.ContentStatus(req.Status)
		if !p.Status.CanTransition(to) {
			weberrors.Message(w, http.StatusBadRequest, "status change not allowed")
			return
		}
		if to != models.StatusPending {
			// Shared/Rejected are moderation outcomes, not edits.
			weberrors.Message(w, http.StatusBadRequest, "status change not allowed")
			return
		}
		if _, err := h.Stores.Projects.TransitionStatus(ctx, p.ID, p.Status, to); err != nil {
			weberrors.Write(w, h.Log, err)
			return
		}
	}

	p.Title = strings.TrimSpace(req.Title)
	p.Description = htmlsanitize.Sanitize(req.Description)
	p.ThematicArea = req.ThematicArea
	p.Country = strings.TrimSpace(req.Country)
	p.City = strings.TrimSpace(req.City)
	if req.Visibility != "" {
		p.Visibility = models.Visibility(req.Visibility)
	}
	p.Attachments = req.Attachments

	if err := h.Stores.Projects.Update(ctx, p); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	updated, err := h.Stores.Projects.GetByID(ctx, p.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes a project. Owner only.
// DELETE /api/projects/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !projectpolicy.CanDelete(actor(r), p) {
		weberrors.Message(w, http.StatusForbidden, "not allowed to delete this project")
		return
	}
	if err := h.Stores.Projects.Delete(ctx, p.ID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Log.Info("project deleted", zap.String("project_id", p.ID))
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validateProject(req projectRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.ThematicArea != "" && !models.IsValidThematicArea(req.ThematicArea) {
		return "invalid thematic area"
	}
	return ""
}
