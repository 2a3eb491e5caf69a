// internal/app/features/funding/handler.go
package funding

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/authz"
	"github.com/ponsectors/ponsectors/internal/app/system/htmlsanitize"
	"github.com/ponsectors/ponsectors/internal/app/system/paging"
	"github.com/ponsectors/ponsectors/internal/app/system/search"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type Handler struct {
	Funding store.Funding
	Log     *zap.Logger
}

func NewHandler(funding store.Funding, logger *zap.Logger) *Handler {
	return &Handler{Funding: funding, Log: logger}
}

type fundingRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Deadline        string `json:"deadline"`
	Eligibility     string `json:"eligibility"`
	ApplicationInfo string `json:"applicationInfo"`
	Status          string `json:"status"`
}

func viewer(r *http.Request) contentpolicy.Viewer {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return contentpolicy.Viewer{}
	}
	return contentpolicy.Viewer{UserID: su.ID, Role: su.Role}
}

// HandleList returns the funding opportunities visible to the caller.
// GET /api/funding, with ?q= and ?page=/?per_page= filtering.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Funding.GetAll(ctx)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	visible := contentpolicy.FilterFunding(viewer(r), all)

	if q := r.URL.Query().Get("q"); q != "" {
		matched := visible[:0]
		for _, f := range visible {
			if search.Matches(q, f.Title, f.Description, f.Eligibility) {
				matched = append(matched, f)
			}
		}
		visible = matched
	}

	page := paging.Parse(r)
	weberrors.JSON(w, http.StatusOK, paging.Slice(visible, &page))
}

// HandleGet returns one opportunity if visible.
// GET /api/funding/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := h.Funding.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !contentpolicy.CanView(viewer(r), f.OwnerID, f.Status) {
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}
	weberrors.JSON(w, http.StatusOK, f)
}

// HandleCreate posts a funding opportunity. Premium and Admin only;
// standard accounts are told what is missing.
// POST /api/funding
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)
	if !authz.CanPostFunding(su.Role) {
		weberrors.Message(w, http.StatusForbidden, "posting funding opportunities requires a premium account")
		return
	}

	var req fundingRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		weberrors.Message(w, http.StatusBadRequest, "title is required")
		return
	}
	status := models.ContentStatus(req.Status)
	if req.Status == "" {
		status = models.StatusDraft
	}
	if !status.IsCreatable() {
		weberrors.Message(w, http.StatusBadRequest, "new opportunities must be Draft or Pending")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Funding.Create(ctx, models.FundingOpportunity{
		Title:           strings.TrimSpace(req.Title),
		Description:     htmlsanitize.Sanitize(req.Description),
		Deadline:        strings.TrimSpace(req.Deadline),
		Eligibility:     htmlsanitize.Sanitize(req.Eligibility),
		ApplicationInfo: htmlsanitize.Sanitize(req.ApplicationInfo),
		OwnerID:         su.ID,
		Status:          status,
	})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Log.Info("funding opportunity created", zap.String("funding_id", f.ID))
	weberrors.JSON(w, http.StatusCreated, f)
}

// HandleUpdate edits an opportunity. Owner only; Draft may resubmit.
// PUT /api/funding/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Funding.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if f.OwnerID != su.ID && su.Role != models.RoleAdmin {
		weberrors.Message(w, http.StatusForbidden, "not allowed to edit this opportunity")
		return
	}

	var req fundingRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		weberrors.Message(w, http.StatusBadRequest, "title is required")
		return
	}

	if req.Status != "" && models.ContentStatus(req.Status) != f.Status {
		to := models.ContentStatus(req.Status)
		if to != models.StatusPending || !f.Status.CanTransition(to) {
			weberrors.Message(w, http.StatusBadRequest, "status change not allowed")
			return
		}
		if _, err := h.Funding.TransitionStatus(ctx, f.ID, f.Status, to); err != nil {
			weberrors.Write(w, h.Log, err)
			return
		}
	}

	f.Title = strings.TrimSpace(req.Title)
	f.Description = htmlsanitize.Sanitize(req.Description)
	f.Deadline = strings.TrimSpace(req.Deadline)
	f.Eligibility = htmlsanitize.Sanitize(req.Eligibility)
	f.ApplicationInfo = htmlsanitize.Sanitize(req.ApplicationInfo)
	if err := h.Funding.Update(ctx, f); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	updated, err := h.Funding.GetByID(ctx, f.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes an opportunity. Owner only.
// DELETE /api/funding/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Funding.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if f.OwnerID != su.ID && su.Role != models.RoleAdmin {
		weberrors.Message(w, http.StatusForbidden, "not allowed to delete this opportunity")
		return
	}
	if err := h.Funding.Delete(ctx, f.ID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
