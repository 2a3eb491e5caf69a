// internal/app/features/insights/handler.go
package insights

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
	"github.com/ponsectors/ponsectors/internal/app/system/htmlsanitize"
	"github.com/ponsectors/ponsectors/internal/app/system/paging"
	"github.com/ponsectors/ponsectors/internal/app/system/search"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type Handler struct {
	Insights store.Insights
	Log      *zap.Logger
}

func NewHandler(insights store.Insights, logger *zap.Logger) *Handler {
	return &Handler{Insights: insights, Log: logger}
}

type insightRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Attachments []models.Attachment `json:"attachments"`
}

func viewer(r *http.Request) contentpolicy.Viewer {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return contentpolicy.Viewer{}
	}
	return contentpolicy.Viewer{UserID: su.ID, Role: su.Role}
}

// HandleList returns the insights visible to the caller.
// GET /api/insights, with ?q= and ?page=/?per_page= filtering.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Insights.GetAll(ctx)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	visible := contentpolicy.FilterInsights(viewer(r), all)

	if q := r.URL.Query().Get("q"); q != "" {
		matched := visible[:0]
		for _, in := range visible {
			if search.Matches(q, in.Title, in.Description) {
				matched = append(matched, in)
			}
		}
		visible = matched
	}

	page := paging.Parse(r)
	weberrors.JSON(w, http.StatusOK, paging.Slice(visible, &page))
}

// HandleGet returns one insight if visible.
// GET /api/insights/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	in, err := h.Insights.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !contentpolicy.CanView(viewer(r), in.AuthorID, in.Status) {
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}
	weberrors.JSON(w, http.StatusOK, in)
}

// HandleCreate publishes a new insight as Draft or Pending.
// POST /api/insights
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	var req insightRequest
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
		weberrors.Message(w, http.StatusBadRequest, "new insights must be Draft or Pending")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	in, err := h.Insights.Create(ctx, models.Insight{
		Title:       strings.TrimSpace(req.Title),
		Description: htmlsanitize.Sanitize(req.Description),
		AuthorID:    su.ID,
		Status:      status,
		Attachments: req.Attachments,
	})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Log.Info("insight created", zap.String("insight_id", in.ID))
	weberrors.JSON(w, http.StatusCreated, in)
}

// HandleUpdate edits an insight. Author only; a Draft may be resubmitted
// to Pending.
// PUT /api/insights/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	in, err := h.Insights.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if in.AuthorID != su.ID && su.Role != models.RoleAdmin {
		weberrors.Message(w, http.StatusForbidden, "not allowed to edit this insight")
		return
	}

	var req insightRequest
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		weberrors.Message(w, http.StatusBadRequest, "title is required")
		return
	}

	if req.Status != "" && models.ContentStatus(req.Status) != in.Status {
		to := models.ContentStatus(req.Status)
		if to != models.StatusPending || !in.Status.CanTransition(to) {
			weberrors.Message(w, http.StatusBadRequest, "status change not allowed")
			return
		}
		if _, err := h.Insights.TransitionStatus(ctx, in.ID, in.Status, to); err != nil {
			weberrors.Write(w, h.Log, err)
			return
		}
	}

	in.Title = strings.TrimSpace(req.Title)
	in.Description = htmlsanitize.Sanitize(req.Description)
	in.Attachments = req.Attachments
	if err := h.Insights.Update(ctx, in); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	updated, err := h.Insights.GetByID(ctx, in.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes an insight. Author only.
// DELETE /api/insights/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	in, err := h.Insights.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if in.AuthorID != su.ID && su.Role != models.RoleAdmin {
		weberrors.Message(w, http.StatusForbidden, "not allowed to delete this insight")
		return
	}
	if err := h.Insights.Delete(ctx, in.ID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
