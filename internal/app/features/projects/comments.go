// internal/app/features/projects/comments.go
package projects

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/app/policy/projectpolicy"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/commenttree"
	"github.com/ponsectors/ponsectors/internal/app/system/htmlsanitize"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// HandleListComments returns the project's comment thread as a reply
// tree.
// GET /api/projects/{id}/comments
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !contentpolicy.CanView(viewer(r), p.OwnerID, p.Status) {
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}

	flat, err := h.Stores.Comments.GetByParent(ctx, p.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, commenttree.Build(flat))
}

// HandleAddComment appends a comment or reply to the thread.
// POST /api/projects/{id}/comments
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	var req struct {
		Text      string `json:"text"`
		ReplyToID string `json:"replyToId"`
	}
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(htmlsanitize.Sanitize(req.Text))
	if text == "" {
		weberrors.Message(w, http.StatusBadRequest, "comment text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !contentpolicy.CanView(viewer(r), p.OwnerID, p.Status) {
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}

	flat, err := h.Stores.Comments.GetByParent(ctx, p.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if err := commenttree.ValidateReply(flat, p.ID, req.ReplyToID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}

	c, err := h.Stores.Comments.Add(ctx, models.Comment{
		ParentID:  p.ID,
		AuthorID:  su.ID,
		Text:      text,
		ReplyToID: req.ReplyToID,
	})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if err := h.Stores.Projects.IncCommentCount(ctx, p.ID, 1); err != nil {
		h.Log.Warn("comment counter adjustment failed", zap.String("project_id", p.ID), zap.Error(err))
	}
	if su.ID != p.OwnerID {
		if _, err := h.Stores.Notifications.Add(ctx, models.Notification{
			UserID:    p.OwnerID,
			Kind:      models.NotifyComment,
			Message:   fmt.Sprintf("%s commented on %q.", su.Name, p.Title),
			RelatedID: p.ID,
		}); err != nil {
			h.Log.Warn("comment notification failed", zap.String("project_id", p.ID), zap.Error(err))
		}
	}
	weberrors.JSON(w, http.StatusCreated, c)
}

// HandleDeleteComment removes one comment node. Replies survive and are
// promoted when the tree is rebuilt.
// DELETE /api/projects/{id}/comments/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	c, err := h.Stores.Comments.GetByID(ctx, chi.URLParam(r, "commentID"))
	if err != nil || c.ParentID != p.ID {
		weberrors.Message(w, http.StatusNotFound, "not found")
		return
	}
	if !projectpolicy.CanDeleteComment(actor(r), p, c) {
		weberrors.Message(w, http.StatusForbidden, "not allowed to delete this comment")
		return
	}
	if err := h.Stores.Comments.Delete(ctx, c.ID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if err := h.Stores.Projects.IncCommentCount(ctx, p.ID, -1); err != nil {
		h.Log.Warn("comment counter adjustment failed", zap.String("project_id", p.ID), zap.Error(err))
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
