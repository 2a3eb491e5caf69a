// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Handler serves the in-app notification endpoints.
type Handler struct {
	Notifications store.Notifications
	Log           *zap.Logger
}

func NewHandler(notifications store.Notifications, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

// HandleList returns the current user's notifications, newest first.
// GET /api/notifications
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		weberrors.Message(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ns, err := h.Notifications.GetByUser(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if ns == nil {
		ns = []models.Notification{}
	}
	weberrors.JSON(w, http.StatusOK, ns)
}

// HandleMarkRead marks one of the current user's notifications as read.
// POST /api/notifications/{id}/read
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		weberrors.Message(w, http.StatusUnauthorized, "sign in required")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Ownership check before the write; marking someone else's
	// notification is indistinguishable from a missing one.
	ns, err := h.Notifications.GetByUser(ctx, su.ID)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	owned := false
	for _, n := range ns {
		if n.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		weberrors.Message(w, http.StatusNotFound, "notification not found")
		return
	}

	if err := h.Notifications.MarkAsRead(ctx, id); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}
