// internal/app/features/moderation/handler.go
package moderation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/store"
	sysmod "github.com/ponsectors/ponsectors/internal/app/system/moderation"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Handler serves the admin console endpoints.
type Handler struct {
	Users      store.Users
	Moderation *sysmod.Service
	Log        *zap.Logger
}

func NewHandler(users store.Users, svc *sysmod.Service, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Moderation: svc, Log: logger}
}

type decisionRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// HandleQueue lists everything waiting for review.
// GET /api/admin/queue
func (h *Handler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	items, err := h.Moderation.Queue(ctx)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if items == nil {
		items = []sysmod.QueueItem{}
	}
	weberrors.JSON(w, http.StatusOK, items)
}

// HandleApprove approves one pending item.
// POST /api/admin/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Moderation.Approve)
}

// HandleReject rejects one pending item.
// POST /api/admin/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Moderation.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(context.Context, sysmod.Decision) (sysmod.Outcome, error)) {
	var req decisionRequest
	if err := weberrors.Decode(r, &req); err != nil || req.ID == "" {
		weberrors.Message(w, http.StatusBadRequest, "kind and id are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	out, err := fn(ctx, sysmod.Decision{Kind: models.ContentKind(req.Kind), ID: req.ID})
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, out)
}

// HandleListUsers returns the full user directory for the console.
// GET /api/admin/users
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.GetAll(ctx)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, users)
}

// HandleSetRole changes a user's role.
// POST /api/admin/users/{id}/role
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := weberrors.Decode(r, &req); err != nil {
		weberrors.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role := models.UserRole(req.Role)
	if !models.IsValidUserRole(role) {
		weberrors.Message(w, http.StatusBadRequest, "invalid role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Users.UpdateRole(ctx, id, role); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	h.Log.Info("role changed", zap.String("user_id", id), zap.String("role", string(role)))
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "updated", "role": string(role)})
}
