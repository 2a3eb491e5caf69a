// internal/app/features/projects/collabops.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	weberrors "github.com/ponsectors/ponsectors/internal/app/features/errors"
	"github.com/ponsectors/ponsectors/internal/app/policy/projectpolicy"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/app/system/timeouts"
)

// HandleJoinRequest files a join request for the signed-in user.
// POST /api/projects/{id}/join-request
func (h *Handler) HandleJoinRequest(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !projectpolicy.CanRequestJoin(actor(r), p) {
		weberrors.Message(w, http.StatusConflict, "already part of this project")
		return
	}
	if err := h.Collab.RequestJoin(ctx, p, su.ID); err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{"status": "requested"})
}

// HandleInvite adds the user registered under the given email as a
// collaborator. Owner only.
// POST /api/projects/{id}/invite
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := weberrors.Decode(r, &req); err != nil || normalize.Email(req.Email) == "" {
		weberrors.Message(w, http.StatusBadRequest, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.Stores.Projects.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	if !projectpolicy.CanInvite(actor(r), p) {
		weberrors.Message(w, http.StatusForbidden, "only the owner can invite collaborators")
		return
	}

	invitee, err := h.Collab.InviteByEmail(ctx, p, req.Email)
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]string{
		"status":    "invited",
		"inviteeId": invitee.ID,
	})
}

// HandleSave toggles the project in the caller's saved list.
// POST /api/projects/{id}/save
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, saved, err := h.Collab.ToggleSave(ctx, su.ID, chi.URLParam(r, "id"))
	if err != nil {
		weberrors.Write(w, h.Log, err)
		return
	}
	weberrors.JSON(w, http.StatusOK, map[string]any{
		"saved":           saved,
		"savedProjectIds": u.SavedProjectIDs,
	})
}
