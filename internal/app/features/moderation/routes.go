// internal/app/features/moderation/routes.go
package moderation

import (
	"github.com/go-chi/chi/v5"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Routes mounts the admin console under /api/admin. Everything here
// requires the Admin role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(models.RoleAdmin))

	r.Get("/queue", h.HandleQueue)
	r.Post("/approve", h.HandleApprove)
	r.Post("/reject", h.HandleReject)

	r.Get("/users", h.HandleListUsers)
	r.Post("/users/{id}/role", h.HandleSetRole)

	return r
}
