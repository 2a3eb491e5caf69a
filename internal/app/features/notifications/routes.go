// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
)

// Routes mounts the notification endpoints under /api/notifications.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Post("/{id}/read", h.HandleMarkRead)

	return r
}
