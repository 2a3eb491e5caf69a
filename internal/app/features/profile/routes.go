// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
)

// Routes mounts the profile endpoints. Public profiles live under
// /api/users/{id}; self-service editing and bookmarks under /api/me.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(gr chi.Router) {
		gr.Use(sm.RequireSignedIn)

		gr.Get("/users/{id}", h.HandleGetProfile)
		gr.Put("/me", h.HandleUpdateMe)
		gr.Get("/me/saved", h.HandleSaved)
	})
}
