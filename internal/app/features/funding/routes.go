// internal/app/features/funding/routes.go
package funding

import (
	"github.com/go-chi/chi/v5"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
)

// Routes mounts the funding endpoints under /api/funding. The Premium
// gate for creation is enforced in the handler so the error can name
// the missing role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
