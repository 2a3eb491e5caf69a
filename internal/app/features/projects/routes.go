// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
)

// Routes mounts the project endpoints under /api/projects. Everything
// requires a session; visibility filtering happens in the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(pr chi.Router) {
		pr.Get("/", h.HandleGet)
		pr.Put("/", h.HandleUpdate)
		pr.Delete("/", h.HandleDelete)

		pr.Post("/join-request", h.HandleJoinRequest)
		pr.Post("/invite", h.HandleInvite)
		pr.Post("/save", h.HandleSave)

		pr.Get("/comments", h.HandleListComments)
		pr.Post("/comments", h.HandleAddComment)
		pr.Delete("/comments/{commentID}", h.HandleDeleteComment)
	})

	return r
}
