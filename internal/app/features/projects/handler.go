// internal/app/features/projects/handler.go
package projects

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/app/policy/projectpolicy"
	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/collab"
)

// Handler is the feature-level entry point for projects.
type Handler struct {
	Stores store.Stores
	Collab *collab.Service
	Log    *zap.Logger
}

func NewHandler(st store.Stores, collabSvc *collab.Service, logger *zap.Logger) *Handler {
	return &Handler{Stores: st, Collab: collabSvc, Log: logger}
}

// viewer derives the content-visibility identity from the request.
func viewer(r *http.Request) contentpolicy.Viewer {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return contentpolicy.Viewer{}
	}
	return contentpolicy.Viewer{UserID: su.ID, Role: su.Role}
}

// actor derives the mutation identity from the request.
func actor(r *http.Request) projectpolicy.Actor {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return projectpolicy.Actor{}
	}
	return projectpolicy.Actor{UserID: su.ID, Role: su.Role}
}
