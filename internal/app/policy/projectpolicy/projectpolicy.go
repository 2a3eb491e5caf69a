// Package projectpolicy provides authorization checks for project
// mutations and collaboration actions.
//
// Authorization rules:
//   - Owner and active collaborators can edit; only the owner (or an
//     admin) can delete or invite
//   - Any signed-in non-collaborator can request to join
//   - Comment deletion belongs to the comment author, the project owner,
//     or an admin
package projectpolicy

import (
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Actor is the identity a permission check runs against.
type Actor struct {
	UserID string
	Role   models.UserRole
}

func (a Actor) isAdmin() bool { return a.Role == models.RoleAdmin }

// isOwner treats an empty actor id as nobody.
func isOwner(a Actor, p models.Project) bool {
	return a.UserID != "" && a.UserID == p.OwnerID
}

// CanEdit reports whether the actor may modify the project. Active
// collaborators share edit rights with the owner.
func CanEdit(a Actor, p models.Project) bool {
	if a.isAdmin() || isOwner(a, p) {
		return true
	}
	if a.UserID == "" {
		return false
	}
	for _, c := range p.Collaborators {
		if c.UserID == a.UserID && c.Status == models.CollaboratorActive {
			return true
		}
	}
	return false
}

// CanDelete is owner-only; collaborators cannot remove the project.
func CanDelete(a Actor, p models.Project) bool {
	return a.isAdmin() || isOwner(a, p)
}

// CanInvite reports whether the actor may invite collaborators.
func CanInvite(a Actor, p models.Project) bool {
	return a.isAdmin() || isOwner(a, p)
}

// CanRequestJoin reports whether the actor may file a join request.
// Owners and existing collaborators have nothing to request.
func CanRequestJoin(a Actor, p models.Project) bool {
	if a.UserID == "" || a.UserID == p.OwnerID {
		return false
	}
	return !p.HasCollaborator(a.UserID)
}

// CanDeleteComment reports whether the actor may remove a comment from
// the project's thread.
func CanDeleteComment(a Actor, p models.Project, c models.Comment) bool {
	if a.isAdmin() {
		return true
	}
	if a.UserID == "" {
		return false
	}
	return a.UserID == c.AuthorID || a.UserID == p.OwnerID
}
