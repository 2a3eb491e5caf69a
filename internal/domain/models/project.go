// internal/domain/models/project.go
package models

import "time"

// CollaboratorRole is a user's role within a single project.
type CollaboratorRole string

const (
	CollaboratorOwner  CollaboratorRole = "Owner"
	CollaboratorMember CollaboratorRole = "Collaborator"
	CollaboratorViewer CollaboratorRole = "Viewer"
)

// CollaboratorStatus marks whether a collaborator entry is live.
type CollaboratorStatus string

const (
	CollaboratorActive  CollaboratorStatus = "Active"
	CollaboratorPending CollaboratorStatus = "Pending"
)

// Collaborator is embedded in Project, not a standalone document.
type Collaborator struct {
	UserID string             `bson:"user_id" json:"userId"`
	Role   CollaboratorRole   `bson:"role" json:"role"`
	Status CollaboratorStatus `bson:"status" json:"status"`
}

// Visibility controls whether a Shared project appears in the public
// portfolio or only to its collaborators.
type Visibility string

const (
	VisibilityPublic     Visibility = "Public"
	VisibilityRestricted Visibility = "Restricted"
)

// Attachment is a file reference carried on submittable content.
type Attachment struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
	Size int64  `bson:"size,omitempty" json:"size,omitempty"`
}

// Project is the platform's collaboration unit.
//
// Invariants (maintained by EnsureOwnerCollaborator, applied by both
// storage backends on create and update):
//   - the owner always appears in Collaborators with role Owner
//   - collaborator entries are unique per user id
type Project struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Title         string         `bson:"title" json:"title"`
	TitleCI       string         `bson:"title_ci" json:"-"`
	Description   string         `bson:"description" json:"description"`
	ThematicArea  string         `bson:"thematic_area" json:"thematicArea"`
	Country       string         `bson:"country" json:"country"`
	City          string         `bson:"city,omitempty" json:"city,omitempty"`
	OwnerID       string         `bson:"owner_id" json:"ownerId"`
	Collaborators []Collaborator `bson:"collaborators" json:"collaborators"`
	Status        ContentStatus  `bson:"status" json:"status"`
	Attachments   []Attachment   `bson:"attachments,omitempty" json:"attachments"`
	JoinRequests  []string       `bson:"join_requests,omitempty" json:"joinRequests"`
	Visibility    Visibility     `bson:"visibility" json:"visibility"`
	CommentCount  int            `bson:"comment_count" json:"commentCount"`
	SaveCount     int            `bson:"save_count" json:"saveCount"`
	CreatedAt     time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updatedAt"`
}

// EnsureOwnerCollaborator normalizes the collaborator list: entries are
// deduplicated per user id (first occurrence wins) and the owner is
// guaranteed to be present with role Owner, status Active.
func EnsureOwnerCollaborator(p *Project) {
	seen := make(map[string]struct{}, len(p.Collaborators))
	out := p.Collaborators[:0]
	ownerPresent := false
	for _, c := range p.Collaborators {
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}
		if c.UserID == p.OwnerID {
			c.Role = CollaboratorOwner
			c.Status = CollaboratorActive
			ownerPresent = true
		}
		out = append(out, c)
	}
	p.Collaborators = out
	if !ownerPresent && p.OwnerID != "" {
		p.Collaborators = append([]Collaborator{{
			UserID: p.OwnerID,
			Role:   CollaboratorOwner,
			Status: CollaboratorActive,
		}}, p.Collaborators...)
	}
}

// HasCollaborator reports whether the given user appears in the
// collaborator list (any role, any status).
func (p *Project) HasCollaborator(userID string) bool {
	for _, c := range p.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// HasJoinRequest reports whether the given user has an open join request.
func (p *Project) HasJoinRequest(userID string) bool {
	for _, id := range p.JoinRequests {
		if id == userID {
			return true
		}
	}
	return false
}
