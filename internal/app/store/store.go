// internal/app/store/store.go
//
// Package store defines the storage contract shared by the two backends:
// the Mongo-backed per-collection stores and the in-memory store
// (memstore). Exactly one backend is active at a time, selected by the
// store_backend config key; everything above this contract is
// backend-agnostic.
//
// List-valued mutations (join requests, collaborators, saved projects)
// and status transitions are first-class atomic operations here rather
// than read-modify-write in callers, so concurrent admin approvals or a
// join request racing an invite cannot clobber each other.
package store

import (
	"context"
	"errors"

	"github.com/ponsectors/ponsectors/internal/domain/models"
)

var (
	// ErrNotFound is returned for lookups and mutations against ids
	// that do not exist (stale id on update/delete included).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEmail is returned when creating a user with an email
	// that is already registered.
	ErrDuplicateEmail = errors.New("this email is already registered")

	// ErrInvalidCredentials is returned by Authenticate when the email
	// is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAlreadyCollaborator is returned by AddCollaborator when the
	// user already appears in the project's collaborator list.
	ErrAlreadyCollaborator = errors.New("user is already a collaborator")

	// ErrUnavailable wraps backend connectivity failures so callers can
	// distinguish them from domain errors.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Users is the user directory plus the auth-facing operations.
type Users interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	// GetByEmail matches case-insensitively on the normalized email.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// Create assigns the id and timestamps; fails with ErrDuplicateEmail.
	Create(ctx context.Context, u models.User) (models.User, error)
	// Update replaces the mutable profile fields of an existing user.
	// The password hash and email are not touched.
	Update(ctx context.Context, u models.User) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	// Authenticate verifies the password for the account registered
	// under email. Fails with ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	// ToggleSave atomically flips projectID in the user's saved set and
	// returns the updated user.
	ToggleSave(ctx context.Context, userID, projectID string) (models.User, error)
}

// Projects holds the collaboration units.
type Projects interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, p models.Project) error
	Delete(ctx context.Context, id string) error
	// AddJoinRequest is a set-add: requesting twice leaves exactly one
	// occurrence of userID.
	AddJoinRequest(ctx context.Context, projectID, userID string) error
	// AddCollaborator appends atomically, guarding against duplicates.
	AddCollaborator(ctx context.Context, projectID string, c models.Collaborator) error
	// TransitionStatus applies from->to only when the stored status
	// still equals from (compare-and-swap). Returns false with nil
	// error when the entity exists but the precondition failed, which
	// makes approve/reject double-fires harmless.
	TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error)
	IncCommentCount(ctx context.Context, id string, delta int) error
	IncSaveCount(ctx context.Context, id string, delta int) error
}

// Insights holds single-author posts.
type Insights interface {
	GetAll(ctx context.Context) ([]models.Insight, error)
	GetByID(ctx context.Context, id string) (models.Insight, error)
	Create(ctx context.Context, in models.Insight) (models.Insight, error)
	Update(ctx context.Context, in models.Insight) error
	Delete(ctx context.Context, id string) error
	TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error)
}

// Funding holds funding announcements.
type Funding interface {
	GetAll(ctx context.Context) ([]models.FundingOpportunity, error)
	GetByID(ctx context.Context, id string) (models.FundingOpportunity, error)
	Create(ctx context.Context, f models.FundingOpportunity) (models.FundingOpportunity, error)
	Update(ctx context.Context, f models.FundingOpportunity) error
	Delete(ctx context.Context, id string) error
	TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error)
}

// Comments holds the flat comment list; threading is rebuilt by
// system/commenttree from ReplyToID links.
type Comments interface {
	// GetByParent returns comments for a project or insight, oldest first.
	GetByParent(ctx context.Context, parentID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	Add(ctx context.Context, c models.Comment) (models.Comment, error)
	// Delete removes a single node only; replies are left in place.
	Delete(ctx context.Context, id string) error
}

// Notifications holds per-user in-app notifications.
type Notifications interface {
	// GetByUser returns the user's notifications, newest first.
	GetByUser(ctx context.Context, userID string) ([]models.Notification, error)
	Add(ctx context.Context, n models.Notification) (models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// Stores bundles one backend's implementations for injection into
// handlers and services.
type Stores struct {
	Users         Users
	Projects      Projects
	Insights      Insights
	Funding       Funding
	Comments      Comments
	Notifications Notifications
}
