// Package collab implements the collaboration workflows that span more
// than one store: invites, join requests, and project saves.
package collab

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// ErrUserNotFound is returned by InviteByEmail when no account is
// registered under the invited email.
var ErrUserNotFound = errors.New("no user registered under that email")

// Service wires the stores the collaboration flows touch.
type Service struct {
	users         store.Users
	projects      store.Projects
	notifications store.Notifications
	logger        *zap.Logger
}

func New(st store.Stores, logger *zap.Logger) *Service {
	return &Service{
		users:         st.Users,
		projects:      st.Projects,
		notifications: st.Notifications,
		logger:        logger,
	}
}

// InviteByEmail adds the account registered under email as an active
// collaborator and notifies them. The email lookup is case-insensitive.
// A pending join request from the same user is left in place; the invite
// is the only promotion path.
func (s *Service) InviteByEmail(ctx context.Context, p models.Project, email string) (models.User, error) {
	invitee, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	c := models.Collaborator{
		UserID: invitee.ID,
		Role:   models.CollaboratorMember,
		Status: models.CollaboratorActive,
	}
	if err := s.projects.AddCollaborator(ctx, p.ID, c); err != nil {
		return models.User{}, err
	}

	s.notify(ctx, models.Notification{
		UserID:    invitee.ID,
		Kind:      models.NotifyInvite,
		Message:   fmt.Sprintf("You have been added to the project %q.", p.Title),
		RelatedID: p.ID,
	})
	s.logger.Info("collaborator invited",
		zap.String("project_id", p.ID),
		zap.String("invitee_id", invitee.ID))
	return invitee, nil
}

// RequestJoin records a join request for the signed-in user. Repeat
// requests are no-ops and do not re-notify the owner.
func (s *Service) RequestJoin(ctx context.Context, p models.Project, userID string) error {
	if p.HasJoinRequest(userID) {
		return nil
	}
	if err := s.projects.AddJoinRequest(ctx, p.ID, userID); err != nil {
		return err
	}

	requester, err := s.users.GetByID(ctx, userID)
	name := "A user"
	if err == nil {
		name = requester.Name
	}
	s.notify(ctx, models.Notification{
		UserID:    p.OwnerID,
		Kind:      models.NotifyJoinRequest,
		Message:   fmt.Sprintf("%s requested to join %q.", name, p.Title),
		RelatedID: p.ID,
	})
	s.logger.Info("join request recorded",
		zap.String("project_id", p.ID),
		zap.String("user_id", userID))
	return nil
}

// ToggleSave flips the project in the user's saved list and keeps the
// project's save counter in step. Returns the updated user and whether
// the project is now saved.
func (s *Service) ToggleSave(ctx context.Context, userID, projectID string) (models.User, bool, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return models.User{}, false, err
	}
	u, err := s.users.ToggleSave(ctx, userID, projectID)
	if err != nil {
		return models.User{}, false, err
	}
	saved := u.HasSaved(projectID)
	delta := -1
	if saved {
		delta = 1
	}
	if err := s.projects.IncSaveCount(ctx, projectID, delta); err != nil {
		s.logger.Warn("save counter adjustment failed",
			zap.String("project_id", projectID), zap.Error(err))
	}
	return u, saved, nil
}

func (s *Service) notify(ctx context.Context, n models.Notification) {
	if _, err := s.notifications.Add(ctx, n); err != nil {
		// Notification delivery is best effort; the primary mutation
		// already happened.
		s.logger.Warn("notification write failed",
			zap.String("user_id", n.UserID), zap.Error(err))
	}
}
