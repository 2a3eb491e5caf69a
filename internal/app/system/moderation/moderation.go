// Package moderation implements the admin review queue. Submitted
// content of all three kinds waits in Pending until an administrator
// approves it into Shared or rejects it.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// ErrUnknownKind is returned when a decision names a content kind the
// queue does not carry.
var ErrUnknownKind = errors.New("unknown content kind")

// QueueItem is one entry awaiting review, flattened across kinds so the
// console renders a single list.
type QueueItem struct {
	Kind        models.ContentKind `json:"kind"`
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	OwnerID     string             `json:"ownerId"`
	SubmittedAt string             `json:"submittedAt"`
}

// Decision is the admin's verdict on one queue item.
type Decision struct {
	Kind models.ContentKind
	ID   string
}

// Outcome reports what a decision did. When Applied is false the item
// had already left Pending; Status carries where it ended up.
type Outcome struct {
	Applied bool                 `json:"applied"`
	Status  models.ContentStatus `json:"status"`
}

// Service runs the review workflows against the three content stores.
type Service struct {
	projects      store.Projects
	insights      store.Insights
	funding       store.Funding
	notifications store.Notifications
	logger        *zap.Logger
}

func New(st store.Stores, logger *zap.Logger) *Service {
	return &Service{
		projects:      st.Projects,
		insights:      st.Insights,
		funding:       st.Funding,
		notifications: st.Notifications,
		logger:        logger,
	}
}

// Queue returns every Pending item across projects, insights, and
// funding, oldest submission first.
func (s *Service) Queue(ctx context.Context) ([]QueueItem, error) {
	var items []QueueItem

	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Status == models.StatusPending {
			items = append(items, QueueItem{
				Kind:        models.KindProject,
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				OwnerID:     p.OwnerID,
				SubmittedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	insights, err := s.insights.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, in := range insights {
		if in.Status == models.StatusPending {
			items = append(items, QueueItem{
				Kind:        models.KindInsight,
				ID:          in.ID,
				Title:       in.Title,
				Description: in.Description,
				OwnerID:     in.AuthorID,
				SubmittedAt: in.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	funding, err := s.funding.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range funding {
		if f.Status == models.StatusPending {
			items = append(items, QueueItem{
				Kind:        models.KindFunding,
				ID:          f.ID,
				Title:       f.Title,
				Description: f.Description,
				OwnerID:     f.OwnerID,
				SubmittedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt < items[j].SubmittedAt
	})
	return items, nil
}

// Approve moves the item Pending -> Shared and notifies its owner. A
// decision that lost the race to an earlier one reports the settled
// status instead of failing.
func (s *Service) Approve(ctx context.Context, d Decision) (Outcome, error) {
	return s.decide(ctx, d, models.StatusShared, models.NotifyApproval,
		"Your %s %q has been approved and is now shared.")
}

// Reject moves the item Pending -> Rejected and notifies its owner.
func (s *Service) Reject(ctx context.Context, d Decision) (Outcome, error) {
	return s.decide(ctx, d, models.StatusRejected, models.NotifyRejection,
		"Your %s %q was not approved.")
}

func (s *Service) decide(ctx context.Context, d Decision, to models.ContentStatus, kind models.NotificationKind, msgFormat string) (Outcome, error) {
	title, ownerID, transition, status, err := s.resolve(ctx, d)
	if err != nil {
		return Outcome{}, err
	}

	applied, err := transition(ctx, d.ID, models.StatusPending, to)
	if err != nil {
		return Outcome{}, err
	}
	if !applied {
		// Already decided; report the current state.
		cur, err := status(ctx, d.ID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Applied: false, Status: cur}, nil
	}

	if _, err := s.notifications.Add(ctx, models.Notification{
		UserID:    ownerID,
		Kind:      kind,
		Message:   fmt.Sprintf(msgFormat, d.Kind, title),
		RelatedID: d.ID,
	}); err != nil {
		s.logger.Warn("decision notification failed",
			zap.String("id", d.ID), zap.Error(err))
	}
	s.logger.Info("moderation decision",
		zap.String("kind", string(d.Kind)),
		zap.String("id", d.ID),
		zap.String("to", string(to)))
	return Outcome{Applied: true, Status: to}, nil
}

type transitionFunc func(ctx context.Context, id string, from, to models.ContentStatus) (bool, error)
type statusFunc func(ctx context.Context, id string) (models.ContentStatus, error)

func (s *Service) resolve(ctx context.Context, d Decision) (title, ownerID string, tr transitionFunc, st statusFunc, err error) {
	switch d.Kind {
	case models.KindProject:
		p, err := s.projects.GetByID(ctx, d.ID)
		if err != nil {
			return "", "", nil, nil, err
		}
		return p.Title, p.OwnerID, s.projects.TransitionStatus, func(ctx context.Context, id string) (models.ContentStatus, error) {
			p, err := s.projects.GetByID(ctx, id)
			return p.Status, err
		}, nil
	case models.KindInsight:
		in, err := s.insights.GetByID(ctx, d.ID)
		if err != nil {
			return "", "", nil, nil, err
		}
		return in.Title, in.AuthorID, s.insights.TransitionStatus, func(ctx context.Context, id string) (models.ContentStatus, error) {
			in, err := s.insights.GetByID(ctx, id)
			return in.Status, err
		}, nil
	case models.KindFunding:
		f, err := s.funding.GetByID(ctx, d.ID)
		if err != nil {
			return "", "", nil, nil, err
		}
		return f.Title, f.OwnerID, s.funding.TransitionStatus, func(ctx context.Context, id string) (models.ContentStatus, error) {
			f, err := s.funding.GetByID(ctx, id)
			return f.Status, err
		}, nil
	default:
		return "", "", nil, nil, ErrUnknownKind
	}
}
