// internal/app/store/memstore/notifications.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type notificationsView Store

func (v *notificationsView) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] > s.seq[out[j].ID] })
	return out, nil
}

func (v *notificationsView) Add(ctx context.Context, n models.Notification) (models.Notification, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.notifications[n.ID] = n
	s.bump(n.ID)
	return n, nil
}

func (v *notificationsView) MarkAsRead(ctx context.Context, id string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return store.ErrNotFound
	}
	n.IsRead = true
	s.notifications[id] = n
	return nil
}
