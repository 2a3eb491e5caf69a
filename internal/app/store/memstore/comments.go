// internal/app/store/memstore/comments.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type commentsView Store

func (v *commentsView) GetByParent(ctx context.Context, parentID string) ([]models.Comment, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Comment
	for _, c := range s.comments {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] < s.seq[out[j].ID] })
	return out, nil
}

func (v *commentsView) GetByID(ctx context.Context, id string) (models.Comment, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return models.Comment{}, store.ErrNotFound
	}
	return c, nil
}

func (v *commentsView) Add(ctx context.Context, c models.Comment) (models.Comment, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.comments[c.ID] = c
	s.bump(c.ID)
	return c, nil
}

func (v *commentsView) Delete(ctx context.Context, id string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	delete(s.seq, id)
	return nil
}
