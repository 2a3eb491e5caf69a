// internal/app/store/memstore/projects.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type projectsView Store

func (v *projectsView) GetAll(ctx context.Context) ([]models.Project, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	// Newest first, matching the feed order clients expect.
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] > s.seq[out[j].ID] })
	return out, nil
}

func (v *projectsView) GetByID(ctx context.Context, id string) (models.Project, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, store.ErrNotFound
	}
	return copyProject(p), nil
}

func (v *projectsView) Create(ctx context.Context, p models.Project) (models.Project, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	p.TitleCI = normalize.Fold(p.Title)
	models.EnsureOwnerCollaborator(&p)
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	s.projects[p.ID] = copyProject(p)
	s.bump(p.ID)
	return copyProject(p), nil
}

func (v *projectsView) Update(ctx context.Context, p models.Project) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	// Status, counters, and join requests are owned by their atomic
	// operations; Update only replaces the editable fields.
	p.OwnerID = cur.OwnerID
	p.CreatedAt = cur.CreatedAt
	p.Status = cur.Status
	p.JoinRequests = copyStrings(cur.JoinRequests)
	p.CommentCount = cur.CommentCount
	p.SaveCount = cur.SaveCount
	p.TitleCI = normalize.Fold(p.Title)
	models.EnsureOwnerCollaborator(&p)
	p.UpdatedAt = time.Now().UTC()
	s.projects[p.ID] = copyProject(p)
	return nil
}

func (v *projectsView) Delete(ctx context.Context, id string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.projects, id)
	delete(s.seq, id)
	return nil
}

func (v *projectsView) AddJoinRequest(ctx context.Context, projectID, userID string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	for _, id := range cur.JoinRequests {
		if id == userID {
			return nil // already requested; set semantics
		}
	}
	cur.JoinRequests = append(cur.JoinRequests, userID)
	cur.UpdatedAt = time.Now().UTC()
	s.projects[projectID] = copyProject(cur)
	return nil
}

func (v *projectsView) AddCollaborator(ctx context.Context, projectID string, c models.Collaborator) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	if cur.HasCollaborator(c.UserID) {
		return store.ErrAlreadyCollaborator
	}
	cur.Collaborators = append(cur.Collaborators, c)
	cur.UpdatedAt = time.Now().UTC()
	s.projects[projectID] = copyProject(cur)
	return nil
}

func (v *projectsView) TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if cur.Status != from {
		return false, nil
	}
	cur.Status = to
	cur.UpdatedAt = time.Now().UTC()
	s.projects[id] = copyProject(cur)
	return true, nil
}

func (v *projectsView) IncCommentCount(ctx context.Context, id string, delta int) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	cur.CommentCount += delta
	if cur.CommentCount < 0 {
		cur.CommentCount = 0
	}
	s.projects[id] = copyProject(cur)
	return nil
}

func (v *projectsView) IncSaveCount(ctx context.Context, id string, delta int) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	cur.SaveCount += delta
	if cur.SaveCount < 0 {
		cur.SaveCount = 0
	}
	s.projects[id] = copyProject(cur)
	return nil
}
