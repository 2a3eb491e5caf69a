// internal/app/store/memstore/users.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

type usersView Store

func (v *usersView) GetAll(ctx context.Context) ([]models.User, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] < s.seq[out[j].ID] })
	return out, nil
}

func (v *usersView) GetByID(ctx context.Context, id string) (models.User, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (v *usersView) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	ci := normalize.Email(email)
	for _, u := range s.users {
		if u.EmailCI == ci {
			return copyUser(u), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (v *usersView) Create(ctx context.Context, u models.User) (models.User, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = normalize.Email(u.Email)
	u.EmailCI = u.Email
	u.Name = normalize.Name(u.Name)
	u.NameCI = normalize.Fold(u.Name)
	for _, existing := range s.users {
		if existing.EmailCI == u.EmailCI {
			return models.User{}, store.ErrDuplicateEmail
		}
	}

	if u.ID == "" {
		u.ID = newID()
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now().UTC()
	}
	s.users[u.ID] = copyUser(u)
	s.bump(u.ID)
	return copyUser(u), nil
}

func (v *usersView) Update(ctx context.Context, u models.User) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name = normalize.Name(u.Name)
	cur.NameCI = normalize.Fold(cur.Name)
	cur.StakeholderType = u.StakeholderType
	cur.Subtype = u.Subtype
	cur.Country = u.Country
	cur.City = u.City
	cur.FocusAreas = copyStrings(u.FocusAreas)
	cur.About = u.About
	cur.AvatarURL = u.AvatarURL
	cur.IsVerified = u.IsVerified
	s.users[u.ID] = cur
	return nil
}

func (v *usersView) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	cur.Role = role
	s.users[id] = cur
	return nil
}

func (v *usersView) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := v.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	return u, nil
}

func (v *usersView) ToggleSave(ctx context.Context, userID, projectID string) (models.User, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}

	saved := cur.SavedProjectIDs[:0]
	removed := false
	for _, id := range cur.SavedProjectIDs {
		if id == projectID {
			removed = true
			continue
		}
		saved = append(saved, id)
	}
	if !removed {
		saved = append(saved, projectID)
	}
	cur.SavedProjectIDs = saved
	s.users[userID] = copyUser(cur)
	return copyUser(cur), nil
}
