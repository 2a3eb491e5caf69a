// internal/app/store/memstore/memstore.go
//
// Package memstore is the in-process storage backend. It keeps every
// collection in mutex-guarded maps and hands out deep copies, so no
// caller can mutate shared state behind the lock's back. It satisfies
// the same contract as the Mongo stores and is selected with
// store_backend=memory (also the backend the handler tests run on).
package memstore

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Store holds all collections behind one lock. Operations are short and
// purely in-memory; a single RWMutex keeps cross-collection mutations
// (such as save-toggle plus counter bump) trivially race-free.
type Store struct {
	mu sync.RWMutex

	users         map[string]models.User
	projects      map[string]models.Project
	insights      map[string]models.Insight
	funding       map[string]models.FundingOpportunity
	comments      map[string]models.Comment
	notifications map[string]models.Notification

	// seq preserves insertion order per id for deterministic listing
	// (maps have no order of their own).
	seq     map[string]uint64
	nextSeq uint64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:         make(map[string]models.User),
		projects:      make(map[string]models.Project),
		insights:      make(map[string]models.Insight),
		funding:       make(map[string]models.FundingOpportunity),
		comments:      make(map[string]models.Comment),
		notifications: make(map[string]models.Notification),
		seq:           make(map[string]uint64),
	}
}

// NewSeeded returns a store preloaded with the demo dataset.
func NewSeeded() *Store {
	s := New()
	s.seed()
	return s
}

// Stores bundles this backend behind the shared contract.
func (s *Store) Stores() store.Stores {
	return store.Stores{
		Users:         (*usersView)(s),
		Projects:      (*projectsView)(s),
		Insights:      (*insightsView)(s),
		Funding:       (*fundingView)(s),
		Comments:      (*commentsView)(s),
		Notifications: (*notificationsView)(s),
	}
}

// bump records insertion order for an id. Callers hold the write lock.
func (s *Store) bump(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func newID() string { return uuid.NewString() }

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyUser(u models.User) models.User {
	u.FocusAreas = copyStrings(u.FocusAreas)
	u.SavedProjectIDs = copyStrings(u.SavedProjectIDs)
	return u
}

func copyProject(p models.Project) models.Project {
	if p.Collaborators != nil {
		c := make([]models.Collaborator, len(p.Collaborators))
		copy(c, p.Collaborators)
		p.Collaborators = c
	}
	if p.Attachments != nil {
		a := make([]models.Attachment, len(p.Attachments))
		copy(a, p.Attachments)
		p.Attachments = a
	}
	p.JoinRequests = copyStrings(p.JoinRequests)
	return p
}

func copyInsight(in models.Insight) models.Insight {
	if in.Attachments != nil {
		a := make([]models.Attachment, len(in.Attachments))
		copy(a, in.Attachments)
		in.Attachments = a
	}
	return in
}
