// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// State is a one-time OAuth2 state token stored for CSRF protection.
type State struct {
	State     string    `bson:"state"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// States is the contract the Google sign-in flow needs. Both the Mongo
// store and the in-memory store satisfy it.
type States interface {
	Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error
	// Validate deletes the token on success (one-time use) and returns
	// the stored return URL.
	Validate(ctx context.Context, state string) (returnURL string, valid bool, err error)
}

// Store keeps state tokens in MongoDB. A TTL index on expires_at (see
// system/indexes) garbage-collects abandoned sign-ins.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	st := State{
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, st)
	return err
}

func (s *Store) Validate(ctx context.Context, state string) (string, bool, error) {
	var st State
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"state":      state,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return st.ReturnURL, true, nil
}

// Memory is the in-process variant used with the memory storage backend
// and in tests.
type Memory struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemory() *Memory {
	return &Memory{states: make(map[string]State)}
}

func (m *Memory) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state] = State{State: state, ReturnURL: returnURL, ExpiresAt: expiresAt, CreatedAt: time.Now().UTC()}
	return nil
}

func (m *Memory) Validate(ctx context.Context, state string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[state]
	if !ok {
		return "", false, nil
	}
	delete(m.states, state)
	if time.Now().UTC().After(st.ExpiresAt) {
		return "", false, nil
	}
	return st.ReturnURL, true, nil
}
