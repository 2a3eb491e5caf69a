package projectstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) GetAll(ctx context.Context) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, store.ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.TitleCI = normalize.Fold(p.Title)
	models.EnsureOwnerCollaborator(&p)
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update replaces the editable fields. Owner, counters, join requests,
// and creation time stay as stored.
func (s *Store) Update(ctx context.Context, p models.Project) error {
	cur, err := s.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.OwnerID = cur.OwnerID
	models.EnsureOwnerCollaborator(&p)

	set := bson.M{
		"title":         p.Title,
		"title_ci":      normalize.Fold(p.Title),
		"description":   p.Description,
		"thematic_area": p.ThematicArea,
		"country":       p.Country,
		"city":          p.City,
		"collaborators": p.Collaborators,
		"attachments":   p.Attachments,
		"visibility":    p.Visibility,
		"updated_at":    time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddJoinRequest records userID as a pending requester. $addToSet keeps
// repeat requests to a single entry.
func (s *Store) AddJoinRequest(ctx context.Context, projectID, userID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$addToSet": bson.M{"join_requests": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddCollaborator appends c only when no entry for the user exists yet.
// The filter carries the duplicate guard so a racing invite and join
// approval cannot both land.
func (s *Store) AddCollaborator(ctx context.Context, projectID string, c models.Collaborator) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "collaborators.user_id": bson.M{"$ne": c.UserID}},
		bson.M{"$push": bson.M{"collaborators": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the project is gone or the user is already listed.
		if _, err := s.GetByID(ctx, projectID); err != nil {
			return err
		}
		return store.ErrAlreadyCollaborator
	}
	return nil
}

// TransitionStatus moves from->to only if the stored status still equals
// from. Returns false with nil error when the precondition failed.
func (s *Store) TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *Store) IncCommentCount(ctx context.Context, id string, delta int) error {
	return s.inc(ctx, id, "comment_count", delta)
}

func (s *Store) IncSaveCount(ctx context.Context, id string, delta int) error {
	return s.inc(ctx, id, "save_count", delta)
}

func (s *Store) inc(ctx context.Context, id, field string, delta int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	// Counters never go negative; clamp if a decrement raced a delete.
	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, field: bson.M{"$lt": 0}},
		bson.M{"$set": bson.M{field: 0}})
	return err
}
