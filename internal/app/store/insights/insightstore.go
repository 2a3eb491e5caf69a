package insightstore

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
	return &Store{c: db.Collection("insights")}
}

func (s *Store) GetAll(ctx context.Context) ([]models.Insight, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var insights []models.Insight
	if err := cur.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Insight, error) {
	var in models.Insight
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&in); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Insight{}, store.ErrNotFound
		}
		return models.Insight{}, err
	}
	return in, nil
}

func (s *Store) Create(ctx context.Context, in models.Insight) (models.Insight, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	in.TitleCI = normalize.Fold(in.Title)
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, in); err != nil {
		return models.Insight{}, err
	}
	return in, nil
}

// Update replaces the editable fields; author and creation time stay.
func (s *Store) Update(ctx context.Context, in models.Insight) error {
	set := bson.M{
		"title":       in.Title,
		"title_ci":    normalize.Fold(in.Title),
		"description": in.Description,
		"attachments": in.Attachments,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": in.ID}, bson.M{"$set": set})
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

func (s *Store) TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}})
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
