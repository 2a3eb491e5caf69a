package fundingstore

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
	return &Store{c: db.Collection("funding_opportunities")}
}

func (s *Store) GetAll(ctx context.Context) ([]models.FundingOpportunity, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var items []models.FundingOpportunity
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.FundingOpportunity, error) {
	var f models.FundingOpportunity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.FundingOpportunity{}, store.ErrNotFound
		}
		return models.FundingOpportunity{}, err
	}
	return f, nil
}

func (s *Store) Create(ctx context.Context, f models.FundingOpportunity) (models.FundingOpportunity, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.TitleCI = normalize.Fold(f.Title)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.FundingOpportunity{}, err
	}
	return f, nil
}

func (s *Store) Update(ctx context.Context, f models.FundingOpportunity) error {
	set := bson.M{
		"title":            f.Title,
		"title_ci":         normalize.Fold(f.Title),
		"description":      f.Description,
		"deadline":         f.Deadline,
		"eligibility":      f.Eligibility,
		"application_info": f.ApplicationInfo,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": f.ID}, bson.M{"$set": set})
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
