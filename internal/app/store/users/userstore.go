package userstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Store is the Mongo-backed user directory. A unique index on email_ci
// (see system/indexes) backs the duplicate-email guarantee.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new user after normalizing the email and name.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.Email = normalize.Email(u.Email)
	u.EmailCI = u.Email
	u.Name = normalize.Name(u.Name)
	u.NameCI = normalize.Fold(u.Name)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleStandard
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, store.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update replaces the mutable profile fields. Email, password hash, and
// role stay as stored; role changes go through UpdateRole.
func (s *Store) Update(ctx context.Context, u models.User) error {
	name := normalize.Name(u.Name)
	set := bson.M{
		"name":             name,
		"name_ci":          normalize.Fold(name),
		"stakeholder_type": u.StakeholderType,
		"subtype":          u.Subtype,
		"country":          u.Country,
		"city":             u.City,
		"focus_areas":      u.FocusAreas,
		"about":            u.About,
		"avatar_url":       u.AvatarURL,
		"is_verified":      u.IsVerified,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Authenticate verifies the password for the account registered under
// email. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	return u, nil
}

// ToggleSave flips projectID in the user's saved set. Two single-document
// updates with mutually exclusive filters; whichever matches wins, so the
// flip is atomic under concurrent toggles.
func (s *Store) ToggleSave(ctx context.Context, userID, projectID string) (models.User, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "saved_project_ids": projectID},
		bson.M{"$pull": bson.M{"saved_project_ids": projectID}})
	if err != nil {
		return models.User{}, err
	}
	if res.MatchedCount == 0 {
		res, err = s.c.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$addToSet": bson.M{"saved_project_ids": projectID}})
		if err != nil {
			return models.User{}, err
		}
		if res.MatchedCount == 0 {
			return models.User{}, store.ErrNotFound
		}
	}
	return s.GetByID(ctx, userID)
}
