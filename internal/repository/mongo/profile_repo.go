package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new Profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the user's profile, creating it on first submission.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile requires userId")
	}

	now := time.Now().UTC()
	existing, err := r.GetByUserID(ctx, profile.UserID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	default:
		return err
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err = r.collection.ReplaceOne(ctx, bson.M{"userId": profile.UserID}, profile, opts)
	return err
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
