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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// FindAll returns the catalog in insertion order. The planner relies on a
// stable order to break score ties.
func (r *mongoExerciseRepository) FindAll(ctx context.Context) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{}, findOptions)
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByIDs retrieves the exercises with the given IDs. Unknown IDs are skipped.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	if len(ids) == 0 {
		return []domain.Exercise{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// UpsertByExternalID replaces the exercise sharing the external ID, keeping
// its _id and createdAt, or inserts it.
func (r *mongoExerciseRepository) UpsertByExternalID(ctx context.Context, exercise *domain.Exercise) (bool, error) {
	if exercise.ExternalID == "" || exercise.Name == "" {
		return false, errors.New("exercise external ID and name are required")
	}

	now := time.Now().UTC()
	var existing domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"externalId": exercise.ExternalID}).Decode(&existing)
	switch {
	case err == nil:
		exercise.ID = existing.ID
		exercise.CreatedAt = existing.CreatedAt
		exercise.UpdatedAt = now
		result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, exercise)
		if err != nil {
			return false, err
		}
		if result.MatchedCount == 0 {
			return false, repository.ErrUpdateFailed
		}
		return false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		exercise.ID = primitive.NewObjectID()
		exercise.CreatedAt = now
		exercise.UpdatedAt = now
		if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return false, repository.ErrDuplicate
			}
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "externalId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
