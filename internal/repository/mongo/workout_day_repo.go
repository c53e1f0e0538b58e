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

const workoutDayCollectionName = "workout_days"

// mongoWorkoutDayRepository implements repository.WorkoutDayRepository
type mongoWorkoutDayRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutDayRepository creates a new WorkoutDay repository.
func NewMongoWorkoutDayRepository(db *mongo.Database) repository.WorkoutDayRepository {
	return &mongoWorkoutDayRepository{
		collection: db.Collection(workoutDayCollectionName),
	}
}

// Create inserts a new workout day. Day numbers are unique per plan.
func (r *mongoWorkoutDayRepository) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if day.PlanID == primitive.NilObjectID || day.DayNumber < 1 {
		return primitive.NilObjectID, errors.New("workout day requires planId and a positive dayNumber")
	}
	day.ID = primitive.NewObjectID()
	day.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a single workout day by its ID.
func (r *mongoWorkoutDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByPlanID retrieves all days of a plan sorted by day number.
func (r *mongoWorkoutDayRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	days := []domain.WorkoutDay{}
	findOptions := options.Find().SetSort(bson.D{{Key: "dayNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// MarkCompleted flags the day as completed at the given time.
func (r *mongoWorkoutDayRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{"$set": bson.M{"isCompleted": true, "completedAt": at.UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutDayIndexes creates necessary indexes for the workout days collection.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "dayNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
