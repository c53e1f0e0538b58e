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

const workoutExerciseCollectionName = "workout_exercises"

// mongoWorkoutExerciseRepository implements repository.WorkoutExerciseRepository
type mongoWorkoutExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutExerciseRepository creates a new WorkoutExercise repository.
func NewMongoWorkoutExerciseRepository(db *mongo.Database) repository.WorkoutExerciseRepository {
	return &mongoWorkoutExerciseRepository{
		collection: db.Collection(workoutExerciseCollectionName),
	}
}

// Create inserts a prescribed exercise of a workout day.
func (r *mongoWorkoutExerciseRepository) Create(ctx context.Context, we *domain.WorkoutExercise) (primitive.ObjectID, error) {
	if we.WorkoutDayID == primitive.NilObjectID || we.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout exercise requires workoutDayId and exerciseId")
	}
	we.ID = primitive.NewObjectID()
	we.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, we)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByDayID retrieves the exercises of a day in execution order.
func (r *mongoWorkoutExerciseRepository) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.WorkoutExercise, error) {
	items := []domain.WorkoutExercise{}
	findOptions := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"workoutDayId": dayID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoWorkoutExerciseRepository) GetByDayAndExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.WorkoutExercise, error) {
	var we domain.WorkoutExercise
	filter := bson.M{"workoutDayId": dayID, "exerciseId": exerciseID}
	err := r.collection.FindOne(ctx, filter).Decode(&we)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &we, nil
}

// EnsureWorkoutExerciseIndexes creates necessary indexes for the workout exercises collection.
func EnsureWorkoutExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutDayId", Value: 1}, {Key: "sortOrder", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutDayId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
