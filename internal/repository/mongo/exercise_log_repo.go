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

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates a new ExerciseLog repository backed by MongoDB.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// UpsertBySet writes the log of one set; logging the same set again
// overwrites reps, weight and the done flag.
func (r *mongoExerciseLogRepository) UpsertBySet(ctx context.Context, entry *domain.ExerciseLog) (*domain.ExerciseLog, error) {
	if entry.WorkoutExerciseID == primitive.NilObjectID || entry.SetNumber < 1 {
		return nil, errors.New("exercise log requires workoutExerciseId and a positive setNumber")
	}

	now := time.Now().UTC()
	filter := bson.M{"workoutExerciseId": entry.WorkoutExerciseID, "setNumber": entry.SetNumber}
	update := bson.M{
		"$set": bson.M{
			"reps":      entry.Reps,
			"weight":    entry.Weight,
			"isDone":    entry.IsDone,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.ExerciseLog
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &saved, nil
}

// GetByWorkoutExerciseIDs retrieves the logs of the given exercises sorted by set.
func (r *mongoExerciseLogRepository) GetByWorkoutExerciseIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.ExerciseLog, error) {
	logs := []domain.ExerciseLog{}
	if len(ids) == 0 {
		return logs, nil
	}
	filter := bson.M{"workoutExerciseId": bson.M{"$in": ids}}
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutExerciseId", Value: 1}, {Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureExerciseLogIndexes creates necessary indexes for the exercise logs collection.
func EnsureExerciseLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutExerciseId", Value: 1}, {Key: "setNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
