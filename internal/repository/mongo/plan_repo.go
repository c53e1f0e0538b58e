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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires userId")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne())
}

// GetActiveByUserID returns the newest active plan of the user.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	filter := bson.M{"userId": userID, "status": domain.PlanStatusActive}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findOne(ctx, filter, opts)
}

func (r *mongoPlanRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, filter, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ReplaceActiveForUser marks every active plan of the user except keepPlanID as replaced.
func (r *mongoPlanRepository) ReplaceActiveForUser(ctx context.Context, userID, keepPlanID primitive.ObjectID) error {
	filter := bson.M{
		"userId": userID,
		"status": domain.PlanStatusActive,
		"_id":    bson.M{"$ne": keepPlanID},
	}
	update := bson.M{"$set": bson.M{"status": domain.PlanStatusReplaced, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// UpdateStatus sets the plan status. Activating a plan while the user has
// another active plan returns repository.ErrDuplicate.
func (r *mongoPlanRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes for the plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// current plan lookup
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// at most one active plan per user
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetName("userId_active_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.PlanStatusActive}),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
