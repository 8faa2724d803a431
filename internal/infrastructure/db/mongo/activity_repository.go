package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyshare/materials-api/internal/core/domain"
)

const activityCollection = "activity_events"

type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EntityType string             `bson:"entity_type"`
	EntityID   string             `bson:"entity_id"`
	Action     string             `bson:"action"`
	ActorID    string             `bson:"actor_id,omitempty"`
	Timestamp  int64              `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, activityDoc{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		ActorID:    e.ActorID,
		Timestamp:  e.Timestamp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}
