package domain

import "time"

// Activity actions recorded in the audit trail.
const (
	ActionCreated    = "created"
	ActionDeleted    = "deleted"
	ActionDownloaded = "downloaded"
)

// Activity entity kinds.
const (
	EntitySubject  = "subject"
	EntityMaterial = "material"
)

// ActivityEvent is a single audit-trail entry describing a lifecycle action
// on a subject or material. Events are recorded asynchronously and are never
// load-bearing for request handling.
type ActivityEvent struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	Action     string    `json:"action" bson:"action"`
	ActorID    string    `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
