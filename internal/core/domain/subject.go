package domain

import (
	"errors"
	"time"
)

var ErrSubjectNotFound = errors.New("subject not found")

// Subject is a named collection bucket for study materials.
// MaterialIDs holds the ids of the materials belonging to this subject; the
// material service keeps it consistent with the materials collection using
// atomic $push/$pull updates.
type Subject struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	MaterialIDs []string  `json:"materials" bson:"materials"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
