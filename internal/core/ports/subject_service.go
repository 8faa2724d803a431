package ports

import (
	"context"
	"time"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// MaterialSummary is the lightweight material view embedded in subject lists.
type MaterialSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FileName string `json:"file_name,omitempty"`
	Link     string `json:"link,omitempty"`
}

// SubjectView is a subject with its material summaries resolved at read
// time, not a stored denormalization.
type SubjectView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Materials   []MaterialSummary `json:"materials"`
	CreatedBy   string            `json:"created_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SubjectService defines use-case operations for subjects.
type SubjectService interface {
	Create(ctx context.Context, name, description, creatorID string) (*domain.Subject, error)
	List(ctx context.Context) ([]SubjectView, error)
	// Delete removes the subject and cascades over every referenced material:
	// blob deletion is best-effort, metadata deletion always proceeds.
	Delete(ctx context.Context, id string) error
}
