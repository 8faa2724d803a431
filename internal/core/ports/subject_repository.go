package ports

import (
	"context"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// SubjectRepository defines persistence operations for subjects.
type SubjectRepository interface {
	Insert(ctx context.Context, s *domain.Subject) (*domain.Subject, error)
	FindByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	Delete(ctx context.Context, id string) error
	// PushMaterial appends materialID to the subject's reference set using an
	// atomic single-document update.
	PushMaterial(ctx context.Context, subjectID, materialID string) error
	// PullMaterial removes materialID from the subject's reference set using
	// an atomic single-document update.
	PullMaterial(ctx context.Context, subjectID, materialID string) error
}
