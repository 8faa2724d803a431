package ports

import (
	"context"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// MaterialRepository defines persistence operations for materials.
type MaterialRepository interface {
	Insert(ctx context.Context, m *domain.Material) (*domain.Material, error)
	FindByID(ctx context.Context, id string) (*domain.Material, error)
	// FindByIDs resolves a set of material ids; missing ids are skipped, not
	// an error (subjects may briefly reference deleted materials).
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Material, error)
	FindBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error)
	Delete(ctx context.Context, id string) error
}
