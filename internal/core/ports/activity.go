package ports

import (
	"context"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// ActivityRepository defines persistence for audit-trail events.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
}

// ActivityService records lifecycle events. Implementations must treat
// failures as non-fatal: the audit trail never blocks request handling.
type ActivityService interface {
	Record(ctx context.Context, e domain.ActivityEvent) error
}
