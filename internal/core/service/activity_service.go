package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService writing to the given repository.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists one audit event. A missing timestamp is filled in here so
// enqueue sites don't have to care.
func (s *activityService) Record(ctx context.Context, e domain.ActivityEvent) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &e); err != nil {
		s.log.Warn().Err(err).
			Str("entity_type", e.EntityType).
			Str("entity_id", e.EntityID).
			Str("action", e.Action).
			Msg("failed to record activity event")
		return err
	}
	return nil
}
