package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

// SubjectService implements subject CRUD and the cascade delete over the
// subject's materials.
type SubjectService struct {
	subjects  ports.SubjectRepository
	materials ports.MaterialRepository
	blobs     ports.BlobStore
	logger    zerolog.Logger
}

func NewSubjectService(
	subjects ports.SubjectRepository,
	materials ports.MaterialRepository,
	blobs ports.BlobStore,
	logger zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjects:  subjects,
		materials: materials,
		blobs:     blobs,
		logger:    logger,
	}
}

// Create persists a new subject with an empty material-reference set.
func (s *SubjectService) Create(ctx context.Context, name, description, creatorID string) (*domain.Subject, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	subject := &domain.Subject{
		Name:        name,
		Description: description,
		MaterialIDs: []string{},
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.subjects.Insert(ctx, subject)
}

// List returns every subject with its material summaries resolved from the
// materials collection.
func (s *SubjectService) List(ctx context.Context) ([]ports.SubjectView, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.SubjectView, 0, len(subjects))
	for _, subject := range subjects {
		materials, err := s.materials.FindByIDs(ctx, subject.MaterialIDs)
		if err != nil {
			return nil, err
		}

		summaries := make([]ports.MaterialSummary, 0, len(materials))
		for _, m := range materials {
			summary := ports.MaterialSummary{
				ID:    m.ID,
				Title: m.Title,
				Link:  m.Link,
			}
			if m.File != nil {
				summary.FileName = m.File.Name
			}
			summaries = append(summaries, summary)
		}

		views = append(views, ports.SubjectView{
			ID:          subject.ID,
			Name:        subject.Name,
			Description: subject.Description,
			Materials:   summaries,
			CreatedBy:   subject.CreatedBy,
			CreatedAt:   subject.CreatedAt,
		})
	}

	return views, nil
}

// Delete removes a subject and every material it references. Blob deletions
// are best-effort: a storage failure is logged and the cascade continues, but
// metadata deletion is never skipped.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for _, materialID := range subject.MaterialIDs {
		material, err := s.materials.FindByID(ctx, materialID)
		if err != nil {
			// A dangling reference is not fatal to the cascade.
			s.logger.Warn().Err(err).Str("material_id", materialID).Msg("cascade: material lookup failed")
			continue
		}

		if material.HasFile() {
			if err := s.blobs.Delete(ctx, material.File.StorageKey); err != nil {
				s.logger.Error().Err(err).
					Str("material_id", materialID).
					Str("storage_key", material.File.StorageKey).
					Msg("cascade: blob deletion failed")
			}
		}

		if err := s.materials.Delete(ctx, materialID); err != nil {
			return err
		}
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("subject_id", id).Int("materials", len(subject.MaterialIDs)).Msg("subject deleted")
	return nil
}
