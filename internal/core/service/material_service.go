package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

// URLCache caches presigned download URLs keyed by material id. Its TTL must
// be shorter than the presign expiry so a cached URL is always still valid.
type URLCache interface {
	Get(ctx context.Context, materialID string) (string, bool, error)
	Set(ctx context.Context, materialID, url string) error
	Invalidate(ctx context.Context, materialID string) error
}

// MaterialService implements the material lifecycle: validation, blob upload,
// metadata persistence, and the bidirectional subject reference.
type MaterialService struct {
	materials ports.MaterialRepository
	subjects  ports.SubjectRepository
	blobs     ports.BlobStore
	urls      URLCache
	logger    zerolog.Logger
}

func NewMaterialService(
	materials ports.MaterialRepository,
	subjects ports.SubjectRepository,
	blobs ports.BlobStore,
	urls URLCache,
	logger zerolog.Logger,
) *MaterialService {
	return &MaterialService{
		materials: materials,
		subjects:  subjects,
		blobs:     blobs,
		urls:      urls,
		logger:    logger,
	}
}

// Create validates the input, uploads the file payload when present, persists
// the material document, and links it into its subject's reference set.
//
// Validation and the subject-existence check run before any write, so a
// rejected request has no side effects. The document insert and the reference
// $push are two separate writes with no cross-document transaction; when the
// link step fails the just-created document (and blob) are removed again as
// compensation before the error is surfaced.
func (s *MaterialService) Create(ctx context.Context, input ports.CreateMaterialInput) (*domain.Material, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.SubjectID == "" {
		return nil, fmt.Errorf("%w: subject id is required", domain.ErrValidation)
	}
	if input.Upload == nil && input.Link == "" {
		return nil, fmt.Errorf("%w: either a file or a link must be provided", domain.ErrValidation)
	}
	if input.Upload != nil {
		ext := filepath.Ext(input.Upload.FileName)
		if !domain.ExtensionAllowed(ext) {
			return nil, fmt.Errorf("%w: file type %q is not allowed", domain.ErrValidation, ext)
		}
		if input.Upload.Size > domain.MaxUploadSize {
			return nil, fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrValidation, int64(domain.MaxUploadSize))
		}
	}

	if _, err := s.subjects.FindByID(ctx, input.SubjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	material := &domain.Material{
		Title:     input.Title,
		SubjectID: input.SubjectID,
		Link:      input.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Upload != nil {
		file, err := s.uploadFile(ctx, input.Upload)
		if err != nil {
			return nil, err
		}
		material.File = file
	}

	created, err := s.materials.Insert(ctx, material)
	if err != nil {
		if material.HasFile() {
			s.deleteBlob(ctx, material.File.StorageKey)
		}
		return nil, err
	}

	if err := s.subjects.PushMaterial(ctx, input.SubjectID, created.ID); err != nil {
		// Compensate: never leave an orphaned material behind a failed link.
		if delErr := s.materials.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("material_id", created.ID).Msg("failed to roll back orphaned material")
		}
		if created.HasFile() {
			s.deleteBlob(ctx, created.File.StorageKey)
		}
		return nil, err
	}

	s.logger.Info().
		Str("material_id", created.ID).
		Str("subject_id", input.SubjectID).
		Bool("file_backed", created.HasFile()).
		Msg("material created")

	return created, nil
}

func (s *MaterialService) uploadFile(ctx context.Context, upload *ports.UploadInput) (*domain.FileInfo, error) {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	key := fmt.Sprintf("materials/%d-%s%s", time.Now().UnixNano(), uuid.New(), ext)

	url, err := s.blobs.Upload(ctx, key, upload.Content, upload.Size, contentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", domain.ErrStorage, upload.FileName, err)
	}

	return &domain.FileInfo{
		Name:       upload.FileName,
		StorageKey: key,
		URL:        url,
		Extension:  ext,
		SizeBytes:  upload.Size,
	}, nil
}

// GetURL returns the stored link for link-backed materials. For file-backed
// materials it returns a presigned download URL, regenerated on each cache
// miss because the blob store's signed URLs expire.
func (s *MaterialService) GetURL(ctx context.Context, materialID string) (string, error) {
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return "", err
	}

	if !material.HasFile() {
		if material.Link == "" {
			return "", domain.ErrMaterialNotFound
		}
		return material.Link, nil
	}

	if url, ok, err := s.urls.Get(ctx, materialID); err != nil {
		s.logger.Warn().Err(err).Str("material_id", materialID).Msg("url cache read failed")
	} else if ok {
		return url, nil
	}

	url, err := s.blobs.PresignGet(ctx, material.File.StorageKey)
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", domain.ErrStorage, material.File.StorageKey, err)
	}

	if err := s.urls.Set(ctx, materialID, url); err != nil {
		s.logger.Warn().Err(err).Str("material_id", materialID).Msg("url cache write failed")
	}
	return url, nil
}

// Download opens the blob of a file-backed material for streaming.
func (s *MaterialService) Download(ctx context.Context, materialID string) (*ports.DownloadResult, error) {
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if !material.HasFile() {
		return nil, domain.ErrMaterialNotFound
	}

	content, err := s.blobs.Get(ctx, material.File.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStorage, material.File.StorageKey, err)
	}

	return &ports.DownloadResult{
		Content:     content,
		FileName:    material.File.Name,
		ContentType: contentTypeFor(material.File.Extension),
	}, nil
}

// Delete removes a material: blob first (best-effort), then the subject
// reference, then the document. Blob deletion is attempted before metadata
// deletion so a storage failure leaves the record recoverable for a retry
// instead of leaking an unreferenced blob.
func (s *MaterialService) Delete(ctx context.Context, materialID, subjectID string) error {
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return err
	}

	if material.HasFile() {
		s.deleteBlob(ctx, material.File.StorageKey)
	}

	if err := s.subjects.PullMaterial(ctx, subjectID, materialID); err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, materialID); err != nil {
		return err
	}

	if err := s.urls.Invalidate(ctx, materialID); err != nil {
		s.logger.Warn().Err(err).Str("material_id", materialID).Msg("url cache invalidation failed")
	}

	s.logger.Info().Str("material_id", materialID).Str("subject_id", subjectID).Msg("material deleted")
	return nil
}

// ListBySubject returns all materials belonging to a subject.
func (s *MaterialService) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error) {
	return s.materials.FindBySubject(ctx, subjectID)
}

// deleteBlob removes a stored object, logging and swallowing failures.
func (s *MaterialService) deleteBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("storage_key", key).Msg("blob deletion failed")
	}
}

// contentTypeFor maps an upload extension to a MIME type, falling back to
// octet-stream for anything the platform table does not know.
func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
