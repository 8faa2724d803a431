package ports

import (
	"context"
	"io"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// UploadInput carries a single file payload received with a create request.
// Size must be the exact payload length; it is checked against the limit
// before any storage write.
type UploadInput struct {
	FileName string
	Size     int64
	Content  io.Reader
}

// CreateMaterialInput carries all data needed to create a material. At least
// one of Upload and Link must be present.
type CreateMaterialInput struct {
	Title     string
	SubjectID string
	Link      string
	Upload    *UploadInput
	ActorID   string
}

// DownloadResult is an open blob stream plus the metadata needed to serve it.
// The caller owns Content and must close it.
type DownloadResult struct {
	Content     io.ReadCloser
	FileName    string
	ContentType string
}

// MaterialService defines the material lifecycle use cases.
type MaterialService interface {
	Create(ctx context.Context, input CreateMaterialInput) (*domain.Material, error)
	// GetURL returns the stored link for link-backed materials, or a fresh
	// presigned download URL for file-backed ones.
	GetURL(ctx context.Context, materialID string) (string, error)
	Download(ctx context.Context, materialID string) (*DownloadResult, error)
	Delete(ctx context.Context, materialID, subjectID string) error
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error)
}
