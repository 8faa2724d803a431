package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrMaterialNotFound = errors.New("material not found")
var ErrValidation = errors.New("validation failed")
var ErrStorage = errors.New("storage operation failed")

// MaxUploadSize is the largest accepted file payload, in bytes.
const MaxUploadSize = 10 << 20 // 10 MiB

// allowedExtensions lists the file extensions accepted for upload.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".txt":  {},
	".ppt":  {},
	".pptx": {},
}

// ExtensionAllowed reports whether ext (including the leading dot) is an
// accepted upload extension. The check is case-insensitive.
func ExtensionAllowed(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

// FileInfo is the metadata of a file-backed material. StorageKey is the opaque
// handle used to delete the blob later; URL is the stored locator.
type FileInfo struct {
	Name       string `json:"file_name" bson:"file_name"`
	StorageKey string `json:"-" bson:"storage_key"`
	URL        string `json:"file_url" bson:"file_url"`
	Extension  string `json:"file_type" bson:"file_type"`
	SizeBytes  int64  `json:"size_bytes" bson:"size_bytes"`
}

// Material is a single shareable resource belonging to exactly one subject:
// an uploaded file, an external link, or both.
type Material struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	SubjectID string    `json:"subject" bson:"subject"`
	Link      string    `json:"link,omitempty" bson:"link,omitempty"`
	File      *FileInfo `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasFile reports whether the material is file-backed.
func (m *Material) HasFile() bool {
	return m.File != nil && m.File.StorageKey != ""
}
