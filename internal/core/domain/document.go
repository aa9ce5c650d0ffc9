package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type DocumentStatus string

const (
	StatusUploaded  DocumentStatus = "uploaded"
	StatusAnalyzing DocumentStatus = "analyzing"
	StatusReady     DocumentStatus = "ready"
	StatusFailed    DocumentStatus = "failed"
)

// FileType is the caller-supplied hint for the text extraction path.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
	FileTypeText  FileType = "text"
)

// FileTypeFromName maps a filename to an extraction path. Anything that
// is not a PDF or a known raster image format is treated as plain text.
func FileTypeFromName(filename string) FileType {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "pdf":
		return FileTypePDF
	case "png", "jpg", "jpeg", "tif", "tiff", "bmp", "gif", "webp":
		return FileTypeImage
	default:
		return FileTypeText
	}
}

type Document struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	MimeType    string            `json:"mime_type"`
	FileType    FileType          `json:"file_type"`
	StoragePath string            `json:"storage_path"`
	Status      DocumentStatus    `json:"status"`
	Error       string            `json:"error,omitempty"`
	Metadata    *DocumentMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DocumentFilter narrows a listing query. Zero values mean "no filter".
type DocumentFilter struct {
	Category string
	Search   string
	Status   DocumentStatus
	Limit    int
}

// Recommendation points a user at an already-analyzed document.
type Recommendation struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}
