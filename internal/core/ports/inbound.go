package ports

import (
	"context"
	"io"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document analysis.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentQueryService is the inbound read model for document records.
type DocumentQueryService interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
	Recommend(ctx context.Context, documentID string, limit int) ([]domain.Recommendation, error)
}
