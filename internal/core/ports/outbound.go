package ports

import (
	"context"
	"io"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

// DocumentRepository persists and reads document records.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveMetadata(ctx context.Context, id string, metadata domain.DocumentMetadata) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes analysis requests.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor turns raw bytes into a UTF-8 string according to the
// file-type hint. Absence of readable text is a valid empty result, not
// an error; an error means the extraction machinery itself failed.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte, fileType domain.FileType) (string, error)
}

// EntityRecognizer runs named-entity recognition over extracted text.
type EntityRecognizer interface {
	RecognizeEntities(ctx context.Context, text string) ([]domain.Entity, error)
}

// SentimentAnalyzer classifies the polarity of a short text excerpt.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentResult, error)
}

// KeywordExtractor derives ranked content words from text.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// IndustryClassifier scores text against fixed keyword buckets.
type IndustryClassifier interface {
	Classify(ctx context.Context, text string) ([]string, error)
}

// Summarizer produces a short abstract of the document text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// GraphStore mirrors derived entity relationships into a graph
// database for cross-document exploration.
type GraphStore interface {
	SyncRelationships(ctx context.Context, documentID string, entities []domain.Entity, rels []domain.Relationship) error
}
