package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/core/ports"
)

// ProcessDocumentUseCase is the worker-side orchestration around the
// Analyzer: load the stored bytes, run the pipeline, persist the
// metadata record and mirror relationships into the graph store.
type ProcessDocumentUseCase struct {
	repo     ports.DocumentRepository
	storage  ports.ObjectStorage
	analyzer *Analyzer
	graph    ports.GraphStore
	observer ProcessObserver
}

// ProcessObserver receives per-document pipeline telemetry. The worker
// wires prometheus here; tests leave it nil.
type ProcessObserver interface {
	StageDegraded(stage string)
	AnalysisFinished(fileType domain.FileType, noContent bool)
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	analyzer *Analyzer,
	graph ports.GraphStore,
	observer ProcessObserver,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:     repo,
		storage:  storage,
		analyzer: analyzer,
		graph:    graph,
		observer: observer,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusAnalyzing, ""); err != nil {
		return fmt.Errorf("set status=analyzing: %w", err)
	}

	metadata, err := uc.runPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveMetadata(ctx, documentID, metadata); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save metadata: %w", err)
	}

	// The graph mirror is best effort: a graph outage must not fail an
	// otherwise complete analysis.
	if uc.graph != nil && len(metadata.Relationships) > 0 {
		if err := uc.graph.SyncRelationships(ctx, documentID, metadata.Entities, metadata.Relationships); err != nil {
			slog.Warn("graph_sync_failed", "document_id", documentID, "error", err)
		}
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) runPipeline(ctx context.Context, documentID string) (domain.DocumentMetadata, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("fetch document by id: %w", err)
	}

	content, err := uc.loadContent(ctx, doc.StoragePath)
	if err != nil {
		return domain.DocumentMetadata{}, err
	}

	result, err := uc.analyzer.Analyze(ctx, content, doc.FileType, doc.Filename)
	if err != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("analyze document: %w", err)
	}

	for _, degradation := range result.Degraded {
		if uc.observer != nil {
			uc.observer.StageDegraded(degradation.Stage)
		}
	}
	if uc.observer != nil {
		uc.observer.AnalysisFinished(doc.FileType, result.NoContent)
	}
	if result.NoContent {
		slog.Info("document_has_no_readable_content", "document_id", documentID, "file_type", doc.FileType)
	}

	return result.Metadata, nil
}

func (uc *ProcessDocumentUseCase) loadContent(ctx context.Context, storagePath string) ([]byte, error) {
	reader, err := uc.storage.Open(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("open stored document: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stored document: %w", err)
	}
	return content, nil
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
