// Package bootstrap assembles the adapters behind the core ports and
// hands fully wired use cases to the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/smartdocs/smartdocs/internal/config"
	"github.com/smartdocs/smartdocs/internal/core/ports"
	"github.com/smartdocs/smartdocs/internal/core/usecase"
	"github.com/smartdocs/smartdocs/internal/infrastructure/chunking"
	"github.com/smartdocs/smartdocs/internal/infrastructure/export/excel"
	"github.com/smartdocs/smartdocs/internal/infrastructure/extract"
	"github.com/smartdocs/smartdocs/internal/infrastructure/graph/neo4j"
	"github.com/smartdocs/smartdocs/internal/infrastructure/nlp/modelserver"
	"github.com/smartdocs/smartdocs/internal/infrastructure/ocr/tesseract"
	"github.com/smartdocs/smartdocs/internal/infrastructure/queue/nats"
	"github.com/smartdocs/smartdocs/internal/infrastructure/repository/postgres"
	"github.com/smartdocs/smartdocs/internal/infrastructure/resilience"
	"github.com/smartdocs/smartdocs/internal/infrastructure/storage/localfs"
	"github.com/smartdocs/smartdocs/internal/infrastructure/textproc"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Repo     ports.DocumentRepository
	Exporter *excel.Exporter

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	QueryUC   ports.DocumentQueryService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, observer usecase.ProcessObserver) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{Executor: executor})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ocr := tesseract.New(cfg.TesseractPath)
	raster := extract.NewPopplerRasterizer(cfg.PdftoppmPath, cfg.PDFRenderDPI)
	extractor := extract.New(ocr, raster)

	modelClient := modelserver.New(cfg.ModelServerURL, executor)
	recognizer := modelserver.NewRecognizer(modelClient, cfg.NERModel)
	sentiment := modelserver.NewSentimentClassifier(modelClient, cfg.SentimentModel)
	summarizer := chunking.NewWindowedSummarizer(
		modelserver.NewSummarizer(modelClient, cfg.SummaryModel),
		chunking.NewSplitter(cfg.SummaryChunkSize, 0),
		cfg.SummaryMaxChunks,
	)

	keywords := textproc.NewKeywordExtractor(cfg.MaxKeywords)
	industry, err := textproc.NewIndustryClassifier()
	if err != nil {
		return nil, fmt.Errorf("init industry classifier: %w", err)
	}

	var graph ports.GraphStore
	var graphStore *neo4j.Store
	if cfg.Neo4jURI != "" {
		graphStore, err = neo4j.New(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, fmt.Errorf("init graph store: %w", err)
		}
		graph = graphStore
	}

	analyzer := usecase.NewAnalyzer(extractor, recognizer, sentiment, keywords, industry, summarizer, usecase.Limits{
		MaxEntities:        cfg.MaxEntities,
		MaxKeywords:        cfg.MaxKeywords,
		MaxRelationships:   cfg.MaxRelationships,
		MaxTextLength:      cfg.MaxTextLength,
		MaxSentimentLength: cfg.MaxSentimentLength,
	})

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, storage, analyzer, graph, observer)
	queryUC := usecase.NewQueryUseCase(repo)

	return &App{
		Config:   cfg,
		Queue:    queue,
		Repo:     repo,
		Exporter: excel.NewExporter(),

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		QueryUC:   queryUC,

		closeFn: func() {
			queue.Close()
			if graphStore != nil {
				_ = graphStore.Close(context.Background())
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
