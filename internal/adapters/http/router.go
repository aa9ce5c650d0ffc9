package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/smartdocs/smartdocs/internal/config"
	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/core/ports"
)

// ListingExporter renders a document listing into a downloadable
// workbook.
type ListingExporter interface {
	Export(docs []domain.Document) ([]byte, error)
}

// UploadMetrics is the slice of HTTP metrics the router reports itself.
type UploadMetrics interface {
	RecordUpload(service, fileType string)
	RecordExport(service string)
}

type Router struct {
	cfg      config.Config
	ingest   ports.DocumentIngestor
	query    ports.DocumentQueryService
	exporter ListingExporter
	metrics  UploadMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	query ports.DocumentQueryService,
	exporter ListingExporter,
	metrics UploadMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		ingest:   ingest,
		query:    query,
		exporter: exporter,
		metrics:  metrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/export", rt.exportDocuments)
	mux.HandleFunc("/v1/documents/recommendations", rt.recommendations)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConns, 100*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateBurst)
	handler = apiKeyMiddleware(handler, rt.cfg.APIKey)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload("api", string(doc.FileType))
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.query.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.query.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) exportDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	docs, err := rt.query.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	workbook, err := rt.exporter.Export(docs)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExport("api")
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	documentID := r.URL.Query().Get("document_id")
	if strings.TrimSpace(documentID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_id is required"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := rt.query.Recommend(r.Context(), documentID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func filterFromQuery(r *http.Request) domain.DocumentFilter {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	return domain.DocumentFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Status:   domain.DocumentStatus(q.Get("status")),
		Limit:    limit,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
