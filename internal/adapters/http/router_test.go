package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartdocs/smartdocs/internal/config"
	"github.com/smartdocs/smartdocs/internal/core/domain"
)

type ingestFake struct {
	err error
}

func (f ingestFake) Upload(_ context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &domain.Document{
		ID:          "doc-1",
		Filename:    filename,
		MimeType:    mimeType,
		FileType:    domain.FileTypeText,
		StoragePath: "doc-1_file.txt",
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type queryFake struct {
	doc     *domain.Document
	docs    []domain.Document
	recs    []domain.Recommendation
	err     error
	gotSort domain.DocumentFilter
}

func (f *queryFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *queryFake) List(_ context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	f.gotSort = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *queryFake) Recommend(context.Context, string, int) ([]domain.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

type exporterFake struct {
	raw []byte
	err error
}

func (f exporterFake) Export([]domain.Document) ([]byte, error) {
	return f.raw, f.err
}

func newHandler(cfg config.Config, ingest ingestFake, query *queryFake) http.Handler {
	return NewRouter(cfg, ingest, query, exporterFake{raw: []byte("xlsx")}, nil).Handler()
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newHandler(config.Config{}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	handler := newHandler(config.Config{}, ingestFake{}, &queryFake{})

	body, contentType := multipartBody(t, "file", "file.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
}

func TestUploadDocumentMissingMultipartField(t *testing.T) {
	handler := newHandler(config.Config{}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetDocumentByIDReturns404ForNotFound(t *testing.T) {
	query := &queryFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))}
	handler := newHandler(config.Config{}, ingestFake{}, query)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestListDocumentsPassesFilter(t *testing.T) {
	query := &queryFake{docs: []domain.Document{{ID: "doc-1"}}}
	handler := newHandler(config.Config{}, ingestFake{}, query)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?category=legal&search=acme&status=ready&limit=7", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	want := domain.DocumentFilter{Category: "legal", Search: "acme", Status: domain.StatusReady, Limit: 7}
	if query.gotSort != want {
		t.Fatalf("filter = %+v, want %+v", query.gotSort, want)
	}
}

func TestExportDocumentsSetsAttachmentHeaders(t *testing.T) {
	handler := newHandler(config.Config{}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/export", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Disposition"); got != `attachment; filename="documents.xlsx"` {
		t.Fatalf("content disposition = %q", got)
	}
	if res.Body.String() != "xlsx" {
		t.Fatalf("body = %q", res.Body.String())
	}
}

func TestRecommendationsRequireDocumentID(t *testing.T) {
	handler := newHandler(config.Config{}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/recommendations", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRecommendationsSuccess(t *testing.T) {
	query := &queryFake{recs: []domain.Recommendation{{DocumentID: "doc-2", Title: "other.pdf", Confidence: 0.85}}}
	handler := newHandler(config.Config{}, ingestFake{}, query)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/recommendations?document_id=doc-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var payload struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Recommendations) != 1 || payload.Recommendations[0].DocumentID != "doc-2" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestUploadMapsTemporaryErrorTo503(t *testing.T) {
	ingest := ingestFake{err: domain.WrapError(domain.ErrTemporary, "publish", errors.New("queue down"))}
	handler := newHandler(config.Config{}, ingest, &queryFake{})

	body, contentType := multipartBody(t, "file", "file.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestAPIKeyMiddlewareRejectsMissingToken(t *testing.T) {
	handler := newHandler(config.Config{APIKey: "secret"}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer secret")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid key, got %d", res.Code)
	}
}

func TestAPIKeyMiddlewareAllowsHealthz(t *testing.T) {
	handler := newHandler(config.Config{APIKey: "secret"}, ingestFake{}, &queryFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}
