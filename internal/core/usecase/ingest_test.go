package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

type repoFake struct {
	docs        map[string]*domain.Document
	created     *domain.Document
	createErr   error
	getErr      error
	listed      []domain.Document
	listErr     error
	listFilter  domain.DocumentFilter
	statusCalls []statusCall
	statusErr   error
	saved       *domain.DocumentMetadata
	savedID     string
	saveErr     error
}

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyDoc := *doc
	f.created = &copyDoc
	return nil
}

func (f *repoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New(id))
	}
	copyDoc := *doc
	return &copyDoc, nil
}

func (f *repoFake) List(_ context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *repoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return f.statusErr
}

func (f *repoFake) SaveMetadata(_ context.Context, id string, metadata domain.DocumentMetadata) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = id
	f.saved = &metadata
	return nil
}

type storageFake struct {
	savedKey  string
	savedBody string
	content   string
	saveErr   error
	openErr   error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

type queueFake struct {
	documentID string
	err        error
}

func (f *queueFake) PublishDocumentUploaded(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *queueFake) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &repoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "report 1.pdf", "application/pdf", bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("expected status uploaded, got %s", doc.Status)
	}
	if doc.FileType != domain.FileTypePDF {
		t.Fatalf("expected pdf file type, got %s", doc.FileType)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.documentID != doc.ID {
		t.Fatalf("expected queued doc id %s, got %s", doc.ID, queue.documentID)
	}
	if !strings.Contains(storage.savedKey, "_report_1.pdf") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "hello" {
		t.Fatalf("expected saved body hello, got %s", storage.savedBody)
	}
}

func TestIngestUploadQueueError(t *testing.T) {
	uc := NewIngestDocumentUseCase(&repoFake{}, &storageFake{}, &queueFake{err: errors.New("queue down")})

	_, err := uc.Upload(context.Background(), "report.txt", "text/plain", bytes.NewBufferString("hello"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish analysis event") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestResolveFileType(t *testing.T) {
	cases := []struct {
		filename string
		mimeType string
		want     domain.FileType
	}{
		{"scan.pdf", "application/pdf", domain.FileTypePDF},
		{"scan.bin", "application/pdf", domain.FileTypePDF},
		{"photo.jpeg", "image/jpeg", domain.FileTypeImage},
		{"photo.png", "", domain.FileTypeImage},
		{"notes.txt", "text/plain", domain.FileTypeText},
		{"notes.md", "", domain.FileTypeText},
		{"REPORT.PDF", "application/octet-stream", domain.FileTypePDF},
		{"no-extension", "", domain.FileTypeText},
	}
	for _, tc := range cases {
		if got := resolveFileType(tc.filename, tc.mimeType); got != tc.want {
			t.Fatalf("resolveFileType(%q, %q) = %s, want %s", tc.filename, tc.mimeType, got, tc.want)
		}
	}
}
