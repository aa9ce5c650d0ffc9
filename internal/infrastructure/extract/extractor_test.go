package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

type ocrFake struct {
	texts map[string]string
	err   error
	calls int
}

func (o *ocrFake) Recognize(_ context.Context, image []byte) (string, error) {
	o.calls++
	if o.err != nil {
		return "", o.err
	}
	if text, ok := o.texts[string(image)]; ok {
		return text, nil
	}
	return "", errors.New("unrecognized image")
}

type rasterFake struct {
	failPages map[int]bool
	pages     int
}

func (r *rasterFake) RasterizePage(_ context.Context, _ []byte, page int) ([]byte, error) {
	if page < 1 || page > r.pages {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	if r.failPages[page] {
		return nil, errors.New("render failed")
	}
	return []byte(fmt.Sprintf("page-%d", page)), nil
}

func TestExtractTextDropsInvalidUTF8(t *testing.T) {
	e := New(&ocrFake{}, &rasterFake{})

	got, err := e.Extract(context.Background(), []byte("hello \xff\xfeworld"), domain.FileTypeText)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestExtractImageUsesOCR(t *testing.T) {
	ocr := &ocrFake{texts: map[string]string{"img": "scanned receipt"}}
	e := New(ocr, &rasterFake{})

	got, err := e.Extract(context.Background(), []byte("img"), domain.FileTypeImage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "scanned receipt" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractImageOCRError(t *testing.T) {
	ocr := &ocrFake{err: errors.New("binary missing")}
	e := New(ocr, &rasterFake{})

	if _, err := e.Extract(context.Background(), []byte("img"), domain.FileTypeImage); err == nil {
		t.Fatal("expected error from unreadable image")
	}
}

func TestExtractUnknownTypeReturnsEmpty(t *testing.T) {
	e := New(&ocrFake{err: errors.New("must not be called")}, &rasterFake{})

	got, err := e.Extract(context.Background(), []byte("data"), domain.FileType("docx"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestExtractPDFPrefersEmbeddedText(t *testing.T) {
	ocr := &ocrFake{err: errors.New("ocr must not run")}
	e := New(ocr, &rasterFake{})
	e.readEmbedded = func([]byte) (int, string) { return 2, "embedded layer" }

	got, err := e.Extract(context.Background(), []byte("%PDF"), domain.FileTypePDF)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "embedded layer" {
		t.Fatalf("got %q", got)
	}
	if ocr.calls != 0 {
		t.Fatalf("OCR ran %d times for a text-layer PDF", ocr.calls)
	}
}

func TestExtractPDFScannedFallsBackToOCR(t *testing.T) {
	ocr := &ocrFake{texts: map[string]string{
		"page-1": "first ",
		"page-2": "second ",
		"page-3": "third",
	}}
	e := New(ocr, &rasterFake{pages: 3})
	e.readEmbedded = func([]byte) (int, string) { return 3, "" }

	got, err := e.Extract(context.Background(), []byte("%PDF"), domain.FileTypePDF)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "first second third" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractPDFSkipsFailedPages(t *testing.T) {
	ocr := &ocrFake{texts: map[string]string{
		"page-1": "alpha ",
		"page-3": "gamma",
	}}
	e := New(ocr, &rasterFake{pages: 3, failPages: map[int]bool{2: true}})
	e.readEmbedded = func([]byte) (int, string) { return 3, "" }

	got, err := e.Extract(context.Background(), []byte("%PDF"), domain.FileTypePDF)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "alpha gamma" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractPDFErrorsWhenNoPageYieldsText(t *testing.T) {
	ocr := &ocrFake{err: errors.New("engine down")}
	e := New(ocr, &rasterFake{pages: 2})
	e.readEmbedded = func([]byte) (int, string) { return 2, "" }

	_, err := e.Extract(context.Background(), []byte("%PDF"), domain.FileTypePDF)
	if err == nil {
		t.Fatal("expected error when every page fails")
	}
	if !strings.Contains(err.Error(), "no page produced text") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractPDFCorruptDocument(t *testing.T) {
	e := New(&ocrFake{}, &rasterFake{})

	if _, err := e.Extract(context.Background(), []byte("not a pdf at all"), domain.FileTypePDF); err == nil {
		t.Fatal("expected error for unparseable document")
	}
}

func TestExtractPDFHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(&ocrFake{}, &rasterFake{pages: 5})
	e.readEmbedded = func([]byte) (int, string) { return 5, "" }

	if _, err := e.Extract(ctx, []byte("%PDF"), domain.FileTypePDF); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
