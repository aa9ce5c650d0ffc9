package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

// OCREngine converts a raster image into text.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Rasterizer renders a single PDF page into an image.
type Rasterizer interface {
	RasterizePage(ctx context.Context, content []byte, page int) ([]byte, error)
}

// Extractor dispatches on the file-type hint to produce a UTF-8 string.
// Plain text never fails; image and PDF paths return an error only when
// the whole extraction is impossible. The caller treats that as an
// empty-text degradation, never as a pipeline failure.
type Extractor struct {
	ocr    OCREngine
	raster Rasterizer

	// readEmbedded is swappable in tests.
	readEmbedded func(content []byte) (pages int, text string)
}

func New(ocr OCREngine, raster Rasterizer) *Extractor {
	return &Extractor{ocr: ocr, raster: raster, readEmbedded: readEmbeddedPDF}
}

func (e *Extractor) Extract(ctx context.Context, content []byte, fileType domain.FileType) (string, error) {
	switch fileType {
	case domain.FileTypeText:
		return decodeText(content), nil
	case domain.FileTypeImage:
		return e.extractImage(ctx, content)
	case domain.FileTypePDF:
		return e.extractPDF(ctx, content)
	default:
		// Unknown hint is invalid input, not a failure: no readable text.
		slog.Warn("unsupported_file_type", "file_type", string(fileType))
		return "", nil
	}
}

// decodeText is a lossy UTF-8 decode: invalid byte sequences are
// dropped rather than raised.
func decodeText(content []byte) string {
	return strings.ToValidUTF8(string(content), "")
}

func (e *Extractor) extractImage(ctx context.Context, content []byte) (string, error) {
	text, err := e.ocr.Recognize(ctx, content)
	if err != nil {
		return "", fmt.Errorf("recognize image: %w", err)
	}
	return text, nil
}

// extractPDF prefers the embedded text layer; scanned PDFs fall back to
// rasterizing each page and recognizing it. A single bad page is
// skipped, page order is preserved.
func (e *Extractor) extractPDF(ctx context.Context, content []byte) (string, error) {
	pages, embedded := e.readEmbedded(content)
	if strings.TrimSpace(embedded) != "" {
		return embedded, nil
	}
	if pages <= 0 {
		return "", fmt.Errorf("parse pdf: no readable pages")
	}

	var b strings.Builder
	recognized := 0
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		image, err := e.raster.RasterizePage(ctx, content, page)
		if err != nil {
			slog.Warn("pdf_page_rasterize_failed", "page", page, "error", err)
			continue
		}
		text, err := e.ocr.Recognize(ctx, image)
		if err != nil {
			slog.Warn("pdf_page_ocr_failed", "page", page, "error", err)
			continue
		}
		b.WriteString(text)
		recognized++
	}
	if recognized == 0 {
		return "", fmt.Errorf("ocr pdf: no page produced text")
	}
	return b.String(), nil
}
