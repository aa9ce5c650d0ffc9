package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readEmbeddedPDF returns the page count and any embedded text layer.
// The pdf library panics on some malformed documents, so every call
// into it is guarded; a corrupt document reads as zero pages.
func readEmbeddedPDF(content []byte) (pages int, text string) {
	defer func() {
		if r := recover(); r != nil {
			pages, text = 0, ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, ""
	}

	func() {
		defer func() { _ = recover() }()
		pages = reader.NumPage()
	}()
	if pages <= 0 {
		return 0, ""
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		func() {
			defer func() { _ = recover() }()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			for _, item := range page.Content().Text {
				b.WriteString(item.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}()
	}
	return pages, b.String()
}
