package chunking

import (
	"context"
	"strings"

	"github.com/smartdocs/smartdocs/internal/core/ports"
)

// WindowedSummarizer caps summarizer input to the leading chunks of a
// document so oversized text stays inside the model context window.
type WindowedSummarizer struct {
	splitter  *Splitter
	inner     ports.Summarizer
	maxChunks int
}

func NewWindowedSummarizer(inner ports.Summarizer, splitter *Splitter, maxChunks int) *WindowedSummarizer {
	if maxChunks <= 0 {
		maxChunks = 3
	}
	if splitter == nil {
		splitter = NewSplitter(1000, 0)
	}
	return &WindowedSummarizer{splitter: splitter, inner: inner, maxChunks: maxChunks}
}

func (w *WindowedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	chunks := w.splitter.Split(text)
	if len(chunks) == 0 {
		return "", nil
	}
	if len(chunks) > w.maxChunks {
		chunks = chunks[:w.maxChunks]
	}
	return w.inner.Summarize(ctx, strings.Join(chunks, "\n"))
}
