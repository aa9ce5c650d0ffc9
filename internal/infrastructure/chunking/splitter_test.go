package chunking

import (
	"context"
	"strings"
	"testing"
)

func TestSplitRespectsChunkSizeAndOverlap(t *testing.T) {
	s := NewSplitter(10, 2)
	chunks := s.Split(strings.Repeat("a", 25))
	wantLens := []int{10, 10, 9, 1}
	if len(chunks) != len(wantLens) {
		t.Fatalf("chunks = %d, want %d", len(chunks), len(wantLens))
	}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Fatalf("chunk %d len = %d, want %d", i, len(chunk), wantLens[i])
		}
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(100, 0)
	if got := s.Split("   "); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	if got := s.Split(""); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestSplitHandlesMultibyteRunes(t *testing.T) {
	s := NewSplitter(3, 0)
	chunks := s.Split("日本語テキスト")
	if len(chunks) != 3 {
		t.Fatalf("chunks = %v", chunks)
	}
	if chunks[0] != "日本語" || chunks[1] != "テキス" || chunks[2] != "ト" {
		t.Fatalf("chunks = %v", chunks)
	}
}

type summarizerSpy struct {
	gotText string
}

func (s *summarizerSpy) Summarize(_ context.Context, text string) (string, error) {
	s.gotText = text
	return "summary", nil
}

func TestWindowedSummarizerLimitsInput(t *testing.T) {
	spy := &summarizerSpy{}
	w := NewWindowedSummarizer(spy, NewSplitter(10, 0), 2)

	got, err := w.Summarize(context.Background(), strings.Repeat("x", 50))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "summary" {
		t.Fatalf("got %q", got)
	}
	want := strings.Repeat("x", 10) + "\n" + strings.Repeat("x", 10)
	if spy.gotText != want {
		t.Fatalf("inner text = %q, want %q", spy.gotText, want)
	}
}

func TestWindowedSummarizerEmptyInput(t *testing.T) {
	spy := &summarizerSpy{gotText: "untouched"}
	w := NewWindowedSummarizer(spy, nil, 3)

	got, err := w.Summarize(context.Background(), "")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	if spy.gotText != "untouched" {
		t.Fatal("inner summarizer must not run for empty input")
	}
}
