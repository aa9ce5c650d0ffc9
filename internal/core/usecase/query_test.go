package usecase

import (
	"context"
	"testing"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

func TestQueryGetByIDRejectsEmptyID(t *testing.T) {
	uc := NewQueryUseCase(&repoFake{})
	_, err := uc.GetByID(context.Background(), "  ")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecommendSharesCategoryAndExcludesSource(t *testing.T) {
	source := &domain.Document{
		ID:       "doc-1",
		Metadata: &domain.DocumentMetadata{Category: domain.IndustryLegal},
	}
	repo := &repoFake{
		docs: map[string]*domain.Document{"doc-1": source},
		listed: []domain.Document{
			{ID: "doc-1", Filename: "self.pdf"},
			{ID: "doc-2", Filename: "contract.pdf"},
			{ID: "doc-3", Filename: "filing.pdf"},
		},
	}
	uc := NewQueryUseCase(repo)

	recs, err := uc.Recommend(context.Background(), "doc-1", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if repo.listFilter.Category != domain.IndustryLegal || repo.listFilter.Status != domain.StatusReady {
		t.Fatalf("unexpected candidate filter: %+v", repo.listFilter)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.DocumentID == "doc-1" {
			t.Fatalf("source document must not recommend itself")
		}
		if rec.Confidence != 0.85 {
			t.Fatalf("expected category-affinity confidence, got %v", rec.Confidence)
		}
	}
}

func TestRecommendFallsBackForUnanalyzedSource(t *testing.T) {
	repo := &repoFake{
		docs: map[string]*domain.Document{"doc-1": {ID: "doc-1"}},
		listed: []domain.Document{
			{ID: "doc-2", Filename: "other.txt"},
		},
	}
	uc := NewQueryUseCase(repo)

	recs, err := uc.Recommend(context.Background(), "doc-1", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if repo.listFilter.Category != "" {
		t.Fatalf("expected no category filter, got %q", repo.listFilter.Category)
	}
	if len(recs) != 1 || recs[0].Confidence != 0.5 {
		t.Fatalf("expected generic recommendation, got %+v", recs)
	}
}
