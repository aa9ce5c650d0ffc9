package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/core/ports"
)

const defaultRecommendationLimit = 5

// QueryUseCase is the read side: record lookups, filtered listings and
// category-affinity recommendations over analyzed documents.
type QueryUseCase struct {
	repo ports.DocumentRepository
}

func NewQueryUseCase(repo ports.DocumentRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "get document", errors.New("empty id"))
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *QueryUseCase) List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	docs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Recommend suggests recently analyzed documents that share the source
// document's category. A real similarity model can replace this without
// changing the contract.
func (uc *QueryUseCase) Recommend(ctx context.Context, documentID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch source document: %w", err)
	}

	category := ""
	if doc.Metadata != nil {
		category = doc.Metadata.Category
	}

	candidates, err := uc.repo.List(ctx, domain.DocumentFilter{
		Category: category,
		Status:   domain.StatusReady,
		Limit:    limit + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list candidate documents: %w", err)
	}

	recommendations := []domain.Recommendation{}
	for _, candidate := range candidates {
		if candidate.ID == doc.ID {
			continue
		}
		reason := "recently analyzed document"
		confidence := 0.5
		if category != "" && category != domain.IndustryGeneral {
			reason = fmt.Sprintf("shares the %q category", category)
			confidence = 0.85
		}
		recommendations = append(recommendations, domain.Recommendation{
			DocumentID: candidate.ID,
			Title:      candidate.Filename,
			Reason:     reason,
			Confidence: confidence,
		})
		if len(recommendations) == limit {
			break
		}
	}
	return recommendations, nil
}
