package textproc

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

//go:embed buckets.yaml
var bucketsYAML []byte

type bucketsFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// IndustryClassifier scores text against fixed keyword buckets and
// returns every category with at least one exact-token match, best
// score first. No match yields {general}; the result is never empty.
// Buckets are immutable after construction, so classification is safe
// for concurrent use.
type IndustryClassifier struct {
	// priority keeps the hand-authored category order for tie breaks.
	priority []string
	buckets  map[string]map[string]struct{}
}

func NewIndustryClassifier() (*IndustryClassifier, error) {
	var file bucketsFile
	if err := yaml.Unmarshal(bucketsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse industry buckets: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("industry buckets are empty")
	}

	classifier := &IndustryClassifier{
		buckets: make(map[string]map[string]struct{}, len(file.Categories)),
	}
	for _, category := range file.Categories {
		bucket := make(map[string]struct{}, len(category.Keywords))
		for _, keyword := range category.Keywords {
			bucket[keyword] = struct{}{}
		}
		classifier.priority = append(classifier.priority, category.Name)
		classifier.buckets[category.Name] = bucket
	}
	return classifier, nil
}

func (c *IndustryClassifier) Classify(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := map[string]int{}
	for _, token := range tokenize(text) {
		for _, category := range c.priority {
			if _, ok := c.buckets[category][token]; ok {
				scores[category]++
			}
		}
	}

	qualifying := []string{}
	for _, category := range c.priority {
		if scores[category] > 0 {
			qualifying = append(qualifying, category)
		}
	}
	if len(qualifying) == 0 {
		return []string{domain.IndustryGeneral}, nil
	}

	// Descending score; the bucket file order breaks ties.
	sort.SliceStable(qualifying, func(i, j int) bool {
		return scores[qualifying[i]] > scores[qualifying[j]]
	})
	return qualifying, nil
}
