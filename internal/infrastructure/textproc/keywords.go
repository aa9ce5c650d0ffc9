package textproc

import (
	"context"
	"sort"
)

// KeywordExtractor derives a frequency-ranked top-N list of content
// words: alphabetic, non-stopword tokens, lowercased. Ranking is by
// descending frequency with ties broken by first appearance, so the
// result is deterministic for identical input.
type KeywordExtractor struct {
	maxKeywords int
}

func NewKeywordExtractor(maxKeywords int) *KeywordExtractor {
	if maxKeywords <= 0 {
		maxKeywords = 5
	}
	return &KeywordExtractor{maxKeywords: maxKeywords}
}

func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type entry struct {
		token string
		count int
		first int
	}
	counts := map[string]*entry{}
	order := []*entry{}

	for i, token := range tokenize(text) {
		if isStopword(token) {
			continue
		}
		if existing, ok := counts[token]; ok {
			existing.count++
			continue
		}
		ent := &entry{token: token, count: 1, first: i}
		counts[token] = ent
		order = append(order, ent)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	keywords := []string{}
	for _, entry := range order {
		keywords = append(keywords, entry.token)
		if len(keywords) == e.maxKeywords {
			break
		}
	}
	return keywords, nil
}
