package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/core/ports"
)

// Limits bound the output size and model input length of every
// pipeline stage. Zero values fall back to the defaults below.
type Limits struct {
	MaxEntities        int
	MaxKeywords        int
	MaxRelationships   int
	MaxTextLength      int
	MaxSentimentLength int
}

func DefaultLimits() Limits {
	return Limits{
		MaxEntities:        10,
		MaxKeywords:        5,
		MaxRelationships:   10,
		MaxTextLength:      5000,
		MaxSentimentLength: 512,
	}
}

func (l Limits) normalize() Limits {
	def := DefaultLimits()
	if l.MaxEntities <= 0 {
		l.MaxEntities = def.MaxEntities
	}
	if l.MaxKeywords <= 0 {
		l.MaxKeywords = def.MaxKeywords
	}
	if l.MaxRelationships <= 0 {
		l.MaxRelationships = def.MaxRelationships
	}
	if l.MaxTextLength <= 0 {
		l.MaxTextLength = def.MaxTextLength
	}
	if l.MaxSentimentLength <= 0 {
		l.MaxSentimentLength = def.MaxSentimentLength
	}
	return l
}

// placeholderConfidence stands in for an aggregate confidence model.
const placeholderConfidence = 0.95

// AnalysisResult carries the assembled metadata together with a record
// of every stage that fell back to its default value.
type AnalysisResult struct {
	Metadata  domain.DocumentMetadata
	Degraded  []domain.Degradation
	NoContent bool
}

// Analyzer is the document analysis pipeline: one synchronous pass per
// document, bytes in, metadata record out. Stage failures never escape;
// each is converted into that stage's documented fallback and recorded
// as a Degradation. The shared model resources behind the injected
// stages are read-only, so concurrent Analyze calls are safe.
type Analyzer struct {
	extractor  ports.TextExtractor
	recognizer ports.EntityRecognizer
	sentiment  ports.SentimentAnalyzer
	keywords   ports.KeywordExtractor
	industry   ports.IndustryClassifier
	summarizer ports.Summarizer
	limits     Limits
}

func NewAnalyzer(
	extractor ports.TextExtractor,
	recognizer ports.EntityRecognizer,
	sentiment ports.SentimentAnalyzer,
	keywords ports.KeywordExtractor,
	industry ports.IndustryClassifier,
	summarizer ports.Summarizer,
	limits Limits,
) *Analyzer {
	return &Analyzer{
		extractor:  extractor,
		recognizer: recognizer,
		sentiment:  sentiment,
		keywords:   keywords,
		industry:   industry,
		summarizer: summarizer,
		limits:     limits.normalize(),
	}
}

// Analyze runs extraction and every inference stage over a single
// document. The only failure it can return is context cancellation;
// everything else degrades to defaults inside the stage boundaries.
func (a *Analyzer) Analyze(ctx context.Context, content []byte, fileType domain.FileType, filename string) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}

	res := AnalysisResult{}

	text := a.extractText(ctx, content, fileType, &res)
	noContent := strings.TrimSpace(text) == ""
	res.NoContent = noContent

	entities := []domain.Entity{}
	sentiment := domain.NeutralSentiment()
	keywords := []string{}
	industries := []string{domain.IndustryGeneral}
	summary := ""

	// Empty text short-circuits the model stages: defaults carry the
	// "no readable content" signal downstream instead of an error.
	if !noContent {
		entities = a.recognizeEntities(ctx, text, &res)
		sentiment = a.analyzeSentiment(ctx, text, &res)
		keywords = a.extractKeywords(ctx, text, &res)
		industries = a.classifyIndustry(ctx, text, &res)
		summary = a.summarize(ctx, text, &res)
	}

	relationships := deriveRelationships(entities, a.limits.MaxRelationships)

	res.Metadata = assembleMetadata(assembleInput{
		filename:      filename,
		fileType:      fileType,
		size:          len(content),
		text:          text,
		entities:      entities,
		sentiment:     sentiment,
		keywords:      keywords,
		industries:    industries,
		summary:       summary,
		relationships: relationships,
		maxEntities:   a.limits.MaxEntities,
		maxKeywords:   a.limits.MaxKeywords,
	})
	return res, ctx.Err()
}

func (a *Analyzer) extractText(ctx context.Context, content []byte, fileType domain.FileType, res *AnalysisResult) string {
	if len(content) == 0 {
		return ""
	}
	text, err := a.extractor.Extract(ctx, content, fileType)
	if err != nil {
		res.degrade("extract", err)
		return ""
	}
	return text
}

func (a *Analyzer) recognizeEntities(ctx context.Context, text string, res *AnalysisResult) []domain.Entity {
	entities, err := a.recognizer.RecognizeEntities(ctx, truncateRunes(text, a.limits.MaxTextLength))
	if err != nil {
		res.degrade("entities", err)
		return []domain.Entity{}
	}
	if entities == nil {
		entities = []domain.Entity{}
	}
	// First-appearance order is preserved; overflow is cut, not resampled.
	if len(entities) > a.limits.MaxEntities {
		entities = entities[:a.limits.MaxEntities]
	}
	return entities
}

func (a *Analyzer) analyzeSentiment(ctx context.Context, text string, res *AnalysisResult) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.NeutralSentiment()
	}
	result, err := a.sentiment.AnalyzeSentiment(ctx, truncateRunes(text, a.limits.MaxSentimentLength))
	if err != nil {
		res.degrade("sentiment", err)
		return domain.NeutralSentiment()
	}
	return result
}

func (a *Analyzer) extractKeywords(ctx context.Context, text string, res *AnalysisResult) []string {
	keywords, err := a.keywords.ExtractKeywords(ctx, truncateRunes(text, a.limits.MaxTextLength))
	if err != nil {
		res.degrade("keywords", err)
		return []string{}
	}
	if keywords == nil {
		keywords = []string{}
	}
	if len(keywords) > a.limits.MaxKeywords {
		keywords = keywords[:a.limits.MaxKeywords]
	}
	return keywords
}

func (a *Analyzer) classifyIndustry(ctx context.Context, text string, res *AnalysisResult) []string {
	industries, err := a.industry.Classify(ctx, truncateRunes(text, a.limits.MaxTextLength))
	if err != nil {
		res.degrade("industry", err)
		return []string{domain.IndustryGeneral}
	}
	if len(industries) == 0 {
		industries = []string{domain.IndustryGeneral}
	}
	return industries
}

func (a *Analyzer) summarize(ctx context.Context, text string, res *AnalysisResult) string {
	if a.summarizer == nil {
		return ""
	}
	summary, err := a.summarizer.Summarize(ctx, text)
	if err != nil {
		res.degrade("summary", err)
		return ""
	}
	return strings.TrimSpace(summary)
}

func (r *AnalysisResult) degrade(stage string, err error) {
	reason := "unavailable"
	if err != nil {
		reason = err.Error()
	}
	r.Degraded = append(r.Degraded, domain.Degradation{Stage: stage, Reason: reason})
	slog.Warn("analysis_stage_degraded", "stage", stage, "reason", reason)
}

// deriveRelationships pairs every two distinct-labeled entities in list
// order (i < j) and stops exactly at the cap. Pairs are not prioritized
// or sorted: first found wins.
func deriveRelationships(entities []domain.Entity, maxRelationships int) []domain.Relationship {
	relationships := []domain.Relationship{}
	if maxRelationships <= 0 {
		return relationships
	}
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if entities[i].Label == entities[j].Label {
				continue
			}
			relationships = append(relationships, domain.Relationship{
				Entity1: entities[i].Text,
				Entity2: entities[j].Text,
				Type:    fmt.Sprintf("%s_to_%s", entities[i].Label, entities[j].Label),
			})
			if len(relationships) == maxRelationships {
				return relationships
			}
		}
	}
	return relationships
}

type assembleInput struct {
	filename      string
	fileType      domain.FileType
	size          int
	text          string
	entities      []domain.Entity
	sentiment     domain.SentimentResult
	keywords      []string
	industries    []string
	summary       string
	relationships []domain.Relationship
	maxEntities   int
	maxKeywords   int
}

func assembleMetadata(in assembleInput) domain.DocumentMetadata {
	now := time.Now().UTC()
	return domain.DocumentMetadata{
		Title:                  in.filename,
		Category:               in.industries[0],
		Tags:                   buildTags(in.entities, in.keywords, in.maxEntities, in.maxKeywords),
		CreatedAt:              now,
		ModifiedAt:             now,
		FileType:               string(in.fileType),
		Size:                   in.size,
		ExtractedText:          in.text,
		Entities:               in.entities,
		Sentiment:              in.sentiment,
		ConfidenceScore:        placeholderConfidence,
		IndustryClassification: in.industries,
		Summary:                in.summary,
		KeyPhrases:             in.keywords,
		Relationships:          in.relationships,
	}
}

// buildTags is the deduplicated lowercase union of entity texts and
// keywords, in first-appearance order so repeated runs agree.
func buildTags(entities []domain.Entity, keywords []string, maxEntities, maxKeywords int) []string {
	tags := []string{}
	seen := map[string]struct{}{}

	add := func(raw string) {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for i, entity := range entities {
		if i == maxEntities {
			break
		}
		add(entity.Text)
	}
	for i, keyword := range keywords {
		if i == maxKeywords {
			break
		}
		add(keyword)
	}
	return tags
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
