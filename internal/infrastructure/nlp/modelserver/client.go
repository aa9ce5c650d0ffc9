// Package modelserver talks to the NLP model-serving HTTP API that
// hosts the NER, sentiment, and summarization pipelines.
package modelserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/smartdocs/smartdocs/internal/core/domain"
	"github.com/smartdocs/smartdocs/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL string, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		exec:       exec,
	}
}

func (c *Client) call(ctx context.Context, operation, path string, payload, out any) error {
	fn := func(ctx context.Context) error {
		return c.postJSON(ctx, path, payload, out, operation)
	}

	var err error
	if c.exec != nil {
		err = c.exec.Run(ctx, operation, classifyModelError, fn)
	} else {
		err = fn(ctx)
	}
	return wrapTemporaryIfNeeded(operation, err)
}

// Recognizer runs the named-entity pipeline.
type Recognizer struct {
	client *Client
	model  string
}

func NewRecognizer(client *Client, model string) *Recognizer {
	return &Recognizer{client: client, model: model}
}

func (r *Recognizer) RecognizeEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	request := map[string]any{
		"model": r.model,
		"text":  text,
	}
	var response struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
			Start int    `json:"start"`
			End   int    `json:"end"`
		} `json:"entities"`
	}
	if err := r.client.call(ctx, "ner", "/pipelines/ner", request, &response); err != nil {
		return nil, err
	}

	entities := make([]domain.Entity, 0, len(response.Entities))
	for _, e := range response.Entities {
		entities = append(entities, domain.Entity{
			Text:  e.Text,
			Label: strings.ToUpper(strings.TrimSpace(e.Label)),
			Start: e.Start,
			End:   e.End,
		})
	}
	return entities, nil
}

// SentimentClassifier runs the polarity pipeline.
type SentimentClassifier struct {
	client *Client
	model  string
}

func NewSentimentClassifier(client *Client, model string) *SentimentClassifier {
	return &SentimentClassifier{client: client, model: model}
}

func (s *SentimentClassifier) AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentResult, error) {
	request := map[string]any{
		"model": s.model,
		"text":  text,
	}
	var response struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := s.client.call(ctx, "sentiment", "/pipelines/sentiment", request, &response); err != nil {
		return domain.SentimentResult{}, err
	}
	return domain.SentimentResult{
		Label: strings.ToUpper(strings.TrimSpace(response.Label)),
		Score: response.Score,
	}, nil
}

// Summarizer runs the abstractive summary pipeline.
type Summarizer struct {
	client *Client
	model  string
}

func NewSummarizer(client *Client, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	request := map[string]any{
		"model": s.model,
		"text":  text,
	}
	var response struct {
		Summary string `json:"summary"`
	}
	if err := s.client.call(ctx, "summarize", "/pipelines/summarize", request, &response); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Summary), nil
}
