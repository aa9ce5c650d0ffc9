package domain

import "time"

// Entity is a span of text tagged with a semantic category by the NER
// model. Start/End are rune offsets into the extracted text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

// Sentiment labels form a closed set; any analyzer failure maps to the
// neutral default rather than an error.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: SentimentNeutral, Score: 0.5}
}

// Industry categories are a fixed enumeration; classification never
// comes back empty, it falls back to IndustryGeneral.
const (
	IndustryLegal     = "legal"
	IndustryMedical   = "medical"
	IndustryFinancial = "financial"
	IndustryTechnical = "technical"
	IndustryGeneral   = "general"
)

// Relationship is a derived, typed pairing of two entities with
// differing labels. Type is "<label1>_to_<label2>".
type Relationship struct {
	Entity1 string `json:"entity1"`
	Entity2 string `json:"entity2"`
	Type    string `json:"type"`
}

// DocumentMetadata is the sole artifact of the analysis pipeline. Every
// field has a defined fallback, so a record is always complete even
// when individual stages degraded.
type DocumentMetadata struct {
	Title                  string          `json:"title"`
	Category               string          `json:"category"`
	Tags                   []string        `json:"tags"`
	CreatedAt              time.Time       `json:"created_at"`
	ModifiedAt             time.Time       `json:"modified_at"`
	FileType               string          `json:"file_type"`
	Size                   int             `json:"size"`
	ExtractedText          string          `json:"extracted_text"`
	Entities               []Entity        `json:"entities"`
	Sentiment              SentimentResult `json:"sentiment"`
	ConfidenceScore        float64         `json:"confidence_score"`
	IndustryClassification []string        `json:"industry_classification"`
	Summary                string          `json:"summary,omitempty"`
	KeyPhrases             []string        `json:"key_phrases"`
	Relationships          []Relationship  `json:"relationships"`
}

// Degradation records a stage that fell back to its default value and
// why, so callers can tell "the model produced this" apart from "the
// stage could not run".
type Degradation struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}
