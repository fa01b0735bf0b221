package models

// Sentiment is a coarse sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentResult is the backend-agnostic output of sentiment analysis on
// one text. Sub-scores are normalized to [0,1] and roughly sum to 1, so
// downstream aggregation never needs to know which backend produced them.
type SentimentResult struct {
	Sentiment     Sentiment `json:"sentiment"`
	Confidence    float64   `json:"confidence"`
	PositiveScore float64   `json:"positive_score"`
	NegativeScore float64   `json:"negative_score"`
	NeutralScore  float64   `json:"neutral_score"`
	Analyzer      string    `json:"analyzer"`
}

// NeutralSentiment returns the result assigned to empty or unscorable
// text: neutral label, zero confidence, all mass on the neutral sub-score.
func NeutralSentiment(analyzer string) SentimentResult {
	return SentimentResult{
		Sentiment:    SentimentNeutral,
		NeutralScore: 1.0,
		Analyzer:     analyzer,
	}
}

// SentimentMap keys per-post sentiment results by post ID. A missing entry
// is read as neutral with zero confidence.
type SentimentMap map[string]SentimentResult

// Get returns the result for a post ID, defaulting to neutral when absent.
func (m SentimentMap) Get(id string) SentimentResult {
	if r, ok := m[id]; ok {
		return r
	}
	return NeutralSentiment("none")
}

// SentimentSummary holds corpus-level distribution statistics.
type SentimentSummary struct {
	TotalAnalyzed     int                   `json:"total_analyzed"`
	Distribution      map[Sentiment]float64 `json:"sentiment_distribution"`
	Counts            map[Sentiment]int     `json:"sentiment_counts"`
	AverageConfidence float64               `json:"average_confidence"`
	DominantSentiment Sentiment             `json:"dominant_sentiment"`
}
