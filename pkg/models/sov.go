package models

// MentionShare is the share of brand mentions captured by the focal brand
// versus each competitor. One post naming two competitors contributes two
// to the denominator. Shares sum to 1 whenever TotalMentions > 0.
//
// The focal field is serialized as "atomberg" — the wire contract consumed
// by reporting predates the brand set becoming configurable.
type MentionShare struct {
	Focal         float64            `json:"atomberg"`
	Competitors   map[string]float64 `json:"competitors"`
	TotalMentions int                `json:"total_mentions"`
	FocalMentions int                `json:"atomberg_mentions"`
}

// EngagementShare mirrors MentionShare but weights each mention by the
// post's platform-specific engagement scalar. A post mentioning several
// brands credits the full scalar to each of them.
type EngagementShare struct {
	Focal           float64            `json:"atomberg"`
	Competitors     map[string]float64 `json:"competitors"`
	TotalEngagement float64            `json:"total_engagement"`
	FocalEngagement float64            `json:"atomberg_engagement"`
}

// SentimentCounts is a per-brand tally of sentiment labels.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the sum across all labels.
func (c SentimentCounts) Total() int { return c.Positive + c.Negative + c.Neutral }

// SentimentShare captures the focal brand's share of positive-sentiment
// mentions, plus its own sentiment distribution and per-competitor tallies.
type SentimentShare struct {
	Positive               float64                    `json:"positive"`
	FocalDistribution      map[Sentiment]float64      `json:"atomberg_sentiment_distribution"`
	CompetitorDistribution map[string]SentimentCounts `json:"competitor_sentiment_distribution"`
	TotalPositiveMentions  int                        `json:"total_positive_mentions"`
	FocalPositiveMentions  int                        `json:"atomberg_positive_mentions"`
}

// CompetitivePositioning describes where the focal brand sits relative to
// tracked competitors by mean post engagement.
type CompetitivePositioning struct {
	DirectComparisons       int                `json:"direct_comparisons"`
	FocalAvgEngagement      float64            `json:"atomberg_avg_engagement"`
	CompetitorAvgEngagement map[string]float64 `json:"competitor_avg_engagement"`
	MarketPositionRank      int                `json:"market_position_rank"`
}

// SoVMetrics is the final Share-of-Voice metrics object. Every numeric
// field has a defined zero default; an empty corpus produces a fully
// zero-valued (but non-nil) metrics object, never an error.
type SoVMetrics struct {
	OverallSoV             float64                `json:"overall_sov"`
	MentionShare           MentionShare           `json:"mention_share"`
	EngagementShare        EngagementShare        `json:"engagement_share"`
	SentimentShare         SentimentShare         `json:"sentiment_share"`
	PlatformBreakdown      map[Platform]float64   `json:"platform_breakdown"`
	VisibilityScore        float64                `json:"visibility_score"`
	CompetitivePositioning CompetitivePositioning `json:"competitive_positioning"`
	TotalPostsAnalyzed     int                    `json:"total_posts_analyzed"`
	FocalMentions          int                    `json:"atomberg_mentions"`
	CompetitorMentions     int                    `json:"competitor_mentions"`
}

// EmptySoVMetrics returns the documented zero-valued metrics object used
// when the corpus contains no posts.
func EmptySoVMetrics() *SoVMetrics {
	return &SoVMetrics{
		MentionShare:    MentionShare{Competitors: map[string]float64{}},
		EngagementShare: EngagementShare{Competitors: map[string]float64{}},
		SentimentShare: SentimentShare{
			FocalDistribution:      map[Sentiment]float64{},
			CompetitorDistribution: map[string]SentimentCounts{},
		},
		PlatformBreakdown: map[Platform]float64{},
		CompetitivePositioning: CompetitivePositioning{
			CompetitorAvgEngagement: map[string]float64{},
		},
	}
}
