package sentiment

import (
	"math"
	"strings"

	"github.com/sovlens/sovlens/pkg/models"
)

// ------------------------------------------------------------------
// Weighted phrase-based sentiment rules (offline, deterministic).
// Ranked ahead of the plain lexicon by default: weighted phrases
// separate "works perfectly" from a bare "works".
// ------------------------------------------------------------------

// positive / negative phrase dictionaries (lowercase).
var positivePhrases = map[string]float64{
	"excellent": 0.8, "amazing": 0.8, "outstanding": 0.8, "fantastic": 0.7,
	"highly recommend": 0.8, "must buy": 0.7, "worth every": 0.7,
	"love it": 0.7, "love this": 0.7, "great": 0.5, "awesome": 0.6,
	"super quiet": 0.7, "very quiet": 0.6, "silent": 0.5, "smooth": 0.4,
	"energy saving": 0.5, "saves power": 0.5, "value for money": 0.7,
	"works perfectly": 0.7, "easy to install": 0.6, "good quality": 0.6,
	"best fan": 0.7, "impressed": 0.6, "reliable": 0.5, "satisfied": 0.5,
	"premium": 0.4, "stylish": 0.4, "sleek": 0.4,
}

var negativePhrases = map[string]float64{
	"terrible": 0.8, "horrible": 0.8, "worst": 0.8, "awful": 0.8,
	"waste of money": 0.8, "do not buy": 0.8, "stopped working": 0.7,
	"broke down": 0.7, "very noisy": 0.7, "too loud": 0.6, "noisy": 0.5,
	"disappointed": 0.6, "disappointing": 0.6, "poor quality": 0.7,
	"bad experience": 0.6, "defective": 0.7, "useless": 0.7,
	"overpriced": 0.6, "too expensive": 0.5, "not worth": 0.7,
	"customer service issue": 0.5, "no response": 0.4, "slow delivery": 0.3,
	"wobbles": 0.5, "vibrates": 0.4, "heating issue": 0.6,
}

// Rules is the weighted phrase-matching backend.
type Rules struct{}

// NewRules builds the rules backend.
func NewRules() *Rules { return &Rules{} }

func (r *Rules) Name() string { return "rules" }

// Available always reports true; the dictionaries are compiled in.
func (r *Rules) Available() bool { return true }

// Analyze scores a text by weighted phrase matches. Polarity is the net
// weight normalized to -1..+1; confidence grows with the match count.
func (r *Rules) Analyze(text string) (models.SentimentResult, error) {
	lower := strings.ToLower(text)

	posWeight := 0.0
	negWeight := 0.0
	matches := 0

	for phrase, weight := range positivePhrases {
		if strings.Contains(lower, phrase) {
			posWeight += weight
			matches++
		}
	}
	for phrase, weight := range negativePhrases {
		if strings.Contains(lower, phrase) {
			negWeight += weight
			matches++
		}
	}

	res := models.SentimentResult{Analyzer: r.Name()}

	total := posWeight + negWeight
	if matches == 0 || total == 0 {
		res.Sentiment = models.SentimentNeutral
		res.NeutralScore = 1.0
		return res, nil
	}

	polarity := (posWeight - negWeight) / total

	switch {
	case polarity > 0.1:
		res.Sentiment = models.SentimentPositive
	case polarity < -0.1:
		res.Sentiment = models.SentimentNegative
	default:
		res.Sentiment = models.SentimentNeutral
	}

	res.Confidence = math.Min(float64(matches)*0.15+0.2, 0.85)
	res.PositiveScore = math.Max(polarity, 0)
	res.NegativeScore = math.Abs(math.Min(polarity, 0))
	res.NeutralScore = 1 - math.Abs(polarity)

	return res, nil
}
