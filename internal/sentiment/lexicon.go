package sentiment

import (
	"strings"

	"github.com/sovlens/sovlens/pkg/models"
)

// Lexicon is the deterministic word-list backend. It counts positive and
// negative lexicon hits with a short negation window: a sentiment word
// in negation context scores for the opposite polarity.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
	negation map[string]struct{}
}

// NewLexicon builds the backend from word lists.
func NewLexicon(positive, negative, negation []string) *Lexicon {
	return &Lexicon{
		positive: toSet(positive),
		negative: toSet(negative),
		negation: toSet(negation),
	}
}

func (l *Lexicon) Name() string { return "lexicon" }

// Available always reports true; the lexicon is the last-resort backend.
func (l *Lexicon) Available() bool { return true }

// Analyze scores a text by lexicon hits. Tokens are lowercased and
// stripped of edge punctuation before lookup, so "quiet," still counts.
func (l *Lexicon) Analyze(text string) (models.SentimentResult, error) {
	raw := strings.Fields(strings.ToLower(text))
	words := make([]string, len(raw))
	for i, w := range raw {
		words[i] = strings.Trim(w, ".,!?;:-")
	}

	positive, negative := 0, 0
	negated := false

	for i, word := range words {
		if _, neg := l.negation[word]; neg {
			negated = true
			continue
		}

		// The negation window closes a few words past the trigger.
		if i > 2 {
			if _, prevNeg := l.negation[words[i-1]]; !prevNeg {
				negated = false
			}
		}

		if _, ok := l.positive[word]; ok {
			if negated {
				negative++
			} else {
				positive++
			}
		} else if _, ok := l.negative[word]; ok {
			if negated {
				positive++
			} else {
				negative++
			}
		}
	}

	total := positive + negative
	res := models.SentimentResult{Analyzer: l.Name()}

	switch {
	case total == 0:
		res.Sentiment = models.SentimentNeutral
	case positive > negative:
		res.Sentiment = models.SentimentPositive
		res.Confidence = float64(positive) / float64(total)
	case negative > positive:
		res.Sentiment = models.SentimentNegative
		res.Confidence = float64(negative) / float64(total)
	default:
		res.Sentiment = models.SentimentNeutral
		res.Confidence = 0.5
	}

	div := total
	if div < 1 {
		div = 1
	}
	res.PositiveScore = float64(positive) / float64(div)
	res.NegativeScore = float64(negative) / float64(div)

	wordDiv := len(words)
	if wordDiv < 1 {
		wordDiv = 1
	}
	res.NeutralScore = 1 - float64(total)/float64(wordDiv)

	return res, nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
