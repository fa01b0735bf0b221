package engagement

import "github.com/sovlens/sovlens/pkg/models"

// QualityScore rates a post's content quality in [0,1] as the mean of
// its applicable factors. A factor that does not apply (no words, no
// engagement, no keywords) is excluded from the mean rather than
// counted as zero; the theme factor always applies.
//
// Expects the post to be normalized and standardized: WordCount,
// Themes, Keywords, and Engagement must already be filled.
func QualityScore(p models.Post, relevantThemes []string) float64 {
	score := 0.0
	factors := 0

	// Content length: 50-200 words is the sweet spot.
	if wc := p.WordCount; wc > 0 {
		switch {
		case wc >= 50 && wc <= 200:
			score += 1.0
		case (wc >= 20 && wc < 50) || (wc > 200 && wc <= 300):
			score += 0.7
		case wc > 10:
			score += 0.3
		}
		factors++
	}

	if rate := p.Engagement.EngagementRate; rate > 0 {
		if rate > 0.1 {
			rate = 0.1
		}
		score += rate / 0.1
		factors++
	}

	// Theme relevance always counts, even at zero.
	if len(relevantThemes) > 0 {
		hits := 0
		for _, t := range p.Themes {
			for _, rt := range relevantThemes {
				if t == rt {
					hits++
					break
				}
			}
		}
		score += float64(hits) / float64(len(relevantThemes))
		factors++
	}

	if n := len(p.Keywords); n > 0 {
		kw := float64(n) / 10
		if kw > 1.0 {
			kw = 1.0
		}
		score += kw
		factors++
	}

	// Search results additionally score their ranking authority.
	if p.Platform == models.PlatformSearch {
		position := defaultPosition
		if p.Search != nil {
			position = p.Search.Position
		}
		switch {
		case position <= 3:
			score += 1.0
		case position <= 10:
			score += 0.7
		default:
			score += 0.3
		}
		factors++
	}

	if factors == 0 {
		return 0
	}
	return score / float64(factors)
}
