// Package sov aggregates a normalized, sentiment-scored corpus into the
// final Share-of-Voice metrics object.
package sov

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/internal/engagement"
	"github.com/sovlens/sovlens/pkg/models"
)

// Calculator computes SoV metrics for the configured focal brand against
// its tracked competitors. The calculation is pure: the same corpus and
// sentiment map always produce the same metrics.
type Calculator struct {
	competitors []string
	weights     config.SoVWeights
	log         zerolog.Logger
}

// New builds a Calculator from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Calculator {
	return &Calculator{
		competitors: cfg.Brands.Competitors,
		weights:     cfg.Analysis.Weights,
		log:         log.With().Str("component", "sov").Logger(),
	}
}

// Calculate computes the full metrics object. An empty corpus yields the
// zero-valued metrics object, never an error.
func (c *Calculator) Calculate(corpus models.Corpus, sentiments models.SentimentMap) *models.SoVMetrics {
	posts := corpus.Flatten()
	if len(posts) == 0 {
		c.log.Warn().Msg("no posts found for SoV calculation")
		return models.EmptySoVMetrics()
	}

	m := &models.SoVMetrics{
		MentionShare:           c.mentionShare(posts),
		EngagementShare:        c.engagementShare(posts),
		SentimentShare:         c.sentimentShare(posts, sentiments),
		PlatformBreakdown:      c.platformBreakdown(corpus),
		VisibilityScore:        c.visibilityScore(posts),
		CompetitivePositioning: c.competitivePositioning(posts),
		TotalPostsAnalyzed:     len(posts),
	}

	for _, p := range posts {
		if p.MentionsFocal {
			m.FocalMentions++
		}
		m.CompetitorMentions += len(p.MentionsCompetitors)
	}

	m.OverallSoV = c.weights.Mention*m.MentionShare.Focal +
		c.weights.Engagement*m.EngagementShare.Focal +
		c.weights.Sentiment*m.SentimentShare.Positive

	c.log.Info().
		Float64("overall_sov", m.OverallSoV).
		Int("posts", len(posts)).
		Msg("SoV calculation complete")
	return m
}

// mentionShare apportions raw mention counts. A post naming the focal
// brand and two competitors contributes three mentions.
func (c *Calculator) mentionShare(posts []models.Post) models.MentionShare {
	share := models.MentionShare{Competitors: map[string]float64{}}

	counts := map[string]int{}
	for _, p := range posts {
		if p.MentionsFocal {
			share.FocalMentions++
		}
		for _, comp := range p.MentionsCompetitors {
			counts[comp]++
		}
	}

	share.TotalMentions = share.FocalMentions
	for _, n := range counts {
		share.TotalMentions += n
	}
	if share.TotalMentions == 0 {
		return share
	}

	share.Focal = float64(share.FocalMentions) / float64(share.TotalMentions)
	for comp, n := range counts {
		share.Competitors[comp] = float64(n) / float64(share.TotalMentions)
	}
	return share
}

// engagementShare weights each mention by the post's engagement scalar.
// A multi-brand post credits the full scalar to every mentioned brand.
func (c *Calculator) engagementShare(posts []models.Post) models.EngagementShare {
	share := models.EngagementShare{Competitors: map[string]float64{}}

	sums := map[string]float64{}
	for _, p := range posts {
		eng := engagement.Scalar(p)
		if p.MentionsFocal {
			share.FocalEngagement += eng
		}
		for _, comp := range p.MentionsCompetitors {
			sums[comp] += eng
		}
	}

	share.TotalEngagement = share.FocalEngagement
	for _, s := range sums {
		share.TotalEngagement += s
	}
	if share.TotalEngagement == 0 {
		return share
	}

	share.Focal = share.FocalEngagement / share.TotalEngagement
	for comp, s := range sums {
		share.Competitors[comp] = s / share.TotalEngagement
	}
	return share
}

// sentimentShare computes the focal brand's share of positive-sentiment
// mentions plus per-brand sentiment distributions. A post without a
// sentiment entry counts as neutral.
func (c *Calculator) sentimentShare(posts []models.Post, sentiments models.SentimentMap) models.SentimentShare {
	share := models.SentimentShare{
		FocalDistribution:      map[models.Sentiment]float64{},
		CompetitorDistribution: map[string]models.SentimentCounts{},
	}

	var focal models.SentimentCounts
	for _, p := range posts {
		label := sentiments.Get(p.ID).Sentiment

		if p.MentionsFocal {
			bump(&focal, label)
		}
		for _, comp := range p.MentionsCompetitors {
			counts := share.CompetitorDistribution[comp]
			bump(&counts, label)
			share.CompetitorDistribution[comp] = counts
		}
	}

	share.FocalPositiveMentions = focal.Positive
	share.TotalPositiveMentions = focal.Positive
	for _, counts := range share.CompetitorDistribution {
		share.TotalPositiveMentions += counts.Positive
	}
	if share.TotalPositiveMentions > 0 {
		share.Positive = float64(focal.Positive) / float64(share.TotalPositiveMentions)
	}

	if total := focal.Total(); total > 0 {
		share.FocalDistribution[models.SentimentPositive] = float64(focal.Positive) / float64(total)
		share.FocalDistribution[models.SentimentNegative] = float64(focal.Negative) / float64(total)
		share.FocalDistribution[models.SentimentNeutral] = float64(focal.Neutral) / float64(total)
	}
	return share
}

// platformBreakdown reports the focal brand's mention share per platform.
// Keywords are walked in sorted order and each keyword's bucket replaces
// the platform entry, so the alphabetically last keyword that carries a
// platform defines its share.
func (c *Calculator) platformBreakdown(corpus models.Corpus) map[models.Platform]float64 {
	breakdown := map[models.Platform]float64{}

	for _, posts := range flattenSorted(corpus) {
		platform := posts.platform
		if len(posts.posts) == 0 {
			breakdown[platform] = 0
			continue
		}

		focalMentions := 0
		totalMentions := 0
		for _, p := range posts.posts {
			if p.MentionsFocal {
				focalMentions++
			}
			totalMentions += len(p.MentionsCompetitors)
		}
		totalMentions += focalMentions

		if totalMentions > 0 {
			breakdown[platform] = float64(focalMentions) / float64(totalMentions)
		} else {
			breakdown[platform] = 0
		}
	}
	return breakdown
}

// visibilityScore is the focal brand's share of total corpus visibility.
func (c *Calculator) visibilityScore(posts []models.Post) float64 {
	focal, total := 0.0, 0.0
	for _, p := range posts {
		vis := engagement.Visibility(p)
		total += vis
		if p.MentionsFocal {
			focal += vis
		}
	}
	if total == 0 {
		return 0
	}
	return focal / total
}

// competitivePositioning compares mean per-post engagement between the
// focal brand and each competitor that appears in the corpus. Rank 1
// means no competitor mean exceeds the focal mean.
func (c *Calculator) competitivePositioning(posts []models.Post) models.CompetitivePositioning {
	pos := models.CompetitivePositioning{CompetitorAvgEngagement: map[string]float64{}}

	var focalSum float64
	var focalN int
	for _, p := range posts {
		if p.MentionsFocal {
			focalSum += engagement.Scalar(p)
			focalN++
			if len(p.MentionsCompetitors) > 0 {
				pos.DirectComparisons++
			}
		}
	}
	if focalN > 0 {
		pos.FocalAvgEngagement = focalSum / float64(focalN)
	}

	for _, comp := range c.competitors {
		var sum float64
		var n int
		for _, p := range posts {
			for _, name := range p.MentionsCompetitors {
				if name == comp {
					sum += engagement.Scalar(p)
					n++
					break
				}
			}
		}
		if n > 0 {
			pos.CompetitorAvgEngagement[comp] = sum / float64(n)
		}
	}

	pos.MarketPositionRank = 1
	for _, avg := range pos.CompetitorAvgEngagement {
		if avg > pos.FocalAvgEngagement {
			pos.MarketPositionRank++
		}
	}
	return pos
}

func bump(c *models.SentimentCounts, label models.Sentiment) {
	switch label {
	case models.SentimentPositive:
		c.Positive++
	case models.SentimentNegative:
		c.Negative++
	default:
		c.Neutral++
	}
}

type platformBucket struct {
	platform models.Platform
	posts    []models.Post
}

// flattenSorted walks the corpus buckets keyword-by-keyword in sorted
// order, platforms sorted within each keyword.
func flattenSorted(corpus models.Corpus) []platformBucket {
	var out []platformBucket
	keywords := make([]string, 0, len(corpus))
	for kw := range corpus {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		platforms := make([]string, 0, len(corpus[kw]))
		for pf := range corpus[kw] {
			platforms = append(platforms, string(pf))
		}
		sort.Strings(platforms)
		for _, pf := range platforms {
			out = append(out, platformBucket{
				platform: models.Platform(pf),
				posts:    corpus[kw][models.Platform(pf)],
			})
		}
	}
	return out
}
