package pipeline

import (
	"fmt"
	"sort"

	"github.com/sovlens/sovlens/pkg/models"
)

// Share-of-voice thresholds for the finding rules.
const (
	lowSoVThreshold    = 0.1
	strongSoVThreshold = 0.3

	positiveSentimentThreshold = 0.7
	negativeSentimentThreshold = 0.4
)

// Insights are the threshold-based findings and recommendations derived
// from the final metrics.
type Insights struct {
	KeyFindings              []string `json:"key_findings"`
	ContentRecommendations   []string `json:"content_recommendations"`
	MarketingRecommendations []string `json:"marketing_recommendations"`
}

// GenerateInsights derives findings and recommendations from the metrics.
// Brand is the focal brand's display name used in the generated text.
func GenerateInsights(m *models.SoVMetrics, brand string) Insights {
	var ins Insights

	switch {
	case m.OverallSoV < lowSoVThreshold:
		ins.KeyFindings = append(ins.KeyFindings,
			fmt.Sprintf("Low Share of Voice: %s has limited visibility in smart fan conversations", brand))
		ins.MarketingRecommendations = append(ins.MarketingRecommendations,
			"Increase content marketing efforts focused on smart fan features",
			"Engage with smart home and IoT communities",
			"Collaborate with tech influencers and reviewers")
	case m.OverallSoV > strongSoVThreshold:
		ins.KeyFindings = append(ins.KeyFindings,
			fmt.Sprintf("Strong Share of Voice: %s has significant presence in smart fan discussions", brand))
		ins.MarketingRecommendations = append(ins.MarketingRecommendations,
			"Maintain current content strategy and expand to related keywords")
	}

	switch {
	case m.SentimentShare.Positive > positiveSentimentThreshold:
		ins.KeyFindings = append(ins.KeyFindings,
			fmt.Sprintf("Positive brand sentiment: Most %s mentions are positive", brand))
	case m.SentimentShare.Positive < negativeSentimentThreshold:
		ins.KeyFindings = append(ins.KeyFindings,
			"Negative sentiment concerns: Address customer pain points")
		ins.ContentRecommendations = append(ins.ContentRecommendations,
			"Create content addressing common customer concerns",
			"Showcase customer success stories and testimonials")
	}

	if platform, share, ok := bestPlatform(m.PlatformBreakdown); ok {
		ins.KeyFindings = append(ins.KeyFindings,
			fmt.Sprintf("Best performing platform: %s (%.2f%% SoV)", platform, share*100))
		ins.MarketingRecommendations = append(ins.MarketingRecommendations,
			fmt.Sprintf("Invest more resources in %s content and engagement", platform))
	}

	return ins
}

// bestPlatform picks the platform with the highest share. Platforms are
// walked in sorted order so ties resolve deterministically.
func bestPlatform(breakdown map[models.Platform]float64) (models.Platform, float64, bool) {
	if len(breakdown) == 0 {
		return "", 0, false
	}

	platforms := make([]models.Platform, 0, len(breakdown))
	for p := range breakdown {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })

	best := platforms[0]
	for _, p := range platforms[1:] {
		if breakdown[p] > breakdown[best] {
			best = p
		}
	}
	return best, breakdown[best], true
}
