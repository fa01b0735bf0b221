package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sovlens/sovlens/internal/pipeline"
	"github.com/sovlens/sovlens/pkg/models"
)

// RenderText renders the human-readable summary of a run.
func RenderText(result *pipeline.Result) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	meta := result.Metadata
	m := result.Metrics
	if m == nil {
		m = models.EmptySoVMetrics()
	}

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  SHARE OF VOICE ANALYSIS\n")
	sb.WriteString(fmt.Sprintf("  Generated: %s | Run: %s\n",
		meta.AnalysisDate.Format("02 Jan 2006, 15:04 MST"), meta.RunID))
	sb.WriteString(line + "\n\n")

	sb.WriteString(fmt.Sprintf("  Keywords: %s\n", strings.Join(meta.Keywords, ", ")))
	sb.WriteString(fmt.Sprintf("  Platforms: %s\n", strings.Join(meta.Platforms, ", ")))
	sb.WriteString(fmt.Sprintf("  Posts analyzed: %d\n", meta.TotalPosts))
	sb.WriteString(thinLine + "\n")

	sb.WriteString("\n  ■ METRICS\n")
	sb.WriteString(fmt.Sprintf("  Overall SoV: %.2f%%\n", m.OverallSoV*100))
	sb.WriteString(fmt.Sprintf("  Mention share: %.2f%% (%d of %d mentions)\n",
		m.MentionShare.Focal*100, m.MentionShare.FocalMentions, m.MentionShare.TotalMentions))
	sb.WriteString(fmt.Sprintf("  Engagement share: %.2f%%\n", m.EngagementShare.Focal*100))
	sb.WriteString(fmt.Sprintf("  Positive sentiment share: %.2f%%\n", m.SentimentShare.Positive*100))
	sb.WriteString(fmt.Sprintf("  Visibility score: %.2f%%\n", m.VisibilityScore*100))
	sb.WriteString(thinLine + "\n")

	if len(m.PlatformBreakdown) > 0 {
		sb.WriteString("\n  ■ PLATFORM BREAKDOWN\n")
		for _, platform := range sortedPlatforms(m.PlatformBreakdown) {
			sb.WriteString(fmt.Sprintf("    %-12s %.2f%%\n", platform, m.PlatformBreakdown[platform]*100))
		}
		sb.WriteString(thinLine + "\n")
	}

	pos := m.CompetitivePositioning
	sb.WriteString("\n  ■ COMPETITIVE POSITION\n")
	sb.WriteString(fmt.Sprintf("  Market rank: #%d | Direct comparisons: %d\n",
		pos.MarketPositionRank, pos.DirectComparisons))
	sb.WriteString(fmt.Sprintf("  Avg engagement: %.1f\n", pos.FocalAvgEngagement))
	for _, name := range sortedNames(pos.CompetitorAvgEngagement) {
		sb.WriteString(fmt.Sprintf("    %-12s %.1f\n", name, pos.CompetitorAvgEngagement[name]))
	}
	sb.WriteString(thinLine + "\n")

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n  ■ %s\n", title))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeList("KEY FINDINGS", result.Insights.KeyFindings)
	writeList("CONTENT RECOMMENDATIONS", result.Insights.ContentRecommendations)
	writeList("MARKETING RECOMMENDATIONS", result.Insights.MarketingRecommendations)

	sb.WriteString("\n" + line + "\n")
	return sb.String()
}

func sortedNames(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
