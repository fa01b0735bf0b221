// Package engagement derives cross-platform engagement figures from raw
// per-platform statistics. It produces three distinct views of a post:
// the standardized triple stored on the post itself, a raw engagement
// scalar used to weight share metrics, and a visibility scalar used for
// the visibility score.
package engagement

import "github.com/sovlens/sovlens/pkg/models"

// Fallback search placement when a result carries no stats.
const (
	defaultPosition = 10
	defaultPage     = 1
)

// Standardize computes the platform-comparable engagement triple for a
// post: total engagement, engagement rate, and reach estimate.
//
// Video counts likes and comments against views. Microblog counts all
// four interaction types against the author's followers, with reach
// floored at ten interactions' worth. Search has no real interaction
// data, so clicks are estimated from the result's position and page.
func Standardize(p models.Post) models.EngagementStandard {
	var std models.EngagementStandard

	switch p.Platform {
	case models.PlatformVideo:
		if p.Video == nil {
			return std
		}
		std.TotalEngagement = float64(p.Video.Likes + p.Video.Comments)
		std.ReachEstimate = float64(p.Video.Views)
		if p.Video.Views > 0 {
			std.EngagementRate = std.TotalEngagement / float64(p.Video.Views)
		}

	case models.PlatformMicroblog:
		if p.Microblog == nil {
			return std
		}
		m := p.Microblog
		std.TotalEngagement = float64(m.Retweets + m.Likes + m.Replies + m.Quotes)
		std.ReachEstimate = float64(m.AuthorFollowers)
		if r := std.TotalEngagement * 10; r > std.ReachEstimate {
			std.ReachEstimate = r
		}
		if m.AuthorFollowers > 0 {
			std.EngagementRate = std.TotalEngagement / float64(m.AuthorFollowers)
		}

	case models.PlatformSearch:
		position, page := defaultPosition, defaultPage
		if p.Search != nil {
			position, page = p.Search.Position, p.Search.Page
		}
		clicks := 100 - position*5 - page*20
		if clicks < 1 {
			clicks = 1
		}
		std.TotalEngagement = float64(clicks)
		std.ReachEstimate = float64(clicks * 10)
		std.EngagementRate = float64(clicks) / 1000
		if std.EngagementRate > 0.1 {
			std.EngagementRate = 0.1
		}
	}

	return std
}
