package engagement

import "github.com/sovlens/sovlens/pkg/models"

// Scalar returns the raw engagement weight of a post, used to apportion
// engagement share between brands. Unlike the standardized rate it is
// not normalized; a viral video legitimately outweighs a tweet. Missing
// stats read as zero, matching a post whose counters never loaded.
func Scalar(p models.Post) float64 {
	switch p.Platform {
	case models.PlatformVideo:
		v := p.Video
		if v == nil {
			v = &models.VideoStats{}
		}
		return float64(v.Views)*0.1 + float64(v.Likes)*1.0 + float64(v.Comments)*2.0

	case models.PlatformMicroblog:
		m := p.Microblog
		if m == nil {
			m = &models.MicroblogStats{}
		}
		return float64(m.Retweets)*3.0 + float64(m.Likes)*1.0 +
			float64(m.Replies)*2.0 + float64(m.Quotes)*2.5

	case models.PlatformSearch:
		position := defaultPosition
		if p.Search != nil {
			position = p.Search.Position
		}
		weight := 11 - position
		if weight < 1 {
			weight = 1
		}
		return float64(weight) * 10
	}

	return 1.0
}

// Visibility returns the visibility weight of a post. Video visibility
// is view-driven, microblog visibility is follower-driven, and search
// visibility decays quadratically with position and linearly with page.
func Visibility(p models.Post) float64 {
	eng := Scalar(p)

	switch p.Platform {
	case models.PlatformVideo:
		var views int64
		if p.Video != nil {
			views = p.Video.Views
		}
		return float64(views)*0.01 + eng*0.1

	case models.PlatformMicroblog:
		var followers int64
		if p.Microblog != nil {
			followers = p.Microblog.AuthorFollowers
		}
		return float64(followers)*0.001 + eng*0.1

	case models.PlatformSearch:
		position, page := defaultPosition, defaultPage
		if p.Search != nil {
			position, page = p.Search.Position, p.Search.Page
		}
		if page < 1 {
			page = 1
		}
		d := float64(11 - position)
		return d * d / float64(page)
	}

	return eng
}
