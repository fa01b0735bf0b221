package collect

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sovlens/sovlens/pkg/models"
)

// Mock caps per platform, mirroring what a typical live search returns.
const (
	maxMockVideos   = 20
	maxMockTweets   = 30
	maxMockResults  = 25
	mockIDNamespace = "sovlens/mock"
)

var mockBaseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var tweetTemplates = []string{
	"Just installed my new smart fan from %s and the app control is amazing! #smartfan #smarthome",
	"Comparing smart ceiling fans, %s vs %s. Which one should I choose? #help",
	"My %s smart fan broke after 6 months. Looking for better alternatives #smartfan",
	"Review: %s Smart Fan, 5 stars! Energy efficient and whisper quiet operation",
	"Smart home setup complete! %s fan integrated with Alexa perfectly #smarthome #IoT",
	"Disappointed with %s customer service. Fan making noise after 3 months",
	"Best smart fan deals this month? Looking at %s and %s models",
	"Time to upgrade to a %s smart fan with IoT controls before summer",
	"Energy bill reduced by 30%% after switching to %s smart fans! Highly recommend",
	"Installation review: %s smart fan, easy setup and a great app interface #review",
}

// Mock generates deterministic sample posts for demos and for platforms
// whose live source is unreachable. The same focal brand, competitor
// list, and keyword always produce the same posts.
type Mock struct {
	focal       string
	competitors []string
}

// NewMock creates a sample-data generator. Focal is the display name
// embedded in generated text.
func NewMock(focal string, competitors []string) *Mock {
	if len(competitors) == 0 {
		competitors = []string{"Havells", "Orient", "Bajaj", "Crompton", "Usha"}
	}
	return &Mock{focal: titleCase(focal), competitors: competitors}
}

// Generate returns sample posts for the platform and keyword.
func (m *Mock) Generate(platform models.Platform, keyword string, maxResults int) []models.Post {
	switch platform {
	case models.PlatformVideo:
		return m.videos(keyword, maxResults)
	case models.PlatformMicroblog:
		return m.tweets(keyword, maxResults)
	case models.PlatformSearch:
		return m.searchResults(keyword, maxResults)
	}
	return nil
}

func (m *Mock) videos(keyword string, maxResults int) []models.Post {
	n := clampMock(maxResults, maxMockVideos)

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		brands := []string{m.competitors[i%len(m.competitors)]}
		if i%3 == 0 {
			brands = append([]string{m.focal}, brands...)
		}

		post := models.Post{
			ID:          m.id(models.PlatformVideo, keyword, i),
			Platform:    models.PlatformVideo,
			Title:       fmt.Sprintf("Smart Fan Review %d - Best Ceiling Fans 2024", i+1),
			Description: fmt.Sprintf("Comprehensive review of %s smart ceiling fans covering features, performance, and value for money.", strings.Join(brands, " and ")),
			Author:      fmt.Sprintf("TechReviewer%d", i+1),
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=sample_%d", i),
			PublishedAt: mockBaseTime.Add(time.Duration(i) * time.Hour),
			Video: &models.VideoStats{
				Views:    int64(5000 + i*1000),
				Likes:    int64(100 + i*20),
				Comments: int64(25 + i*5),
				Channel:  fmt.Sprintf("TechReviewer%d", i+1),
			},
		}
		posts = append(posts, post)
	}
	return posts
}

func (m *Mock) tweets(keyword string, maxResults int) []models.Post {
	n := clampMock(maxResults, maxMockTweets)
	hashtags := []string{"#smartfan", "#smarthome", "#IoT", "#ceilingfan", "#hometech"}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		var brands []string
		if i%4 == 0 {
			brands = append(brands, m.focal)
		}
		if i%3 == 0 {
			brands = append(brands, m.competitors[i%len(m.competitors)])
		}
		if len(brands) == 0 {
			brands = append(brands, m.competitors[(i+1)%len(m.competitors)])
		}

		text := fillTemplate(tweetTemplates[i%len(tweetTemplates)], brands)
		text += " " + hashtags[i%len(hashtags)]

		post := models.Post{
			ID:          m.id(models.PlatformMicroblog, keyword, i),
			Platform:    models.PlatformMicroblog,
			Text:        text,
			Author:      fmt.Sprintf("user_%d", i+1),
			URL:         fmt.Sprintf("https://twitter.com/user_%d/status/sample_%d", i+1, i),
			PublishedAt: mockBaseTime.Add(time.Duration(i) * time.Hour),
			Microblog: &models.MicroblogStats{
				Retweets:        int64(5 + i%20),
				Likes:           int64(15 + i%50),
				Replies:         int64(2 + i%10),
				Quotes:          int64(1 + i%5),
				AuthorFollowers: int64(500 + i*100),
			},
		}
		posts = append(posts, post)
	}
	return posts
}

func (m *Mock) searchResults(keyword string, maxResults int) []models.Post {
	n := clampMock(maxResults, maxMockResults)

	type entry struct {
		title  string
		domain string
		desc   string
		eshop  bool
		news   bool
		video  bool
	}
	entries := []entry{
		{
			title:  "Best Smart Ceiling Fans in India 2024 - Complete Buying Guide",
			domain: "techreviews.com",
			desc:   "Comprehensive review of top smart ceiling fans including %s. Compare features, prices, and performance.",
		},
		{
			title:  "%s Smart Fan Review: IoT Enabled Ceiling Fan with App Control",
			domain: "gadgets360.com",
			desc:   "Detailed review of the %s smart ceiling fan with remote control, energy efficiency, and smart home integration.",
			news:   true,
		},
		{
			title:  "Smart Ceiling Fans - Online Store",
			domain: "amazon.in",
			desc:   "Buy smart ceiling fans online from top brands like %s. Free delivery and easy returns.",
			eshop:  true,
		},
		{
			title:  "%s Smart Fan Comparison - Video",
			domain: "youtube.com",
			desc:   "Side by side comparison of %s smart fans covering noise, airflow, and app experience.",
			video:  true,
		},
		{
			title:  "Smart Fan Buying Guide: BLDC Motors Explained",
			domain: "energytimes.in",
			desc:   "How BLDC fans from %s cut energy costs, and what to look for before buying.",
			news:   true,
		},
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		e := entries[i%len(entries)]

		brands := []string{m.competitors[i%len(m.competitors)]}
		if i%2 == 0 {
			brands = append([]string{m.focal}, brands...)
		}
		brandText := strings.Join(brands, ", ")

		title := e.title
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, brands[0])
		}
		desc := e.desc
		if strings.Contains(desc, "%s") {
			desc = strings.ReplaceAll(desc, "%s", brandText)
		}

		post := models.Post{
			ID:          m.id(models.PlatformSearch, keyword, i),
			Platform:    models.PlatformSearch,
			Title:       title,
			Description: desc,
			URL:         fmt.Sprintf("https://%s/sample/%d", e.domain, i),
			PublishedAt: mockBaseTime.Add(time.Duration(i) * time.Hour),
			Search: &models.SearchStats{
				Position:    i + 1,
				Page:        i/resultsPerPage + 1,
				Domain:      e.domain,
				IsVideo:     e.video,
				IsEcommerce: e.eshop,
				IsNews:      e.news,
			},
		}
		posts = append(posts, post)
	}
	return posts
}

// id derives a stable UUID from the platform, keyword, and index.
func (m *Mock) id(platform models.Platform, keyword string, i int) string {
	seed := fmt.Sprintf("%s/%s/%s/%d", mockIDNamespace, platform, keyword, i)
	return "mock_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// fillTemplate substitutes brand names into a tweet template, padding
// with a generic brand when the template wants more slots than given.
func fillTemplate(tmpl string, brands []string) string {
	slots := strings.Count(tmpl, "%s")
	args := make([]any, slots)
	for i := 0; i < slots; i++ {
		if i < len(brands) {
			args[i] = brands[i]
		} else {
			args[i] = "SomeBrand"
		}
	}
	return fmt.Sprintf(tmpl, args...)
}

func clampMock(requested, limit int) int {
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
