package collect

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/pkg/models"
)

func TestParseVideoResults(t *testing.T) {
	page := `{"contents":[` +
		`{"videoRenderer":{"videoId":"abc123","thumbnail":{},` +
		`"title":{"runs":[{"text":"Atomberg Renesa Review \"2024\""}]},` +
		`"longBylineText":{"runs":[{"text":"FanReviews"}]},` +
		`"viewCountText":{"simpleText":"1,234,567 views"}}},` +
		`{"videoRenderer":{"videoId":"def456",` +
		`"title":{"runs":[{"text":"Havells vs Orient"}]},` +
		`"viewCountText":{"simpleText":"890 views"}}},` +
		`{"videoRenderer":{"videoId":"notitle1"}}` +
		`]}`

	posts := parseVideoResults(page, 10)
	if len(posts) != 2 {
		t.Fatalf("parsed %d posts, want 2 (untitled entries dropped)", len(posts))
	}

	first := posts[0]
	if first.ID != "yt_abc123" {
		t.Errorf("ID = %q, want yt_abc123", first.ID)
	}
	if first.Title != `Atomberg Renesa Review "2024"` {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Video.Views != 1234567 {
		t.Errorf("Views = %d, want 1234567", first.Video.Views)
	}
	if first.Video.Channel != "FanReviews" || first.Author != "FanReviews" {
		t.Errorf("Channel = %q, Author = %q, want FanReviews", first.Video.Channel, first.Author)
	}
	if first.Platform != models.PlatformVideo {
		t.Errorf("Platform = %s, want video", first.Platform)
	}

	if posts[1].Video.Views != 890 {
		t.Errorf("second Views = %d, want 890", posts[1].Video.Views)
	}

	if got := parseVideoResults(page, 1); len(got) != 1 {
		t.Errorf("maxResults=1 returned %d posts", len(got))
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,234,567", 1234567},
		{"890", 890},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewSearchPostClassification(t *testing.T) {
	tests := []struct {
		name       string
		link       string
		wantDomain string
		wantVideo  bool
		wantSocial bool
		wantEcomm  bool
		wantNews   bool
	}{
		{
			name:       "ecommerce",
			link:       "https://www.amazon.in/smart-fans",
			wantDomain: "amazon.in",
			wantEcomm:  true,
		},
		{
			name:       "video",
			link:       "https://youtube.com/watch?v=x",
			wantDomain: "youtube.com",
			wantVideo:  true,
		},
		{
			name:       "social",
			link:       "https://twitter.com/someone/status/1",
			wantDomain: "twitter.com",
			wantSocial: true,
		},
		{
			name:       "news",
			link:       "https://www.ndtv.com/gadgets/fans",
			wantDomain: "ndtv.com",
			wantNews:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newSearchPost("Title", tt.link, "Desc", 3, 1)
			s := p.Search
			if s.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", s.Domain, tt.wantDomain)
			}
			if s.IsVideo != tt.wantVideo || s.IsSocial != tt.wantSocial ||
				s.IsEcommerce != tt.wantEcomm || s.IsNews != tt.wantNews {
				t.Errorf("flags = %+v", s)
			}
			if s.Position != 3 || s.Page != 1 {
				t.Errorf("Position/Page = %d/%d, want 3/1", s.Position, s.Page)
			}
		})
	}
}

func TestMockDeterministic(t *testing.T) {
	m := NewMock("atomberg", []string{"Havells", "Orient", "Bajaj"})

	for _, platform := range []models.Platform{models.PlatformVideo, models.PlatformMicroblog, models.PlatformSearch} {
		first := m.Generate(platform, "smart fan", 10)
		again := m.Generate(platform, "smart fan", 10)
		if !reflect.DeepEqual(first, again) {
			t.Errorf("%s sample data not deterministic", platform)
		}
		if len(first) != 10 {
			t.Errorf("%s returned %d posts, want 10", platform, len(first))
		}
		for _, p := range first {
			if p.Platform != platform {
				t.Errorf("post platform = %s, want %s", p.Platform, platform)
			}
			if p.ID == "" {
				t.Error("post has empty ID")
			}
		}
	}

	// Different keywords must not collide on IDs.
	a := m.Generate(models.PlatformVideo, "smart fan", 5)
	b := m.Generate(models.PlatformVideo, "bldc fan", 5)
	if a[0].ID == b[0].ID {
		t.Error("sample IDs collide across keywords")
	}
}

func TestMockEmbedsBrands(t *testing.T) {
	m := NewMock("atomberg", []string{"Havells", "Orient"})

	videos := m.Generate(models.PlatformVideo, "smart fan", 6)
	// Every 3rd video mentions the focal brand by name.
	for i, p := range videos {
		hasFocal := strings.Contains(p.Description, "Atomberg")
		if (i%3 == 0) != hasFocal {
			t.Errorf("video %d focal mention = %v, text %q", i, hasFocal, p.Description)
		}
	}

	tweets := m.Generate(models.PlatformMicroblog, "smart fan", 8)
	if !strings.Contains(tweets[0].Text, "Atomberg") {
		t.Errorf("first tweet should mention focal brand, got %q", tweets[0].Text)
	}
	if tweets[0].Microblog.AuthorFollowers != 500 {
		t.Errorf("followers = %d, want 500", tweets[0].Microblog.AuthorFollowers)
	}
}

func TestMockStatsProgression(t *testing.T) {
	m := NewMock("atomberg", nil)

	videos := m.Generate(models.PlatformVideo, "smart fan", 3)
	wantViews := []int64{5000, 6000, 7000}
	for i, p := range videos {
		if p.Video.Views != wantViews[i] {
			t.Errorf("video %d views = %d, want %d", i, p.Video.Views, wantViews[i])
		}
	}

	results := m.Generate(models.PlatformSearch, "smart fan", 12)
	if results[0].Search.Position != 1 || results[11].Search.Position != 12 {
		t.Errorf("positions = %d..%d, want 1..12", results[0].Search.Position, results[11].Search.Position)
	}
	if results[11].Search.Page != 2 {
		t.Errorf("result 12 page = %d, want 2", results[11].Search.Page)
	}
}

type stubCollector struct {
	platform models.Platform
	posts    []models.Post
	err      error
	offline  bool
}

func (s *stubCollector) Platform() models.Platform { return s.platform }
func (s *stubCollector) Available() bool           { return !s.offline }
func (s *stubCollector) Search(context.Context, string, int) ([]models.Post, error) {
	return s.posts, s.err
}

func TestAgentBucketsResults(t *testing.T) {
	ok := &stubCollector{
		platform: models.PlatformVideo,
		posts:    []models.Post{{ID: "v1", Platform: models.PlatformVideo}},
	}
	agent := NewAgentWithCollectors(NewMock("atomberg", nil), false, 10, zerolog.Nop(), ok)

	corpus, err := agent.Collect(context.Background(), []string{"smart fan", "bldc fan"})
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	if len(corpus) != 2 {
		t.Fatalf("corpus has %d keywords, want 2", len(corpus))
	}
	for _, kw := range []string{"smart fan", "bldc fan"} {
		posts := corpus[kw][models.PlatformVideo]
		if len(posts) != 1 || posts[0].ID != "v1" {
			t.Errorf("bucket %q = %v", kw, posts)
		}
	}
}

func TestAgentFallsBackToMock(t *testing.T) {
	broken := &stubCollector{platform: models.PlatformVideo, err: errors.New("boom")}
	offline := &stubCollector{platform: models.PlatformMicroblog, offline: true}
	agent := NewAgentWithCollectors(NewMock("atomberg", nil), true, 5, zerolog.Nop(), broken, offline)

	corpus, err := agent.Collect(context.Background(), []string{"smart fan"})
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	if n := len(corpus["smart fan"][models.PlatformVideo]); n != 5 {
		t.Errorf("failed collector bucket has %d posts, want 5 mock posts", n)
	}
	if n := len(corpus["smart fan"][models.PlatformMicroblog]); n != 5 {
		t.Errorf("offline collector bucket has %d posts, want 5 mock posts", n)
	}
}

func TestAgentNoMockLeavesEmptyBucket(t *testing.T) {
	broken := &stubCollector{platform: models.PlatformVideo, err: errors.New("boom")}
	agent := NewAgentWithCollectors(NewMock("atomberg", nil), false, 5, zerolog.Nop(), broken)

	corpus, err := agent.Collect(context.Background(), []string{"smart fan"})
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if n := len(corpus["smart fan"][models.PlatformVideo]); n != 0 {
		t.Errorf("bucket has %d posts, want 0 with mock disabled", n)
	}
}

func TestResultCacheExpiry(t *testing.T) {
	c := newResultCache(50 * time.Millisecond)
	posts := []models.Post{{ID: "p1"}}

	c.set("k", posts)
	if got, ok := c.get("k"); !ok || len(got) != 1 {
		t.Fatalf("cache miss immediately after set")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.get("k"); ok {
		t.Error("cache hit after TTL expiry")
	}
}

func TestRateLimiterHonorsContext(t *testing.T) {
	rl := newRateLimiter(1, time.Hour)

	if err := rl.wait(context.Background()); err != nil {
		t.Fatalf("first wait should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := rl.wait(ctx); err == nil {
		t.Error("second wait should fail once tokens are exhausted")
	}
}
