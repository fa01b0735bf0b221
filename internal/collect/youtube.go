package collect

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/pkg/models"
)

// Search result pages embed their data as a JSON blob; individual video
// entries are videoRenderer objects inside it.
var (
	reVideoID   = regexp.MustCompile(`^\{"videoId":"([^"]+)"`)
	reTitleRun  = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	reViewCount = regexp.MustCompile(`"viewCountText":\{"simpleText":"([\d,]+) view`)
	reChannel   = regexp.MustCompile(`"longBylineText":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	reSnippet   = regexp.MustCompile(`"detailedMetadataSnippets".{0,200}?"text":"((?:[^"\\]|\\.)*)"`)
	reDigits    = regexp.MustCompile(`[^\d]`)
)

// YouTube collects video posts by scraping the public search results
// page. Like and comment counters are not exposed on the results page,
// so only view counts are populated.
type YouTube struct {
	cache   *resultCache
	limiter *rateLimiter
	log     zerolog.Logger
}

// NewYouTube creates the video platform collector.
func NewYouTube(log zerolog.Logger) *YouTube {
	return &YouTube{
		cache:   newResultCache(10 * time.Minute),
		limiter: newRateLimiter(2, time.Second),
		log:     log.With().Str("collector", "youtube").Logger(),
	}
}

func (y *YouTube) Platform() models.Platform { return models.PlatformVideo }

// Available always reports true; the search page needs no credentials.
func (y *YouTube) Available() bool { return true }

// Search scrapes the results page for the keyword.
func (y *YouTube) Search(ctx context.Context, keyword string, maxResults int) ([]models.Post, error) {
	cacheKey := "youtube:" + keyword
	if cached, ok := y.cache.get(cacheKey); ok {
		return capPosts(cached, maxResults), nil
	}

	if err := y.limiter.wait(ctx); err != nil {
		return nil, err
	}

	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(keyword)
	body, err := fetch(ctx, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", keyword, err)
	}
	defer body.Close()

	page, err := io.ReadAll(io.LimitReader(body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: read body: %w", keyword, err)
	}

	posts := parseVideoResults(string(page), maxResults)
	y.log.Debug().Str("keyword", keyword).Int("videos", len(posts)).Msg("video search complete")

	y.cache.set(cacheKey, posts)
	return posts, nil
}

// parseVideoResults walks the embedded videoRenderer objects in a
// search results page.
func parseVideoResults(page string, maxResults int) []models.Post {
	var posts []models.Post
	chunks := strings.Split(page, `"videoRenderer":`)

	// The first chunk precedes any renderer.
	for _, chunk := range chunks[1:] {
		if maxResults > 0 && len(posts) >= maxResults {
			break
		}

		idMatch := reVideoID.FindStringSubmatch(chunk)
		if idMatch == nil {
			continue
		}
		videoID := idMatch[1]

		post := models.Post{
			ID:       "yt_" + videoID,
			Platform: models.PlatformVideo,
			URL:      "https://www.youtube.com/watch?v=" + videoID,
			Video:    &models.VideoStats{},
		}

		if m := reTitleRun.FindStringSubmatch(chunk); m != nil {
			post.Title = unescapeJSON(m[1])
		}
		if m := reSnippet.FindStringSubmatch(chunk); m != nil {
			post.Description = unescapeJSON(m[1])
		}
		if m := reChannel.FindStringSubmatch(chunk); m != nil {
			post.Video.Channel = unescapeJSON(m[1])
			post.Author = post.Video.Channel
		}
		if m := reViewCount.FindStringSubmatch(chunk); m != nil {
			post.Video.Views = parseCount(m[1])
		}

		if post.Title == "" {
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

// parseCount turns a formatted counter like "1,234,567" into an int64.
func parseCount(s string) int64 {
	digits := reDigits.ReplaceAllString(s, "")
	var n int64
	for _, r := range digits {
		n = n*10 + int64(r-'0')
	}
	return n
}

// unescapeJSON resolves the escapes that occur inside the embedded
// JSON string values.
func unescapeJSON(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`, `\n`, " ", `\t`, " ")
	return r.Replace(s)
}

func capPosts(posts []models.Post, max int) []models.Post {
	if max > 0 && len(posts) > max {
		return posts[:max]
	}
	return posts
}
