package collect

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/pkg/models"
)

const resultsPerPage = 10

// Domain groups used to classify search results.
var (
	socialDomains    = []string{"twitter.com", "x.com", "facebook.com", "instagram.com", "linkedin.com"}
	ecommerceDomains = []string{"amazon.", "flipkart.", "myntra.", "snapdeal."}
	newsMarkers      = []string{"news", "times", "hindu", "ndtv", "zee"}
)

// Google collects web search results by scraping result pages, then
// augments them with entries from the news RSS search feed. News
// entries rank after the organic results.
type Google struct {
	cache    *resultCache
	limiter  *rateLimiter
	parser   *gofeed.Parser
	withNews bool
	log      zerolog.Logger
}

// NewGoogle creates the search platform collector.
func NewGoogle(log zerolog.Logger) *Google {
	return &Google{
		cache:    newResultCache(10 * time.Minute),
		limiter:  newRateLimiter(1, 2*time.Second), // scraping is throttled hard
		parser:   gofeed.NewParser(),
		withNews: true,
		log:      log.With().Str("collector", "google").Logger(),
	}
}

func (g *Google) Platform() models.Platform { return models.PlatformSearch }

// Available always reports true; scraping needs no credentials.
func (g *Google) Available() bool { return true }

// Search scrapes up to five result pages for the keyword.
func (g *Google) Search(ctx context.Context, keyword string, maxResults int) ([]models.Post, error) {
	cacheKey := "google:" + keyword
	if cached, ok := g.cache.get(cacheKey); ok {
		return capPosts(cached, maxResults), nil
	}

	var posts []models.Post

	pages := maxResults/resultsPerPage + 1
	if pages > 5 {
		pages = 5
	}

	for page := 0; page < pages; page++ {
		if maxResults > 0 && len(posts) >= maxResults {
			break
		}

		pagePosts, err := g.searchPage(ctx, keyword, page, maxResults-len(posts))
		if err != nil {
			if len(posts) == 0 && page == 0 {
				return nil, err
			}
			g.log.Warn().Err(err).Int("page", page+1).Msg("search page failed, keeping earlier pages")
			break
		}
		posts = append(posts, pagePosts...)
	}

	if g.withNews && (maxResults <= 0 || len(posts) < maxResults) {
		news, err := g.searchNews(ctx, keyword, len(posts))
		if err != nil {
			g.log.Warn().Err(err).Msg("news feed failed, keeping organic results")
		} else {
			posts = append(posts, news...)
		}
	}

	g.log.Debug().Str("keyword", keyword).Int("results", len(posts)).Msg("web search complete")

	g.cache.set(cacheKey, posts)
	return capPosts(posts, maxResults), nil
}

// searchPage scrapes a single result page.
func (g *Google) searchPage(ctx context.Context, keyword string, page, remaining int) ([]models.Post, error) {
	if err := g.limiter.wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("https://www.google.com/search?q=%s&start=%d",
		url.QueryEscape(keyword), page*resultsPerPage)

	body, err := fetch(ctx, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google search %q page %d: %w", keyword, page+1, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("google search %q page %d: parse: %w", keyword, page+1, err)
	}

	var posts []models.Post
	doc.Find("div.g").Each(func(i int, sel *goquery.Selection) {
		if remaining > 0 && len(posts) >= remaining {
			return
		}

		title := strings.TrimSpace(sel.Find("h3").First().Text())
		link, _ := sel.Find("a").First().Attr("href")
		desc := strings.TrimSpace(sel.Find("div.VwiC3b").First().Text())
		if title == "" || link == "" {
			return
		}

		posts = append(posts, newSearchPost(title, link, desc, page*resultsPerPage+i+1, page+1))
	})

	return posts, nil
}

// searchNews pulls the news RSS search feed for the keyword. Positions
// continue after the organic results so news never outranks them.
func (g *Google) searchNews(ctx context.Context, keyword string, offset int) ([]models.Post, error) {
	if err := g.limiter.wait(ctx); err != nil {
		return nil, err
	}

	feedURL := "https://news.google.com/rss/search?q=" + url.QueryEscape(keyword) + "&hl=en-IN&gl=IN"
	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("news feed %q: %w", keyword, err)
	}

	var posts []models.Post
	for i, item := range feed.Items {
		if i >= resultsPerPage {
			break
		}
		position := offset + i + 1
		post := newSearchPost(item.Title, item.Link, stripHTML(item.Description), position, position/resultsPerPage+1)
		post.Search.IsNews = true
		if item.PublishedParsed != nil {
			post.PublishedAt = *item.PublishedParsed
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func newSearchPost(title, link, description string, position, page int) models.Post {
	domain := extractDomain(link)
	return models.Post{
		ID:          fmt.Sprintf("g_%d_%s", position, domain),
		Platform:    models.PlatformSearch,
		Title:       title,
		Description: description,
		URL:         link,
		Search: &models.SearchStats{
			Position:    position,
			Page:        page,
			Domain:      domain,
			IsVideo:     strings.Contains(link, "youtube.com") || strings.Contains(strings.ToLower(title), "video"),
			IsSocial:    containsAny(link, socialDomains),
			IsEcommerce: containsAny(link, ecommerceDomains),
			IsNews:      containsAny(link, newsMarkers),
		},
	}
}

func extractDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// stripHTML drops markup from feed descriptions using goquery.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
