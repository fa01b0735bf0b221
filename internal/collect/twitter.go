package collect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/pkg/models"
)

// bearerAuthorizer satisfies the API client's Authorizer interface with
// an app-only bearer token.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// Twitter collects microblog posts through the v2 recent search API.
// Without a bearer token the collector reports unavailable and the
// agent substitutes sample data.
type Twitter struct {
	client *twitter.Client
	cache  *resultCache
	log    zerolog.Logger
}

// NewTwitter creates the microblog collector. An empty token yields an
// unavailable collector rather than an error.
func NewTwitter(bearerToken string, log zerolog.Logger) *Twitter {
	t := &Twitter{
		cache: newResultCache(10 * time.Minute),
		log:   log.With().Str("collector", "twitter").Logger(),
	}
	if bearerToken != "" {
		t.client = &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     httpClient,
			Host:       "https://api.twitter.com",
		}
	}
	return t
}

func (t *Twitter) Platform() models.Platform { return models.PlatformMicroblog }

// Available reports whether a bearer token was configured.
func (t *Twitter) Available() bool { return t.client != nil }

// Search runs a recent-search query for the keyword.
func (t *Twitter) Search(ctx context.Context, keyword string, maxResults int) ([]models.Post, error) {
	if t.client == nil {
		return nil, ErrUnavailable
	}

	cacheKey := "twitter:" + keyword
	if cached, ok := t.cache.get(cacheKey); ok {
		return capPosts(cached, maxResults), nil
	}

	// The API accepts 10..100 results per request.
	n := maxResults
	if n > 100 {
		n = 100
	}
	if n < 10 {
		n = 10
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: n,
		Expansions: []twitter.Expansion{twitter.ExpansionAuthorID},
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldAuthorID,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldLanguage,
		},
		UserFields: []twitter.UserField{
			twitter.UserFieldUserName,
			twitter.UserFieldName,
			twitter.UserFieldPublicMetrics,
		},
	}

	resp, err := t.client.TweetRecentSearch(ctx, keyword, opts)
	if err != nil {
		return nil, fmt.Errorf("twitter search %q: %w", keyword, err)
	}

	users := map[string]*twitter.UserObj{}
	if resp.Raw.Includes != nil {
		for _, u := range resp.Raw.Includes.Users {
			users[u.ID] = u
		}
	}

	posts := make([]models.Post, 0, len(resp.Raw.Tweets))
	for _, tweet := range resp.Raw.Tweets {
		post := models.Post{
			ID:        "tw_" + tweet.ID,
			Platform:  models.PlatformMicroblog,
			Text:      tweet.Text,
			URL:       "https://twitter.com/i/status/" + tweet.ID,
			Microblog: &models.MicroblogStats{},
		}

		if tweet.PublicMetrics != nil {
			post.Microblog.Retweets = int64(tweet.PublicMetrics.Retweets)
			post.Microblog.Likes = int64(tweet.PublicMetrics.Likes)
			post.Microblog.Replies = int64(tweet.PublicMetrics.Replies)
			post.Microblog.Quotes = int64(tweet.PublicMetrics.Quotes)
		}
		if author, ok := users[tweet.AuthorID]; ok {
			post.Author = author.UserName
			if author.PublicMetrics != nil {
				post.Microblog.AuthorFollowers = int64(author.PublicMetrics.Followers)
			}
		}
		if ts, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
			post.PublishedAt = ts
		}

		posts = append(posts, post)
	}

	t.log.Debug().Str("keyword", keyword).Int("tweets", len(posts)).Msg("microblog search complete")

	t.cache.set(cacheKey, posts)
	return capPosts(posts, maxResults), nil
}
