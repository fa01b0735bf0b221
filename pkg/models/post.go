package models

import (
	"sort"
	"time"
)

// Platform identifies the content source a post was collected from.
type Platform string

const (
	PlatformVideo     Platform = "video"     // video platform (YouTube)
	PlatformMicroblog Platform = "microblog" // microblogging platform (Twitter/X)
	PlatformSearch    Platform = "search"    // web search results (Google)
)

// VideoStats holds raw engagement counters for a video platform post.
type VideoStats struct {
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Channel  string `json:"channel,omitempty"`
}

// MicroblogStats holds raw engagement counters for a microblog post.
type MicroblogStats struct {
	Retweets        int64 `json:"retweets"`
	Likes           int64 `json:"likes"`
	Replies         int64 `json:"replies"`
	Quotes          int64 `json:"quotes"`
	AuthorFollowers int64 `json:"author_followers"`
}

// SearchStats holds ranking information for a web search result.
type SearchStats struct {
	Position    int    `json:"position"` // 1-based rank within the page
	Page        int    `json:"page"`     // 1-based result page
	Domain      string `json:"domain,omitempty"`
	IsVideo     bool   `json:"is_video,omitempty"`
	IsSocial    bool   `json:"is_social,omitempty"`
	IsEcommerce bool   `json:"is_ecommerce,omitempty"`
	IsNews      bool   `json:"is_news,omitempty"`
}

// EngagementStandard holds the cross-platform standardized engagement view
// of a post's raw counters. EngagementRate is conceptually in [0,1] but is
// not hard-capped.
type EngagementStandard struct {
	TotalEngagement float64 `json:"total_engagement"`
	EngagementRate  float64 `json:"engagement_rate"`
	ReachEstimate   float64 `json:"reach_estimate"`
}

// Post is a single collected item, platform-tagged. Exactly one of the
// Video/Microblog/Search stats variants is set, matching Platform.
//
// Raw fields (Title, Description, Text, stats) are filled by collection.
// Enriched fields (TextContent onward) are filled once by normalization
// and are read-only afterward. Sentiment is deliberately NOT stored on the
// post; it lives in a SentimentMap keyed by post ID.
type Post struct {
	ID          string    `json:"id"`
	Platform    Platform  `json:"platform"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Text        string    `json:"text,omitempty"`
	URL         string    `json:"url,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`

	Video     *VideoStats     `json:"video,omitempty"`
	Microblog *MicroblogStats `json:"microblog,omitempty"`
	Search    *SearchStats    `json:"search,omitempty"`

	// Enriched by normalization.
	TextContent         string             `json:"text_content,omitempty"`
	MentionsFocal       bool               `json:"mentions_atomberg"`
	MentionsCompetitors []string           `json:"mentions_competitors,omitempty"`
	Keywords            []string           `json:"keywords,omitempty"`
	Themes              []string           `json:"themes,omitempty"`
	ContentLength       int                `json:"content_length,omitempty"`
	WordCount           int                `json:"word_count,omitempty"`
	Engagement          EngagementStandard `json:"engagement"`
	QualityScore        float64            `json:"quality_score"`
	ProcessedAt         time.Time          `json:"processed_at,omitempty"`
}

// RawText returns the platform raw text fields joined in title,
// description, body order. Used when no TextContent was supplied
// by collection.
func (p *Post) RawText() string {
	out := p.Title
	if p.Description != "" {
		if out != "" {
			out += " "
		}
		out += p.Description
	}
	if p.Text != "" {
		if out != "" {
			out += " "
		}
		out += p.Text
	}
	return out
}

// Corpus maps search keyword → platform → ordered posts, mirroring how
// collection buckets its results. The nested shape is retained so the
// aggregator can compute per-keyword, per-platform breakdowns.
type Corpus map[string]map[Platform][]Post

// Flatten returns all posts in the corpus as one sequence, walking
// keywords and platforms in sorted order so the result is deterministic.
func (c Corpus) Flatten() []Post {
	var out []Post
	for _, kw := range sortedKeys(c) {
		byPlatform := c[kw]
		for _, pf := range sortedKeys(byPlatform) {
			out = append(out, byPlatform[pf]...)
		}
	}
	return out
}

// TotalPosts returns the number of posts across all buckets.
func (c Corpus) TotalPosts() int {
	n := 0
	for _, byPlatform := range c {
		for _, posts := range byPlatform {
			n += len(posts)
		}
	}
	return n
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
