// Package normalize turns raw collected posts into enriched, analysis-ready
// posts: cleaned text, brand mention flags, domain keywords, and theme tags.
package normalize

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/pkg/models"
)

// Normalizer enriches posts using the configured brand and analysis
// tables. Safe for concurrent use.
type Normalizer struct {
	det         *Detector
	competitors []string
	workers     int
	log         zerolog.Logger
}

// New builds a Normalizer from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Normalizer {
	workers := cfg.Analysis.Workers
	if workers < 1 {
		workers = 1
	}
	return &Normalizer{
		det:         NewDetector(cfg.Brands, cfg.Analysis),
		competitors: cfg.Brands.Competitors,
		workers:     workers,
		log:         log.With().Str("component", "normalize").Logger(),
	}
}

// Process enriches a single post. The input is not modified; the raw
// fields of the returned copy are untouched.
func (n *Normalizer) Process(post models.Post) models.Post {
	text := CleanText(post.RawText())

	post.TextContent = text
	post.MentionsFocal = n.det.MentionsFocal(text)
	post.MentionsCompetitors = n.det.CompetitorMentions(text, n.competitors)
	post.Keywords = n.det.Keywords(text)
	post.Themes = n.det.Themes(text)
	post.ContentLength = len(text)
	post.WordCount = countWords(text)
	post.ProcessedAt = time.Now().UTC()
	return post
}

// Corpus enriches every post in the corpus concurrently, one goroutine
// per (keyword, platform) bucket, bounded by the configured worker
// count. The input corpus is left untouched.
func (n *Normalizer) Corpus(ctx context.Context, corpus models.Corpus) (models.Corpus, error) {
	out := make(models.Corpus, len(corpus))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)

	for keyword, platforms := range corpus {
		for platform, posts := range platforms {
			keyword, platform, posts := keyword, platform, posts
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				enriched := make([]models.Post, len(posts))
				for i, p := range posts {
					enriched[i] = n.Process(p)
				}

				mu.Lock()
				if out[keyword] == nil {
					out[keyword] = make(map[models.Platform][]models.Post)
				}
				out[keyword][platform] = enriched
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	n.log.Debug().
		Int("posts", out.TotalPosts()).
		Int("keywords", len(out)).
		Msg("corpus normalized")
	return out, nil
}

func countWords(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		sep := r == ' ' || r == '\t' || r == '\n'
		if !sep && !inWord {
			n++
		}
		inWord = !sep
	}
	return n
}
