// Package sentiment classifies post text as positive, negative, or
// neutral. Backends are ranked in a fallback chain; analysis prefers the
// first available backend and falls through on per-text failure, so a
// degraded environment still produces results.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/pkg/models"
)

// ErrNoBackends is returned when the chain has no usable backend.
var ErrNoBackends = errors.New("sentiment: no backends available")

// Analyzer is a single sentiment backend.
type Analyzer interface {
	// Name identifies the backend in results and logs.
	Name() string
	// Available reports whether the backend can score text right now.
	Available() bool
	// Analyze scores one cleaned text.
	Analyze(text string) (models.SentimentResult, error)
}

// Chain runs text through a ranked list of backends, falling back in
// order when one is unavailable or fails on a given text.
type Chain struct {
	backends []Analyzer
	workers  int
	log      zerolog.Logger
}

// NewChain builds a chain from explicit backends, in rank order.
func NewChain(log zerolog.Logger, workers int, backends ...Analyzer) *Chain {
	if workers < 1 {
		workers = 1
	}
	return &Chain{
		backends: backends,
		workers:  workers,
		log:      log.With().Str("component", "sentiment").Logger(),
	}
}

// NewChainFromConfig builds the chain named by the analysis config.
// Unknown backend names are skipped with a warning.
func NewChainFromConfig(cfg *config.Config, log zerolog.Logger) (*Chain, error) {
	var backends []Analyzer
	for _, name := range cfg.Analysis.SentimentChain {
		switch name {
		case "rules":
			backends = append(backends, NewRules())
		case "lexicon":
			backends = append(backends, NewLexicon(
				cfg.Analysis.PositiveWords,
				cfg.Analysis.NegativeWords,
				cfg.Analysis.NegationWords,
			))
		default:
			log.Warn().Str("backend", name).Msg("unknown sentiment backend, skipping")
		}
	}
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}
	return NewChain(log, cfg.Analysis.Workers, backends...), nil
}

// Analyze scores one text through the chain. Empty or whitespace-only
// text short-circuits to the neutral result without consulting any
// backend.
func (c *Chain) Analyze(text string) (models.SentimentResult, error) {
	if isBlank(text) {
		return models.NeutralSentiment("none"), nil
	}

	var lastErr error
	for _, b := range c.backends {
		if !b.Available() {
			continue
		}
		res, err := b.Analyze(text)
		if err == nil {
			return res, nil
		}
		lastErr = err
		c.log.Warn().Str("backend", b.Name()).Err(err).Msg("sentiment backend failed, trying next")
	}

	if lastErr != nil {
		return models.SentimentResult{}, fmt.Errorf("sentiment: all backends failed: %w", lastErr)
	}
	return models.SentimentResult{}, ErrNoBackends
}

// Batch scores every post in the corpus, keyed by post ID. Buckets are
// scored concurrently, bounded by the configured worker count.
func (c *Chain) Batch(ctx context.Context, corpus models.Corpus) (models.SentimentMap, error) {
	out := make(models.SentimentMap, corpus.TotalPosts())
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, platforms := range corpus {
		for _, posts := range platforms {
			posts := posts
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results := make(map[string]models.SentimentResult, len(posts))
				for _, p := range posts {
					res, err := c.Analyze(p.TextContent)
					if err != nil {
						return fmt.Errorf("post %s: %w", p.ID, err)
					}
					results[p.ID] = res
				}
				mu.Lock()
				for id, res := range results {
					out[id] = res
				}
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Debug().Int("posts", len(out)).Msg("batch sentiment analysis complete")
	return out, nil
}

// Summarize computes corpus-level distribution statistics.
func Summarize(results models.SentimentMap) models.SentimentSummary {
	summary := models.SentimentSummary{
		Distribution:      map[models.Sentiment]float64{},
		Counts:            map[models.Sentiment]int{},
		DominantSentiment: models.SentimentNeutral,
	}
	if len(results) == 0 {
		return summary
	}

	confSum := 0.0
	for _, r := range results {
		summary.Counts[r.Sentiment]++
		confSum += r.Confidence
	}

	summary.TotalAnalyzed = len(results)
	summary.AverageConfidence = confSum / float64(len(results))

	best := -1
	for _, s := range []models.Sentiment{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		summary.Distribution[s] = float64(summary.Counts[s]) / float64(len(results))
		if summary.Counts[s] > best {
			best = summary.Counts[s]
			summary.DominantSentiment = s
		}
	}
	return summary
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
