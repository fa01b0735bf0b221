// Package pipeline orchestrates a full share-of-voice analysis run:
// collection, normalization, engagement enrichment, sentiment scoring,
// metric aggregation, and insight generation. Each stage completes for
// the whole corpus before the next starts, so aggregation always sees
// fully enriched posts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/internal/collect"
	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/internal/engagement"
	"github.com/sovlens/sovlens/internal/normalize"
	"github.com/sovlens/sovlens/internal/sentiment"
	"github.com/sovlens/sovlens/internal/sov"
	"github.com/sovlens/sovlens/pkg/models"
)

// Metadata describes one analysis run.
type Metadata struct {
	RunID        string    `json:"run_id"`
	Keywords     []string  `json:"keywords"`
	Platforms    []string  `json:"platforms"`
	MaxResults   int       `json:"num_results"`
	AnalysisDate time.Time `json:"analysis_date"`
	TotalPosts   int       `json:"total_posts_analyzed"`
}

// Result is the complete output of an analysis run.
type Result struct {
	Metadata   Metadata                `json:"metadata"`
	Corpus     models.Corpus           `json:"raw_data"`
	Sentiments models.SentimentMap     `json:"sentiment_analysis"`
	Summary    models.SentimentSummary `json:"sentiment_summary"`
	Metrics    *models.SoVMetrics      `json:"sov_metrics"`
	Insights   Insights                `json:"insights"`
}

// Runner wires the analysis stages together.
type Runner struct {
	cfg        *config.Config
	agent      *collect.Agent
	normalizer *normalize.Normalizer
	chain      *sentiment.Chain
	calculator *sov.Calculator
	log        zerolog.Logger
}

// New builds a runner from the configuration.
func New(cfg *config.Config, log zerolog.Logger) (*Runner, error) {
	chain, err := sentiment.NewChainFromConfig(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Runner{
		cfg:        cfg,
		agent:      collect.NewAgent(cfg, log),
		normalizer: normalize.New(cfg, log),
		chain:      chain,
		calculator: sov.New(cfg, log),
		log:        log.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Run executes the full analysis for the configured keywords.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	keywords := r.cfg.Collect.Keywords
	r.log.Info().
		Strs("keywords", keywords).
		Strs("platforms", r.cfg.Collect.Platforms).
		Int("max_results", r.cfg.Collect.MaxResults).
		Msg("starting share-of-voice analysis")

	corpus, err := r.agent.Collect(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("pipeline: collect: %w", err)
	}

	corpus, err = r.Analyze(ctx, corpus)
	if err != nil {
		return nil, err
	}

	sentiments, err := r.chain.Batch(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("pipeline: sentiment: %w", err)
	}

	metrics := r.calculator.Calculate(corpus, sentiments)
	insights := GenerateInsights(metrics, displayName(r.cfg.Brands.Focal))

	result := &Result{
		Metadata: Metadata{
			RunID:        uuid.New().String(),
			Keywords:     keywords,
			Platforms:    r.cfg.Collect.Platforms,
			MaxResults:   r.cfg.Collect.MaxResults,
			AnalysisDate: time.Now().UTC(),
			TotalPosts:   corpus.TotalPosts(),
		},
		Corpus:     corpus,
		Sentiments: sentiments,
		Summary:    sentiment.Summarize(sentiments),
		Metrics:    metrics,
		Insights:   insights,
	}

	r.log.Info().
		Str("run_id", result.Metadata.RunID).
		Int("posts", result.Metadata.TotalPosts).
		Float64("overall_sov", metrics.OverallSoV).
		Msg("analysis complete")
	return result, nil
}

// Analyze normalizes an already collected corpus and fills in the
// standardized engagement view and quality score of every post. Exposed
// separately from Run so pre-collected data can be re-analyzed.
func (r *Runner) Analyze(ctx context.Context, corpus models.Corpus) (models.Corpus, error) {
	normalized, err := r.normalizer.Corpus(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("pipeline: normalize: %w", err)
	}

	for _, byPlatform := range normalized {
		for platform, posts := range byPlatform {
			for i := range posts {
				posts[i].Engagement = engagement.Standardize(posts[i])
				posts[i].QualityScore = engagement.QualityScore(posts[i], config.RelevantThemeTags)
			}
			byPlatform[platform] = posts
		}
	}
	return normalized, nil
}

// displayName capitalizes a configured brand slug for human-facing text.
func displayName(brand string) string {
	if brand == "" {
		return brand
	}
	upper := brand[0]
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	return string(upper) + brand[1:]
}
