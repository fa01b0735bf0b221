package collect

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/pkg/models"
)

// Agent fans search requests out across platforms and keywords and
// buckets the results into a Corpus. A collector that is unavailable or
// fails mid-search degrades to deterministic sample data when mock
// fallback is enabled, so an analysis run always has something to chew
// on.
type Agent struct {
	collectors []Collector
	mock       *Mock
	allowMock  bool
	maxResults int
	timeout    time.Duration
	log        zerolog.Logger
}

// NewAgent builds an agent with the collectors named by the collection
// config.
func NewAgent(cfg *config.Config, log zerolog.Logger) *Agent {
	a := &Agent{
		mock:       NewMock(cfg.Brands.Focal, cfg.Brands.Competitors),
		allowMock:  cfg.Collect.AllowMock,
		maxResults: cfg.Collect.MaxResults,
		timeout:    time.Duration(cfg.Collect.RequestTimeoutSec) * time.Second,
		log:        log.With().Str("component", "collect").Logger(),
	}
	if a.timeout <= 0 {
		a.timeout = 10 * time.Second
	}

	for _, name := range cfg.Collect.Platforms {
		switch models.Platform(name) {
		case models.PlatformVideo:
			a.collectors = append(a.collectors, NewYouTube(log))
		case models.PlatformMicroblog:
			a.collectors = append(a.collectors, NewTwitter(cfg.Collect.TwitterBearerToken, log))
		case models.PlatformSearch:
			a.collectors = append(a.collectors, NewGoogle(log))
		default:
			log.Warn().Str("platform", name).Msg("unknown platform, skipping")
		}
	}
	return a
}

// NewAgentWithCollectors builds an agent over explicit collectors.
func NewAgentWithCollectors(mock *Mock, allowMock bool, maxResults int, log zerolog.Logger, collectors ...Collector) *Agent {
	return &Agent{
		collectors: collectors,
		mock:       mock,
		allowMock:  allowMock,
		maxResults: maxResults,
		timeout:    10 * time.Second,
		log:        log.With().Str("component", "collect").Logger(),
	}
}

// Platforms returns the platforms this agent collects from.
func (a *Agent) Platforms() []models.Platform {
	out := make([]models.Platform, len(a.collectors))
	for i, c := range a.collectors {
		out[i] = c.Platform()
	}
	return out
}

// Collect searches every keyword on every platform concurrently and
// returns the bucketed corpus. Individual failures never abort the run;
// the failed bucket is either mocked or left empty.
func (a *Agent) Collect(ctx context.Context, keywords []string) (models.Corpus, error) {
	corpus := make(models.Corpus, len(keywords))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(a.collectors) * 2)

	for _, keyword := range keywords {
		for _, col := range a.collectors {
			keyword, col := keyword, col
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				posts := a.searchOne(ctx, col, keyword)

				mu.Lock()
				if corpus[keyword] == nil {
					corpus[keyword] = make(map[models.Platform][]models.Post)
				}
				corpus[keyword][col.Platform()] = posts
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.Info().
		Int("keywords", len(keywords)).
		Int("posts", corpus.TotalPosts()).
		Msg("collection complete")
	return corpus, nil
}

// searchOne runs a single (platform, keyword) search with fallback.
func (a *Agent) searchOne(ctx context.Context, col Collector, keyword string) []models.Post {
	platform := col.Platform()

	if !col.Available() {
		a.log.Warn().
			Str("platform", string(platform)).
			Str("keyword", keyword).
			Msg("collector unavailable")
		return a.fallback(platform, keyword)
	}

	searchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	posts, err := col.Search(searchCtx, keyword, a.maxResults)
	if err != nil {
		a.log.Warn().
			Str("platform", string(platform)).
			Str("keyword", keyword).
			Err(err).
			Msg("search failed")
		return a.fallback(platform, keyword)
	}
	if len(posts) == 0 {
		return a.fallback(platform, keyword)
	}
	return posts
}

func (a *Agent) fallback(platform models.Platform, keyword string) []models.Post {
	if !a.allowMock {
		return nil
	}
	a.log.Info().
		Str("platform", string(platform)).
		Str("keyword", keyword).
		Msg("using sample data")
	return a.mock.Generate(platform, keyword, a.maxResults)
}
