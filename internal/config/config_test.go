package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Brands.Focal != "atomberg" {
		t.Errorf("Brands.Focal = %q, want atomberg", cfg.Brands.Focal)
	}
	if cfg.Brands.Matching != MatchSubstring {
		t.Errorf("Brands.Matching = %q, want %q", cfg.Brands.Matching, MatchSubstring)
	}
	if len(cfg.Brands.Competitors) != 7 {
		t.Errorf("Brands.Competitors has %d entries, want 7", len(cfg.Brands.Competitors))
	}
	if len(cfg.Brands.Variations["atomberg"]) == 0 {
		t.Error("Brands.Variations missing focal brand entry")
	}

	w := cfg.Analysis.Weights
	if w.Mention != 0.4 || w.Engagement != 0.4 || w.Sentiment != 0.2 {
		t.Errorf("sov weights = %+v, want 0.4/0.4/0.2", w)
	}
	if len(cfg.Analysis.SentimentChain) != 2 || cfg.Analysis.SentimentChain[0] != "rules" {
		t.Errorf("sentiment chain = %v, want [rules lexicon]", cfg.Analysis.SentimentChain)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Analysis.Workers)
	}
	if len(cfg.Analysis.Themes) != 8 {
		t.Errorf("themes has %d categories, want 8", len(cfg.Analysis.Themes))
	}
	if len(cfg.Analysis.PositiveWords) == 0 || len(cfg.Analysis.NegativeWords) == 0 {
		t.Error("sentiment lexicons should be non-empty by default")
	}

	if len(cfg.Collect.Keywords) != 7 {
		t.Errorf("collect keywords has %d entries, want 7", len(cfg.Collect.Keywords))
	}
	if cfg.Collect.MaxResults != 50 {
		t.Errorf("max_results = %d, want 50", cfg.Collect.MaxResults)
	}
	if !cfg.Collect.AllowMock {
		t.Error("allow_mock should default to true")
	}

	if cfg.Output.Dir != "data" {
		t.Errorf("output dir = %q, want data", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v, want info/console", cfg.Logging)
	}

	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("default config should validate cleanly, got %v", issues)
	}
}

func TestLoadFromFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
brands:
  focal: brandx
  competitors:
    - BrandY
  variations:
    brandx: [brandx]
    brandy: [brandy]
analysis:
  sov_weights:
    mention: 0.5
    engagement: 0.3
    sentiment: 0.2
collect:
  keywords:
    - custom query
  max_results: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	if cfg.Brands.Focal != "brandx" {
		t.Errorf("Brands.Focal = %q, want brandx", cfg.Brands.Focal)
	}
	if len(cfg.Brands.Competitors) != 1 || cfg.Brands.Competitors[0] != "BrandY" {
		t.Errorf("Brands.Competitors = %v, want [BrandY]", cfg.Brands.Competitors)
	}
	if len(cfg.Brands.Variations) != 2 {
		t.Errorf("Brands.Variations = %v, want the two file-provided brands", cfg.Brands.Variations)
	}
	if cfg.Analysis.Weights.Mention != 0.5 {
		t.Errorf("mention weight = %f, want 0.5", cfg.Analysis.Weights.Mention)
	}
	if len(cfg.Collect.Keywords) != 1 || cfg.Collect.Keywords[0] != "custom query" {
		t.Errorf("collect keywords = %v, want [custom query]", cfg.Collect.Keywords)
	}
	if cfg.Collect.MaxResults != 5 {
		t.Errorf("max_results = %d, want 5", cfg.Collect.MaxResults)
	}

	// Tables the file did not touch fall back to the built-ins.
	if len(cfg.Analysis.Themes) != 8 {
		t.Errorf("themes has %d categories, want built-in 8", len(cfg.Analysis.Themes))
	}
	if len(cfg.Analysis.StopWords) == 0 {
		t.Error("stop words should fall back to built-ins")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() on a missing path should error")
	}
}

func TestBearerTokenFromEnv(t *testing.T) {
	t.Setenv("SOVLENS_COLLECT_TWITTER_BEARER_TOKEN", "tok-primary")
	t.Setenv("TWITTER_BEARER_TOKEN", "tok-fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Collect.TwitterBearerToken != "tok-primary" {
		t.Errorf("bearer token = %q, want tok-primary", cfg.Collect.TwitterBearerToken)
	}

	t.Setenv("SOVLENS_COLLECT_TWITTER_BEARER_TOKEN", "")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Collect.TwitterBearerToken != "tok-fallback" {
		t.Errorf("bearer token = %q, want tok-fallback", cfg.Collect.TwitterBearerToken)
	}
}

func TestValidateFlagsProblems(t *testing.T) {
	cfg := &Config{}
	issues := cfg.Validate()
	if len(issues) == 0 {
		t.Fatal("empty config should fail validation")
	}

	cfg.Brands.Focal = "atomberg"
	cfg.Brands.Matching = "fuzzy"
	cfg.Brands.Competitors = []string{"Havells"}
	cfg.Collect.Keywords = []string{"smart fan"}
	cfg.Analysis.Weights = SoVWeights{Mention: 0.4, Engagement: 0.4, Sentiment: 0.2}

	issues = cfg.Validate()
	if len(issues) != 1 {
		t.Fatalf("Validate() = %v, want exactly the matching-mode issue", issues)
	}
}
