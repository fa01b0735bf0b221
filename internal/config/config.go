// Package config handles configuration loading for sovlens.
// It supports YAML config files with environment variable overrides and
// carries the immutable analysis tables (brand variations, keyword
// vocabulary, theme tables, sentiment lexicons) that every component
// receives explicitly — there is no ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Matching granularity for brand and theme detection.
const (
	MatchSubstring = "substring" // default; over-matches on substrings of longer words
	MatchToken     = "token"     // stricter: whole-token matches only
)

// Config represents the complete application configuration.
type Config struct {
	Brands   BrandsConfig   `mapstructure:"brands"   yaml:"brands"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Collect  CollectConfig  `mapstructure:"collect"  yaml:"collect"`
	Output   OutputConfig   `mapstructure:"output"   yaml:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// BrandsConfig defines the focal brand, tracked competitors, and the
// surface-form variations used for mention detection.
type BrandsConfig struct {
	Focal       string              `mapstructure:"focal"       yaml:"focal"`
	Competitors []string            `mapstructure:"competitors" yaml:"competitors"`
	Variations  map[string][]string `mapstructure:"variations"  yaml:"variations"`
	Matching    string              `mapstructure:"matching"    yaml:"matching"` // "substring" or "token"
}

// SoVWeights are the relative weights of the three share metrics in the
// overall SoV score. They should sum to 1.
type SoVWeights struct {
	Mention    float64 `mapstructure:"mention"    yaml:"mention"`
	Engagement float64 `mapstructure:"engagement" yaml:"engagement"`
	Sentiment  float64 `mapstructure:"sentiment"  yaml:"sentiment"`
}

// AnalysisConfig holds the analysis tables and scoring settings.
type AnalysisConfig struct {
	RelevantKeywords []string            `mapstructure:"relevant_keywords" yaml:"relevant_keywords"`
	StopWords        []string            `mapstructure:"stop_words"        yaml:"stop_words"`
	Themes           map[string][]string `mapstructure:"themes"            yaml:"themes"`
	PositiveWords    []string            `mapstructure:"positive_words"    yaml:"positive_words"`
	NegativeWords    []string            `mapstructure:"negative_words"    yaml:"negative_words"`
	NegationWords    []string            `mapstructure:"negation_words"    yaml:"negation_words"`
	SentimentChain   []string            `mapstructure:"sentiment_chain"   yaml:"sentiment_chain"`
	Weights          SoVWeights          `mapstructure:"sov_weights"       yaml:"sov_weights"`
	Workers          int                 `mapstructure:"workers"           yaml:"workers"`
}

// CollectConfig holds collection-layer settings.
type CollectConfig struct {
	Keywords           []string `mapstructure:"keywords"             yaml:"keywords"`
	Platforms          []string `mapstructure:"platforms"            yaml:"platforms"`
	MaxResults         int      `mapstructure:"max_results"          yaml:"max_results"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"  yaml:"request_timeout_sec"`
	TwitterBearerToken string   `mapstructure:"twitter_bearer_token" yaml:"twitter_bearer_token"`
	AllowMock          bool     `mapstructure:"allow_mock"           yaml:"allow_mock"`
}

// OutputConfig holds report/export settings.
type OutputConfig struct {
	Dir     string   `mapstructure:"dir"     yaml:"dir"`
	Formats []string `mapstructure:"formats" yaml:"formats"` // "json", "csv", "text"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.sovlens/config.yaml (home directory)
//  3. /etc/sovlens/config.yaml (system)
//
// Environment variables override config file values.
// Format: SOVLENS_<SECTION>_<KEY>, e.g., SOVLENS_COLLECT_TWITTER_BEARER_TOKEN
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".sovlens"))
	v.AddConfigPath("/etc/sovlens")

	v.SetEnvPrefix("SOVLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyTableDefaults(&cfg)
	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("SOVLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyTableDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all scalar config values.
// The large analysis tables are filled by applyTableDefaults instead so a
// config file only needs to list the pieces it wants to replace.
func setDefaults(v *viper.Viper) {
	// Brand defaults
	v.SetDefault("brands.focal", "atomberg")
	v.SetDefault("brands.matching", MatchSubstring)

	// Analysis defaults
	v.SetDefault("analysis.sov_weights.mention", 0.4)
	v.SetDefault("analysis.sov_weights.engagement", 0.4)
	v.SetDefault("analysis.sov_weights.sentiment", 0.2)
	v.SetDefault("analysis.sentiment_chain", []string{"rules", "lexicon"})
	v.SetDefault("analysis.workers", 4)

	// Collection defaults
	v.SetDefault("collect.keywords", DefaultKeywords)
	v.SetDefault("collect.platforms", []string{"video", "microblog", "search"})
	v.SetDefault("collect.max_results", 50)
	v.SetDefault("collect.request_timeout_sec", 10)
	v.SetDefault("collect.allow_mock", true)

	// Output defaults
	v.SetDefault("output.dir", "data")
	v.SetDefault("output.formats", []string{"json", "csv", "text"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// applyTableDefaults fills any analysis table the config file left empty
// with the built-in defaults from tables.go.
func applyTableDefaults(cfg *Config) {
	if len(cfg.Brands.Competitors) == 0 {
		cfg.Brands.Competitors = append([]string(nil), DefaultCompetitors...)
	}
	if len(cfg.Brands.Variations) == 0 {
		cfg.Brands.Variations = copyTable(DefaultBrandVariations)
	}
	if len(cfg.Analysis.RelevantKeywords) == 0 {
		cfg.Analysis.RelevantKeywords = append([]string(nil), DefaultRelevantKeywords...)
	}
	if len(cfg.Analysis.StopWords) == 0 {
		cfg.Analysis.StopWords = append([]string(nil), DefaultStopWords...)
	}
	if len(cfg.Analysis.Themes) == 0 {
		cfg.Analysis.Themes = copyTable(DefaultThemes)
	}
	if len(cfg.Analysis.PositiveWords) == 0 {
		cfg.Analysis.PositiveWords = append([]string(nil), DefaultPositiveWords...)
	}
	if len(cfg.Analysis.NegativeWords) == 0 {
		cfg.Analysis.NegativeWords = append([]string(nil), DefaultNegativeWords...)
	}
	if len(cfg.Analysis.NegationWords) == 0 {
		cfg.Analysis.NegationWords = append([]string(nil), DefaultNegationWords...)
	}
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if tok := os.Getenv("SOVLENS_COLLECT_TWITTER_BEARER_TOKEN"); tok != "" {
		cfg.Collect.TwitterBearerToken = tok
	}
	if cfg.Collect.TwitterBearerToken == "" {
		cfg.Collect.TwitterBearerToken = os.Getenv("TWITTER_BEARER_TOKEN")
	}
}

// Validate reports configuration problems that would make a run
// meaningless. Missing API credentials are not an error: collection
// degrades to mock data and the caller is expected to surface that.
func (cfg *Config) Validate() []string {
	var issues []string
	if cfg.Brands.Focal == "" {
		issues = append(issues, "no focal brand configured")
	}
	if len(cfg.Brands.Competitors) == 0 {
		issues = append(issues, "no competitors defined")
	}
	if len(cfg.Collect.Keywords) == 0 {
		issues = append(issues, "no search keywords defined")
	}
	if w := cfg.Analysis.Weights; w.Mention+w.Engagement+w.Sentiment == 0 {
		issues = append(issues, "sov weights sum to zero")
	}
	if m := cfg.Brands.Matching; m != MatchSubstring && m != MatchToken {
		issues = append(issues, fmt.Sprintf("unknown matching mode %q", m))
	}
	return issues
}

func copyTable(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
