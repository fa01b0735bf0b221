// SoVLens — Share of Voice analysis for the smart fan market.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/internal/pipeline"
	"github.com/sovlens/sovlens/internal/report"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sovlens",
	Short: "SoVLens — Share of Voice analysis for the smart fan market",
	Long: `SoVLens measures a focal brand's Share of Voice across video,
microblog, and web search platforms: mention share, engagement share,
sentiment share, visibility, and competitive positioning, with
threshold-based findings and recommendations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log = newLogger(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLogger builds the process logger from the logging config.
func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	if lc.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SoVLens %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full Share of Voice analysis",
	Long: `Collect posts for the configured keywords from every configured
platform, normalize and score them, and write the resulting metrics,
insights, and reports to the output directory.

Examples:
  sovlens analyze
  sovlens analyze --keywords "smart fan,bldc fan" --platforms video,microblog
  sovlens analyze --results 25 --output ./out --formats json,text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyAnalyzeFlags(cmd)

		if problems := cfg.Validate(); len(problems) > 0 {
			return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
		}

		runner, err := pipeline.New(cfg, log)
		if err != nil {
			return err
		}

		result, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}

		paths, err := report.New(cfg.Output, log).Write(result)
		if err != nil {
			return err
		}

		fmt.Print(report.RenderText(result))
		fmt.Println("\nDetailed results:")
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("keywords", "", "comma-separated keywords to analyze (overrides config)")
	analyzeCmd.Flags().String("platforms", "", "comma-separated platforms to search (video, microblog, search)")
	analyzeCmd.Flags().Int("results", 0, "max results per platform per keyword (overrides config)")
	analyzeCmd.Flags().String("output", "", "output directory (overrides config)")
	analyzeCmd.Flags().String("formats", "", "comma-separated output formats (json, csv, text)")
	analyzeCmd.Flags().Bool("no-mock", false, "disable sample-data fallback for unavailable platforms")
}

// applyAnalyzeFlags folds analyze flag overrides into the loaded config.
func applyAnalyzeFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("keywords"); v != "" {
		cfg.Collect.Keywords = splitList(v)
	}
	if v, _ := cmd.Flags().GetString("platforms"); v != "" {
		cfg.Collect.Platforms = splitList(v)
	}
	if v, _ := cmd.Flags().GetInt("results"); v > 0 {
		cfg.Collect.MaxResults = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Dir = v
	}
	if v, _ := cmd.Flags().GetString("formats"); v != "" {
		cfg.Output.Formats = splitList(v)
	}
	if v, _ := cmd.Flags().GetBool("no-mock"); v {
		cfg.Collect.AllowMock = false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and platform availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  SoVLens — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Focal brand:  %s\n", cfg.Brands.Focal)
		fmt.Printf("    Competitors:  %s\n", strings.Join(cfg.Brands.Competitors, ", "))
		fmt.Printf("    Keywords:     %s\n", strings.Join(cfg.Collect.Keywords, ", "))
		fmt.Printf("    Platforms:    %s\n", strings.Join(cfg.Collect.Platforms, ", "))
		fmt.Printf("    Max results:  %d\n", cfg.Collect.MaxResults)
		fmt.Printf("    Output:       %s (%s)\n", cfg.Output.Dir, strings.Join(cfg.Output.Formats, ", "))
		fmt.Println()

		fmt.Println("  Credentials:")
		status := "❌ not set (sample data fallback)"
		if cfg.Collect.TwitterBearerToken != "" {
			status = "✅ set"
		}
		fmt.Printf("    %-25s %s\n", "Twitter bearer token:", status)

		if problems := cfg.Validate(); len(problems) > 0 {
			fmt.Println()
			fmt.Println("  Problems:")
			for _, p := range problems {
				fmt.Printf("    ⚠️  %s\n", p)
			}
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
