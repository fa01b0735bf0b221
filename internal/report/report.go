// Package report writes analysis results to disk in the configured
// formats. JSON carries the full result object, CSV carries the
// flattened metrics row, and text is a human-readable summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/internal/pipeline"
	"github.com/sovlens/sovlens/pkg/models"
)

// Format specifies an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// AllFormats returns every supported format in write order.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatText}
}

const timestampLayout = "20060102_150405"

// Writer persists analysis results under a directory.
type Writer struct {
	dir     string
	formats []Format
	log     zerolog.Logger
}

// New builds a writer from the output configuration. Unknown format
// names are skipped with a warning; an empty list means all formats.
func New(cfg config.OutputConfig, log zerolog.Logger) *Writer {
	w := &Writer{
		dir: cfg.Dir,
		log: log.With().Str("component", "report").Logger(),
	}
	if w.dir == "" {
		w.dir = "data"
	}

	for _, name := range cfg.Formats {
		switch f := Format(name); f {
		case FormatJSON, FormatCSV, FormatText:
			w.formats = append(w.formats, f)
		default:
			w.log.Warn().Str("format", name).Msg("unknown output format, skipping")
		}
	}
	if len(w.formats) == 0 {
		w.formats = AllFormats()
	}
	return w
}

// Write saves the result in every configured format and returns the
// paths written. Files share one timestamp so a run's outputs sort
// together.
func (w *Writer) Write(result *pipeline.Result) ([]string, error) {
	if result == nil {
		return nil, fmt.Errorf("report: result is nil")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}

	stamp := result.Metadata.AnalysisDate
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	ts := stamp.Format(timestampLayout)

	var paths []string
	for _, f := range w.formats {
		var (
			path string
			err  error
		)
		switch f {
		case FormatJSON:
			path = filepath.Join(w.dir, "sov_analysis_"+ts+".json")
			err = w.writeJSON(path, result)
		case FormatCSV:
			path = filepath.Join(w.dir, "sov_metrics_"+ts+".csv")
			err = w.writeCSV(path, result.Metrics)
		case FormatText:
			path = filepath.Join(w.dir, "sov_summary_"+ts+".txt")
			err = os.WriteFile(path, []byte(RenderText(result)), 0o644)
		}
		if err != nil {
			return paths, fmt.Errorf("report: %s: %w", f, err)
		}
		paths = append(paths, path)
	}

	w.log.Info().Strs("paths", paths).Msg("results saved")
	return paths, nil
}

func (w *Writer) writeJSON(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeCSV writes the metrics as a single header+value row, with one
// column per platform in the breakdown.
func (w *Writer) writeCSV(path string, m *models.SoVMetrics) error {
	if m == nil {
		m = models.EmptySoVMetrics()
	}

	header := []string{
		"overall_sov",
		"mention_share",
		"engagement_share",
		"sentiment_positive_share",
		"visibility_score",
		"market_position_rank",
		"total_posts_analyzed",
		"focal_mentions",
		"competitor_mentions",
	}
	row := []string{
		formatFloat(m.OverallSoV),
		formatFloat(m.MentionShare.Focal),
		formatFloat(m.EngagementShare.Focal),
		formatFloat(m.SentimentShare.Positive),
		formatFloat(m.VisibilityScore),
		strconv.Itoa(m.CompetitivePositioning.MarketPositionRank),
		strconv.Itoa(m.TotalPostsAnalyzed),
		strconv.Itoa(m.FocalMentions),
		strconv.Itoa(m.CompetitorMentions),
	}

	for _, platform := range sortedPlatforms(m.PlatformBreakdown) {
		header = append(header, "sov_"+string(platform))
		row = append(row, formatFloat(m.PlatformBreakdown[platform]))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.WriteAll([][]string{header, row}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func sortedPlatforms(m map[models.Platform]float64) []models.Platform {
	out := make([]models.Platform, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
