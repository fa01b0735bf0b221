package normalize

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sovlens/sovlens/internal/config"
	"github.com/sovlens/sovlens/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Brands: config.BrandsConfig{
			Focal:       "atomberg",
			Competitors: append([]string(nil), config.DefaultCompetitors...),
			Variations:  config.DefaultBrandVariations,
			Matching:    config.MatchSubstring,
		},
		Analysis: config.AnalysisConfig{
			RelevantKeywords: config.DefaultRelevantKeywords,
			StopWords:        config.DefaultStopWords,
			Themes:           config.DefaultThemes,
			Workers:          2,
		},
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercase and urls",
			in:   "Check OUT https://example.com/review and www.atomberg.com today",
			want: "check out and today",
		},
		{
			name: "emails and handles",
			in:   "Mail info@atomberg.com or ping @atomberg about #smartfan",
			want: "mail or ping atomberg about smartfan",
		},
		{
			name: "repeated punctuation",
			in:   "Amazing!!! Really??? Wait.....",
			want: "amazing! really? wait...",
		},
		{
			name: "special characters",
			in:   "Smart-fan (2024) @ just $99 — worth it?",
			want: "smart-fan 2024 just 99 worth it?",
		},
		{
			name: "whitespace collapse",
			in:   "  too \t many\n\nspaces  ",
			want: "too many spaces",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.in)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := CleanText(got); again != got {
				t.Errorf("CleanText not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestDetectorBrandMentions(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg.Brands, cfg.Analysis)

	tests := []struct {
		name            string
		text            string
		wantFocal       bool
		wantCompetitors []string
	}{
		{
			name:      "canonical focal",
			text:      "atomberg fans are efficient",
			wantFocal: true,
		},
		{
			name:      "split variation",
			text:      "the atom berg renesa model",
			wantFocal: true,
		},
		{
			name:      "typo variation",
			text:      "my atomburg fan is quiet",
			wantFocal: true,
		},
		{
			name:            "single competitor",
			text:            "havells stealth air is loud",
			wantCompetitors: []string{"Havells"},
		},
		{
			name:            "competitor typo",
			text:            "bought a havell fan last year",
			wantCompetitors: []string{"Havells"},
		},
		{
			name:            "multiple brands",
			text:            "atomberg vs crompton vs bajaj comparison",
			wantFocal:       true,
			wantCompetitors: []string{"Bajaj", "Crompton"},
		},
		{
			name: "no brands",
			text: "generic ceiling fan review",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.MentionsFocal(tt.text); got != tt.wantFocal {
				t.Errorf("MentionsFocal(%q) = %v, want %v", tt.text, got, tt.wantFocal)
			}
			got := d.CompetitorMentions(tt.text, cfg.Brands.Competitors)
			if !reflect.DeepEqual(got, tt.wantCompetitors) {
				t.Errorf("CompetitorMentions(%q) = %v, want %v", tt.text, got, tt.wantCompetitors)
			}
		})
	}
}

func TestDetectorTokenMatching(t *testing.T) {
	cfg := testConfig()
	text := "the orientation of the fan matters"

	sub := NewDetector(cfg.Brands, cfg.Analysis)
	if got := sub.CompetitorMentions(text, cfg.Brands.Competitors); len(got) != 1 || got[0] != "Orient" {
		t.Errorf("substring mode = %v, want [Orient]", got)
	}

	cfg.Brands.Matching = config.MatchToken
	tok := NewDetector(cfg.Brands, cfg.Analysis)
	if got := tok.CompetitorMentions(text, cfg.Brands.Competitors); got != nil {
		t.Errorf("token mode = %v, want no mentions", got)
	}
	if !tok.MentionsFocal("love my atomberg fan") {
		t.Error("token mode should still match whole tokens")
	}
	if !tok.MentionsFocal("upgraded to atom berg this summer") {
		t.Error("token mode should match multi-word variations")
	}
}

func TestDetectorKeywords(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg.Brands, cfg.Analysis)

	got := d.Keywords("the smart fan with smart app, great price and fan speed")
	want := []string{"smart", "fan", "app", "price", "speed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}

	if got := d.Keywords(""); got != nil {
		t.Errorf("Keywords(empty) = %v, want nil", got)
	}
}

func TestDetectorThemes(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg.Brands, cfg.Analysis)

	got := d.Themes("bldc motor review of this quiet fan")
	want := []string{"performance", "review", "technical"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Themes() = %v, want %v", got, want)
	}

	if got := d.Themes("nothing relevant here"); got != nil {
		t.Errorf("Themes(irrelevant) = %v, want nil", got)
	}
}

func TestProcessEnrichesPost(t *testing.T) {
	n := New(testConfig(), zerolog.Nop())

	post := models.Post{
		ID:       "v1",
		Platform: models.PlatformVideo,
		Title:    "Atomberg vs Havells!!!",
		Text:     "BLDC motor review https://example.com",
	}

	got := n.Process(post)

	if got.TextContent != "atomberg vs havells! bldc motor review" {
		t.Errorf("TextContent = %q", got.TextContent)
	}
	if !got.MentionsFocal {
		t.Error("should mention focal brand")
	}
	if !reflect.DeepEqual(got.MentionsCompetitors, []string{"Havells"}) {
		t.Errorf("MentionsCompetitors = %v, want [Havells]", got.MentionsCompetitors)
	}
	if got.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", got.WordCount)
	}
	if got.ContentLength != len(got.TextContent) {
		t.Errorf("ContentLength = %d, want %d", got.ContentLength, len(got.TextContent))
	}
	if got.ProcessedAt.IsZero() {
		t.Error("ProcessedAt should be set")
	}

	// Raw fields stay untouched.
	if got.Title != post.Title || got.Text != post.Text {
		t.Error("raw fields were modified")
	}
}

func TestCorpusNormalization(t *testing.T) {
	n := New(testConfig(), zerolog.Nop())

	corpus := models.Corpus{
		"smart fan": {
			models.PlatformVideo: {
				{ID: "v1", Title: "Atomberg Review"},
				{ID: "v2", Title: "Havells Unboxing"},
			},
			models.PlatformSearch: {
				{ID: "s1", Title: "Best smart fans 2024"},
			},
		},
		"bldc fan": {
			models.PlatformMicroblog: {
				{ID: "m1", Text: "crompton bldc fan is noisy"},
			},
		},
	}

	out, err := n.Corpus(context.Background(), corpus)
	if err != nil {
		t.Fatalf("Corpus() error: %v", err)
	}

	if out.TotalPosts() != 4 {
		t.Errorf("TotalPosts() = %d, want 4", out.TotalPosts())
	}

	v1 := out["smart fan"][models.PlatformVideo][0]
	if !v1.MentionsFocal {
		t.Error("v1 should mention focal brand")
	}
	m1 := out["bldc fan"][models.PlatformMicroblog][0]
	if !reflect.DeepEqual(m1.MentionsCompetitors, []string{"Crompton"}) {
		t.Errorf("m1 competitors = %v, want [Crompton]", m1.MentionsCompetitors)
	}

	// Input corpus is untouched.
	if corpus["smart fan"][models.PlatformVideo][0].TextContent != "" {
		t.Error("input corpus was modified")
	}
}
