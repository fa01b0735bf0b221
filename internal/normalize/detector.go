package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sovlens/sovlens/internal/config"
)

var reTokenPunct = regexp.MustCompile(`[^\w]`)

// Detector performs brand, keyword, and theme detection against cleaned
// post text. All tables come from configuration; the detector itself is
// stateless and safe for concurrent use.
type Detector struct {
	focal      string
	variations map[string][]string
	matching   string

	vocabulary []string
	stopWords  map[string]struct{}
	themes     map[string][]string
	themeOrder []string
}

// NewDetector builds a detector from the brand and analysis tables.
func NewDetector(brands config.BrandsConfig, analysis config.AnalysisConfig) *Detector {
	stops := make(map[string]struct{}, len(analysis.StopWords))
	for _, w := range analysis.StopWords {
		stops[w] = struct{}{}
	}

	// Stable iteration so Themes slices come out in a fixed order.
	order := make([]string, 0, len(analysis.Themes))
	for tag := range analysis.Themes {
		order = append(order, tag)
	}
	sort.Strings(order)

	return &Detector{
		focal:      strings.ToLower(brands.Focal),
		variations: brands.Variations,
		matching:   brands.Matching,
		vocabulary: analysis.RelevantKeywords,
		stopWords:  stops,
		themes:     analysis.Themes,
		themeOrder: order,
	}
}

// MentionsFocal reports whether any focal-brand variation appears in the
// cleaned text.
func (d *Detector) MentionsFocal(text string) bool {
	return d.mentionsBrand(text, d.focal)
}

// CompetitorMentions returns the display names of every competitor whose
// variations hit the cleaned text. A brand is counted at most once per
// post, on its first matching variation.
func (d *Detector) CompetitorMentions(text string, competitors []string) []string {
	var found []string
	for _, name := range competitors {
		if d.mentionsBrand(text, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}

func (d *Detector) mentionsBrand(text, brand string) bool {
	variations, ok := d.variations[brand]
	if !ok {
		variations = []string{brand}
	}
	for _, v := range variations {
		if d.match(text, v) {
			return true
		}
	}
	return false
}

func (d *Detector) match(text, needle string) bool {
	if d.matching == config.MatchToken {
		return matchToken(text, needle)
	}
	return strings.Contains(text, needle)
}

// matchToken requires the needle to appear on token boundaries, so
// "orient" no longer hits inside "orientation". Multi-word variations
// are checked word-by-word against consecutive tokens.
func matchToken(text, needle string) bool {
	tokens := strings.Fields(text)
	parts := strings.Fields(needle)
	if len(parts) == 0 {
		return false
	}
	for i := 0; i+len(parts) <= len(tokens); i++ {
		hit := true
		for j, p := range parts {
			if reTokenPunct.ReplaceAllString(tokens[i+j], "") != p {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	return false
}

// Keywords returns the domain-vocabulary words present in the cleaned
// text, deduplicated in first-occurrence order. Token punctuation is
// stripped before lookup so "fan," still counts as "fan".
func (d *Detector) Keywords(text string) []string {
	inVocab := make(map[string]struct{}, len(d.vocabulary))
	for _, w := range d.vocabulary {
		inVocab[w] = struct{}{}
	}

	var keywords []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		word := reTokenPunct.ReplaceAllString(tok, "")
		if word == "" {
			continue
		}
		if _, stop := d.stopWords[word]; stop {
			continue
		}
		if _, ok := inVocab[word]; !ok {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// Themes returns the theme tags whose trigger terms appear in the
// cleaned text, in alphabetical tag order.
func (d *Detector) Themes(text string) []string {
	var tags []string
	for _, tag := range d.themeOrder {
		for _, term := range d.themes[tag] {
			if d.match(text, term) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}
