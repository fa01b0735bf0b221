package config

// Built-in analysis tables for the Indian smart-fan market. They are the
// defaults for the corresponding Config fields; a config file may replace
// any of them wholesale. Components never read these directly — they
// receive the (possibly overridden) copies carried by Config.

// DefaultCompetitors are the tracked competitor brands, by display name.
var DefaultCompetitors = []string{
	"Havells", "Orient", "Bajaj", "Crompton", "Usha", "Symphony", "Voltas",
}

// DefaultBrandVariations maps each tracked brand (focal included, keyed
// lower-case) to the surface forms that count as a mention. Matching is
// substring-based by default, so short variations like "orient" will also
// hit inside longer words — a known false-positive source that is kept
// for parity with historical reports.
var DefaultBrandVariations = map[string][]string{
	"atomberg": {"atomberg", "atom berg", "atomburg", "atombergs"},
	"havells":  {"havells", "havell", "havels"},
	"orient":   {"orient", "oriental"},
	"bajaj":    {"bajaj", "bajaj electricals"},
	"crompton": {"crompton", "crompton greaves"},
	"usha":     {"usha", "usha international"},
	"symphony": {"symphony", "symphony air"},
	"voltas":   {"voltas", "voltas air"},
}

// DefaultKeywords are the search queries an analysis run fans out over.
var DefaultKeywords = []string{
	"smart fan", "smart ceiling fan", "IoT fan", "wifi fan",
	"intelligent fan", "BLDC fan", "energy efficient fan",
}

// DefaultRelevantKeywords is the domain vocabulary used for keyword
// extraction from cleaned post text.
var DefaultRelevantKeywords = []string{
	"smart", "intelligent", "iot", "wifi", "bluetooth", "app", "remote", "control",
	"energy", "efficient", "bldc", "motor", "speed", "timer", "alexa", "google",
	"home", "automation", "ceiling", "fan", "quiet", "silent", "noise", "review",
	"rating", "price", "cost", "buy", "purchase", "install", "setup", "quality",
	"durable", "warranty", "service", "support", "compare", "vs", "versus",
	"best", "top", "recommended",
}

// DefaultStopWords are excluded from keyword extraction.
var DefaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of",
	"with", "by", "is", "are", "was", "were", "be", "been", "being", "have",
	"has", "had", "do", "does", "did", "will", "would", "could", "should",
}

// DefaultThemes maps each theme tag to the substrings that trigger it.
var DefaultThemes = map[string][]string{
	"review":         {"review", "rating", "stars", "feedback", "opinion", "experience"},
	"comparison":     {"vs", "versus", "compare", "comparison", "better", "best"},
	"technical":      {"bldc", "motor", "rpm", "watts", "energy", "efficiency", "iot"},
	"installation":   {"install", "setup", "mounting", "wiring", "assembly"},
	"purchase":       {"buy", "price", "cost", "deal", "discount", "sale", "offer"},
	"support":        {"service", "support", "warranty", "customer", "help"},
	"smart_features": {"smart", "app", "wifi", "bluetooth", "alexa", "google", "remote"},
	"performance":    {"speed", "quiet", "silent", "air", "flow", "cooling", "noise"},
}

// RelevantThemeTags are the themes that count toward the quality score.
var RelevantThemeTags = []string{
	"review", "comparison", "technical", "smart_features", "performance",
}

// DefaultPositiveWords is the positive lexicon for the built-in sentiment
// fallback.
var DefaultPositiveWords = []string{
	"excellent", "amazing", "great", "fantastic", "wonderful", "awesome",
	"outstanding", "superb", "brilliant", "perfect", "best", "love", "like",
	"good", "nice", "happy", "satisfied", "recommend", "impressed", "quality",
	"efficient", "smooth", "quiet", "reliable", "durable", "value", "worth",
	"smart", "innovative", "advanced", "modern", "sleek", "stylish",
}

// DefaultNegativeWords is the negative lexicon for the built-in sentiment
// fallback.
var DefaultNegativeWords = []string{
	"terrible", "awful", "bad", "horrible", "disappointing", "worst", "hate",
	"dislike", "poor", "cheap", "broken", "defective", "useless", "waste",
	"problem", "issue", "trouble", "difficult", "hard", "complicated", "noisy",
	"loud", "slow", "unreliable", "fragile", "expensive", "overpriced",
}

// DefaultNegationWords flip the polarity of nearby sentiment words.
var DefaultNegationWords = []string{
	"not", "no", "never", "none", "nobody", "nothing", "neither", "nowhere",
	"hardly", "scarcely", "barely", "don't", "doesn't", "didn't", "won't",
	"wouldn't", "shouldn't", "couldn't", "can't", "cannot",
}
