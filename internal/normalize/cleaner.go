package normalize

import (
	"regexp"
	"strings"
)

// ------------------------------------------------------------------
// Text cleaning pipeline. The steps run in a fixed order; running the
// pipeline on its own output returns the same string, which lets posts
// be re-processed safely.
// ------------------------------------------------------------------

var (
	reURL        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	reEmail      = regexp.MustCompile(`\S+@\S+`)
	reHandle     = regexp.MustCompile(`[@#](\w+)`)
	reBangs      = regexp.MustCompile(`[!]{2,}`)
	reQuestions  = regexp.MustCompile(`[?]{2,}`)
	reEllipsis   = regexp.MustCompile(`[.]{3,}`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reSpecials   = regexp.MustCompile(`[^\w\s.!?,;:\-]`)
)

// CleanText lowercases raw post text and strips URLs, email addresses,
// @/# sigils, repeated punctuation, and special characters, collapsing
// whitespace as it goes.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = reURL.ReplaceAllString(s, "")
	s = reEmail.ReplaceAllString(s, "")
	s = reHandle.ReplaceAllString(s, "$1")
	s = reBangs.ReplaceAllString(s, "!")
	s = reQuestions.ReplaceAllString(s, "?")
	s = reEllipsis.ReplaceAllString(s, "...")
	s = strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
	s = reSpecials.ReplaceAllString(s, " ")
	s = strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
	return s
}
