// Package sanitise cleans text at two points of the pipeline: the raw
// response of the delegated rewrite step (per chunk) and the merged
// document after all chunks are processed.
package sanitise

import (
	"regexp"
	"strings"
)

// codeFencePattern matches fenced code-block delimiters with or
// without a language tag, anywhere in the response.
var codeFencePattern = regexp.MustCompile("```[a-zA-Z0-9]*\n?")

// preamblePattern matches a conversational first line the rewrite step
// sometimes prepends ("Hier ist der bereinigte Text:", "Of course! ...").
// The line must either end in a colon or consist of the phrase alone.
var preamblePattern = regexp.MustCompile(
	`(?i)^\s*(?:hier ist|hier sind|gerne|natürlich|selbstverständlich|here is|here are|here's|of course|certainly|sure|i have|ich habe)\b(?:[^\n:]*:[ \t]*\n?|[.,!]?[ \t]*\n)`)

// trailingNotePattern matches a final line that is entirely a
// parenthesised or bracketed explanatory note.
var trailingNotePattern = regexp.MustCompile(
	`(?i)\n[ \t]*[\[(](?:anmerkung|hinweis|note|anm\.)\b[^\n]*[\])][ \t]*$`)

// wrappingQuotes are quote pairs that may span the whole response.
var wrappingQuotes = [][2]string{
	{`"`, `"`},
	{"„", "“"},
	{"«", "»"},
	{"'", "'"},
}

// CleanResponse strips artifacts a rewrite response might contain:
// code fences, a single pair of wrapping quotes, preamble phrases,
// trailing explanatory notes and markdown emphasis markers. It is
// pure, total and safe to over-apply; clean text passes unchanged.
func CleanResponse(raw string) string {
	text := codeFencePattern.ReplaceAllString(raw, "")
	text = strings.TrimSpace(text)
	text = stripWrappingQuotes(text)
	text = preamblePattern.ReplaceAllString(text, "")
	text = trailingNotePattern.ReplaceAllString(text, "")
	text = stripEmphasis(text)
	return strings.TrimSpace(text)
}

// stripWrappingQuotes removes one pair of quotes spanning the entire
// text. Inner quotes stay untouched.
func stripWrappingQuotes(text string) string {
	for _, pair := range wrappingQuotes {
		if len(text) > len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			inner := strings.TrimSuffix(strings.TrimPrefix(text, pair[0]), pair[1])
			// Only unwrap when the pair really spans the whole text,
			// not when two separate quotes happen to frame it.
			if !strings.Contains(inner, pair[0]) && !strings.Contains(inner, pair[1]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return text
}

// stripEmphasis drops bold and italic markdown markers. Protection
// placeholders and pause tags contain neither asterisks nor double
// underscores, so they pass through unharmed.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.ReplaceAll(s, "*", "")
}
