// Package pause implements the two mutually exclusive pause-annotation
// strategies: automatic structural injection at paragraph and sentence
// boundaries (standard mode) and scanning, reviewing and applying
// operator-authored directive lines (meditation mode).
package pause

import (
	"regexp"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/normalise"
)

// duplicateGuardRadius is the distance in bytes within which an
// existing pause tag suppresses a new insertion. Re-running injection
// on already tagged text therefore changes nothing.
const duplicateGuardRadius = 20

// paragraphBreakPattern matches two or more consecutive newlines.
var paragraphBreakPattern = regexp.MustCompile(`\n{2,}`)

// sentenceEndPattern matches sentence-ending punctuation followed by a
// single whitespace character. Decimal numbers never match because
// digit-dot-digit has no trailing whitespace.
var sentenceEndPattern = regexp.MustCompile(`[.!?][ \t\n]`)

// Inject inserts duration-tagged pause markers into text according to
// the structural pause configuration. The paragraph pass runs first
// (its pauses are longer); the sentence pass never tags a boundary the
// paragraph pass already covers. Inject is idempotent.
func Inject(text string, cfg domain.PauseConfiguration) string {
	if cfg.ParagraphEnabled {
		text = injectParagraph(text, cfg.ParagraphSeconds)
	}
	if cfg.SentenceEnabled {
		text = injectSentence(text, cfg.SentenceSeconds)
	}
	return text
}

// injectParagraph inserts a tag immediately after every paragraph
// break that has no tag within the guard radius.
func injectParagraph(text string, seconds float64) string {
	tag := domain.FormatPauseTag(seconds)
	tagLocs := domain.PauseTagPattern.FindAllStringIndex(text, -1)

	var b strings.Builder
	last := 0
	for _, loc := range paragraphBreakPattern.FindAllStringIndex(text, -1) {
		if tagNear(tagLocs, loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[1]])
		b.WriteString(tag)
		b.WriteString(" ")
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// injectSentence inserts a tag after sentence punctuation plus one
// whitespace character, skipping paragraph boundaries, abbreviations
// and positions already tagged.
func injectSentence(text string, seconds float64) string {
	tag := domain.FormatPauseTag(seconds)
	tagLocs := domain.PauseTagPattern.FindAllStringIndex(text, -1)

	var b strings.Builder
	last := 0
	for _, loc := range sentenceEndPattern.FindAllStringIndex(text, -1) {
		// Paragraph boundaries belong to the paragraph pass.
		if partOfParagraphBreak(text, loc) {
			continue
		}
		// A period closing a listed abbreviation does not end a sentence.
		if normalise.EndsWithAbbreviation(text[:loc[0]+1]) {
			continue
		}
		if tagNear(tagLocs, loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[1]])
		b.WriteString(tag)
		b.WriteString(" ")
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// partOfParagraphBreak reports whether the whitespace at the match is
// the start of (or directly followed by) a paragraph break.
func partOfParagraphBreak(text string, loc []int) bool {
	i := loc[0] + 1
	newlines := 0
	for i < len(text) {
		c := text[i]
		if c == '\n' {
			newlines++
			if newlines >= 2 {
				return true
			}
		} else if c != ' ' && c != '\t' {
			break
		}
		i++
	}
	return false
}

// tagNear reports whether any known tag lies within the guard radius
// of pos.
func tagNear(tagLocs [][]int, pos int) bool {
	for _, loc := range tagLocs {
		if loc[0] <= pos+duplicateGuardRadius && loc[1] >= pos-duplicateGuardRadius {
			return true
		}
	}
	return false
}
