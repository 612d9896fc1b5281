package sanitise

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxParagraphLength bounds paragraph size in runes. Longer
// paragraphs are split so speech synthesis never receives an unbounded
// block. Tunable; the default mirrors the reference behaviour.
const DefaultMaxParagraphLength = 1000

// paragraphSplitWindow is how far back from the length limit a
// sentence, clause or word boundary is searched before a hard cut.
const paragraphSplitWindow = 200

var (
	// exoticSpacePattern covers non-breaking, zero-width and other
	// unusual space characters.
	exoticSpacePattern = regexp.MustCompile("[   -​  　\uFEFF]")

	// controlPattern covers control characters except newline and tab.
	controlPattern = regexp.MustCompile("[\\x00-\\x08\\x0b\\x0c\\x0e-\\x1f\\x7f-\\x9f]")

	// hyphenBreakPattern matches a word split across a line break.
	hyphenBreakPattern = regexp.MustCompile(`(\p{L})-\n(\p{L})`)

	// pageNumberPattern matches lines that are only a page marker.
	pageNumberPattern = regexp.MustCompile(`(?i)^\s*(?:seite|page|s\.)?\s*\d+\s*(?:von|of|/)?\s*\d*\s*$`)

	// spaceRunPattern collapses runs of spaces and tabs.
	spaceRunPattern = regexp.MustCompile(`[ \t]{2,}`)

	// blankLinePattern separates paragraphs.
	blankLinePattern = regexp.MustCompile(`\n[ \t]*\n+`)

	alnumPattern = regexp.MustCompile(`[\p{L}\p{N}]`)
)

// Sanitise normalises the merged document once after all chunks are
// processed: Unicode NFC, invisible characters, line endings, line-end
// hyphenation, junk lines, whitespace runs, and a paragraph rebuild
// that enforces maxParagraphLen (pass 0 for the default). After the
// call no paragraph is empty, purely symbolic or over the limit.
func Sanitise(text string, maxParagraphLen int) string {
	if maxParagraphLen <= 0 {
		maxParagraphLen = DefaultMaxParagraphLength
	}

	text = norm.NFC.String(text)
	text = exoticSpacePattern.ReplaceAllString(text, " ")
	text = controlPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hyphenBreakPattern.ReplaceAllString(text, "$1$2")
	text = dropJunkLines(text)
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return rebuildParagraphs(text, maxParagraphLen)
}

// dropJunkLines removes lines without any alphanumeric character and
// lines that are only page markers.
func dropJunkLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			if !alnumPattern.MatchString(trimmed) || pageNumberPattern.MatchString(trimmed) {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// rebuildParagraphs splits on blank lines, drops empty or symbolic
// paragraphs, bounds paragraph length and rejoins with exactly one
// blank line between paragraphs.
func rebuildParagraphs(text string, maxLen int) string {
	var out []string
	for _, para := range blankLinePattern.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" || !alnumPattern.MatchString(para) {
			continue
		}
		out = append(out, splitLongParagraph(para, maxLen)...)
	}
	return strings.Join(out, "\n\n")
}

// splitLongParagraph cuts para into pieces of at most maxLen runes,
// preferring a sentence end, then a clause boundary, then a space
// inside the trailing search window, with a hard cut as last resort.
func splitLongParagraph(para string, maxLen int) []string {
	runes := []rune(para)
	if len(runes) <= maxLen {
		return []string{para}
	}

	var pieces []string
	for len(runes) > maxLen {
		cut := paragraphCut(runes, maxLen)
		piece := strings.TrimSpace(string(runes[:cut]))
		if piece != "" {
			pieces = append(pieces, piece)
		}
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}

func paragraphCut(runes []rune, maxLen int) int {
	lo := maxLen - paragraphSplitWindow
	if lo < 1 {
		lo = 1
	}

	// Sentence boundary first.
	for i := maxLen - 1; i > lo; i-- {
		switch runes[i-1] {
		case '.', '!', '?':
			if runes[i] == ' ' {
				return i
			}
		}
	}
	// Then clause boundary.
	for i := maxLen - 1; i > lo; i-- {
		switch runes[i-1] {
		case ',', ';', ':':
			if runes[i] == ' ' {
				return i
			}
		}
	}
	// Then any word boundary.
	for i := maxLen - 1; i > lo; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return maxLen
}
