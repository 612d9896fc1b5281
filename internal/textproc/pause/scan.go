package pause

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// The four directive pattern families, tested per line in this order.
// The first matching family wins; a line is never counted twice.
var (
	// (a) optional intensity adjective + keyword at line start.
	familyLineStart = regexp.MustCompile(
		`(?i)^\s*(?:(?:kurze|lange|kleine|große|grosse|short|long|small|big)\s+)?(?:pause|stille|nachspüren|silence)\b`)

	// (b) keyword followed by a duration phrase at line start.
	familyDuration = regexp.MustCompile(
		`(?i)^\s*(?:pause|stille|nachspüren|silence)\s+(?:für|von|for|of)\b`)

	// (c) keyword + für/von/of/colon anywhere on the line.
	familyInline = regexp.MustCompile(
		`(?i)\b(?:pause|stille|nachspüren|silence)\s*(?:für|von|for|of|:)`)

	// (d) keyword wrapped in brackets or parentheses.
	familyBracketed = regexp.MustCompile(
		`(?i)[\[(]\s*([^\])\n]*\b(?:pause|stille|nachspüren|silence)\b[^\])\n]*)[\])]`)
)

// Scan finds every operator-authored pause directive in text. Each
// line is tested against the pattern families in order; the first
// match produces exactly one DetectedPause with the verbatim line, a
// 1-based line number, a review label and a suggested duration.
func Scan(text string) []domain.DetectedPause {
	var pauses []domain.DetectedPause

	for i, line := range strings.Split(text, "\n") {
		instruction, matched := matchDirective(line)
		if !matched {
			continue
		}
		pauses = append(pauses, domain.DetectedPause{
			ID:           uuid.New().String(),
			Line:         i + 1,
			OriginalText: line,
			Instruction:  instruction,
			Suggested:    ExtractDuration(line),
		})
	}

	return pauses
}

// matchDirective tests the families in listed order and returns the
// instruction label for the first hit.
func matchDirective(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	if familyLineStart.MatchString(line) || familyDuration.MatchString(line) ||
		familyInline.MatchString(line) {
		return trimmed, true
	}
	if m := familyBracketed.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
