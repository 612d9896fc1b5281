// Package protect masks operator-authored stage directions behind
// opaque placeholders before a chunk is handed to the delegated
// rewrite step, and restores them afterwards. The round trip is exact:
// Restore(Protect(x)) == x for every input, which is what guarantees
// the rewrite step cannot alter timing instructions no matter how it
// behaves.
package protect

import (
	"fmt"
	"regexp"
	"strings"
)

// PlaceholderPattern matches the placeholder tokens this package
// produces. Other passes mask these tokens before touching the text.
var PlaceholderPattern = regexp.MustCompile(`\[\[PROTECTED_STAGE_DIRECTION_\d+\]\]`)

// placeholder renders the token for line index i, unique per chunk.
func placeholder(i int) string {
	return fmt.Sprintf("[[PROTECTED_STAGE_DIRECTION_%d]]", i)
}

// Directive lines are matched whole. Three shapes count:
//
//  1. optional intensity adjective followed by a directive keyword at
//     the start of the line ("Lange Pause", "kurze Stille ...")
//  2. a directive keyword followed by a duration phrase
//     ("Pause für 2 Minuten", "Stille von 30 Sekunden")
//  3. a directive keyword wrapped in brackets or parentheses anywhere
//     on the line ("(Pause)", "[lange Stille]")
var directivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:(?:kurze|lange|kleine|große|grosse|short|long|small|big)\s+)?(?:pause|stille|nachspüren|silence)\b`),
	regexp.MustCompile(`(?i)^\s*(?:pause|stille|nachspüren|silence)\s+(?:für|von|for|of)\b`),
	regexp.MustCompile(`(?i)[\[(][^\])\n]*\b(?:pause|stille|nachspüren|silence)\b[^\])\n]*[\])]`),
}

// IsDirective reports whether line is a stage direction.
func IsDirective(line string) bool {
	for _, re := range directivePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Protect replaces every directive line of chunk in its entirety with
// an index-stamped placeholder and returns the masked text together
// with the original lines in scan order.
func Protect(chunk string) (string, []string) {
	lines := strings.Split(chunk, "\n")
	var originals []string

	for i, line := range lines {
		if line == "" || !IsDirective(line) {
			continue
		}
		lines[i] = placeholder(len(originals))
		originals = append(originals, line)
	}

	return strings.Join(lines, "\n"), originals
}

// Restore substitutes the original lines back for their placeholders.
// It is the exact inverse of Protect.
func Restore(text string, originals []string) string {
	for i, original := range originals {
		text = strings.Replace(text, placeholder(i), original, 1)
	}
	return text
}
