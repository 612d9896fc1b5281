package pause

import (
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// Apply appends a pause tag to the end of every line listed in pauses,
// after the user has reviewed and possibly adjusted the durations. The
// tag always follows the instruction text so speech synthesis reads
// the instruction first, then pauses. Lines without an entry pass
// through unchanged.
func Apply(text string, pauses []domain.DetectedPause) string {
	if len(pauses) == 0 {
		return text
	}

	byLine := make(map[int]domain.DetectedPause, len(pauses))
	for _, p := range pauses {
		byLine[p.Line] = p
	}

	lines := strings.Split(text, "\n")
	for i := range lines {
		p, ok := byLine[i+1]
		if !ok {
			continue
		}
		// Skip lines that already carry a tag near the end, so
		// re-applying cannot stack tags.
		if domain.PauseTagPattern.MatchString(lines[i]) {
			continue
		}
		lines[i] = lines[i] + " " + domain.FormatPauseTag(p.Suggested)
	}

	return strings.Join(lines, "\n")
}
