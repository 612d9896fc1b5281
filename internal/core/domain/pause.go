package domain

import (
	"math"
	"regexp"
	"strconv"
)

// MinPauseSeconds is the smallest representable pause duration.
const MinPauseSeconds = 0.1

// DefaultSuggestedSeconds is used when a directive line carries no
// recognisable duration phrase.
const DefaultSuggestedSeconds = 15.0

// PauseTagPattern matches the pause tag wire format consumed by
// downstream speech synthesis: [PAUSE <n>s] with at most one decimal.
var PauseTagPattern = regexp.MustCompile(`\[PAUSE \d+(?:\.\d)?s\]`)

// FormatPauseTag renders a duration as a pause tag. The duration is
// rounded to one decimal place and clamped to MinPauseSeconds; whole
// numbers render without a decimal ("[PAUSE 840s]", "[PAUSE 2.5s]").
func FormatPauseTag(seconds float64) string {
	if seconds < MinPauseSeconds || math.IsNaN(seconds) {
		seconds = MinPauseSeconds
	}
	rounded := math.Round(seconds*10) / 10
	return "[PAUSE " + strconv.FormatFloat(rounded, 'f', -1, 64) + "s]"
}

// DetectedPause is one explicit directive found by the pause scanner.
// The suggested duration is mutable: the user may override it during
// review before the applier consumes the entry.
type DetectedPause struct {
	// ID uniquely identifies the detection within a run.
	ID string `json:"id"`

	// Line is the 1-based source line number of the directive.
	Line int `json:"line"`

	// OriginalText is the verbatim directive line.
	OriginalText string `json:"original_text"`

	// Instruction is a human-readable label shown during review.
	Instruction string `json:"instruction"`

	// Suggested is the proposed pause duration in seconds (>= 0.1).
	Suggested float64 `json:"suggested_seconds"`
}
