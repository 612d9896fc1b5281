package pause

import (
	"fmt"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// Advisory thresholds for suggested durations.
const (
	shortPauseSeconds = 2.0
	longPauseSeconds  = 1800.0
)

// NoPausesHint explains what the scanner looks for. Shown when a
// meditation document yields no directives.
const NoPausesHint = "Keine Pausen-Anweisungen gefunden. Zeilen müssen mit einem " +
	"Stichwort wie \"Pause\", \"Stille\" oder \"Nachspüren\" beginnen " +
	"(optional mit \"kurze\"/\"lange\" davor), z.B. \"Pause für 2 Minuten\"."

// Validate produces human-readable warnings for a scan result. The
// warnings are advisory only and never block application.
func Validate(pauses []domain.DetectedPause) []string {
	if len(pauses) == 0 {
		return []string{NoPausesHint}
	}

	var warnings []string
	for _, p := range pauses {
		if p.Suggested < shortPauseSeconds {
			warnings = append(warnings, fmt.Sprintf(
				"Zeile %d: sehr kurze Pause (%.1fs) – Absicht?", p.Line, p.Suggested))
		}
		if p.Suggested > longPauseSeconds {
			warnings = append(warnings, fmt.Sprintf(
				"Zeile %d: sehr lange Pause (%.0fs, über 30 Minuten)", p.Line, p.Suggested))
		}
	}
	return warnings
}
