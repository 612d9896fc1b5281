package pause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFindsDirectives(t *testing.T) {
	text := "Atme tief ein.\n" +
		"PAUSE für 14 reale Minuten einatmen\n" +
		"Atme wieder aus.\n" +
		"lange Stille\n" +
		"(Pause von 30 Sekunden)\n" +
		"Und weiter im Text."

	pauses := Scan(text)
	require.Len(t, pauses, 3)

	assert.Equal(t, 2, pauses[0].Line)
	assert.Equal(t, "PAUSE für 14 reale Minuten einatmen", pauses[0].OriginalText)
	assert.Equal(t, 840.0, pauses[0].Suggested)

	assert.Equal(t, 4, pauses[1].Line)
	assert.Equal(t, "lange Stille", pauses[1].OriginalText)

	assert.Equal(t, 5, pauses[2].Line)
	assert.Equal(t, 30.0, pauses[2].Suggested)
}

func TestScanOneDetectionPerLine(t *testing.T) {
	// Line matches family (a) at the start AND family (d) bracketed.
	text := "Pause jetzt (Stille für 10 Sekunden)"
	pauses := Scan(text)

	require.Len(t, pauses, 1)
	assert.Equal(t, 1, pauses[0].Line)
}

func TestScanEmptyOnPlainText(t *testing.T) {
	text := "Nur gewöhnlicher Text.\nOhne jede Anweisung.\n\nNoch ein Absatz."
	assert.Empty(t, Scan(text))
}

func TestScanAssignsUniqueIDs(t *testing.T) {
	text := "Pause\nPause\nPause"
	pauses := Scan(text)

	require.Len(t, pauses, 3)
	seen := map[string]bool{}
	for _, p := range pauses {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestScanBracketedDirectiveLabel(t *testing.T) {
	text := "Der Text läuft weiter [kurze Stille] und endet."
	pauses := Scan(text)

	require.Len(t, pauses, 1)
	assert.Equal(t, "kurze Stille", pauses[0].Instruction)
	assert.Equal(t, "Der Text läuft weiter [kurze Stille] und endet.", pauses[0].OriginalText)
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{"PAUSE für 14 reale Minuten einatmen", 840},
		{"Pause für 30 Sekunden", 30},
		{"Stille von 2 Minuten", 120},
		{"Pause für 1 Stunde", 3600},
		{"Pause für 1,5 Minuten", 90},
		{"silence for 10 seconds", 10},
		{"Pause für eine Minute", 60},
		{"Stille für zwei Minuten", 120},
		{"Pause für fünf Sekunden", 5},
		{"Pause 20", 20},
		{"Pause auf Seite 500", 15}, // bare number above limit: default
		{"Pause", 15},
		{"lange Stille", 15},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDuration(tt.line))
		})
	}
}
