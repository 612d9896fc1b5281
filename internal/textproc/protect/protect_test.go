package protect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"nur text ohne direktiven",
		"PAUSE für 14 reale Minuten einatmen",
		"Atme ein.\nLange Pause\nAtme aus.",
		"Zeile eins\n(Stille)\nZeile drei\nkurze Pause für 30 Sekunden\nEnde",
		"  Pause mit führendem Leerraum\nund\tTabs\tin\tZeilen",
		"Stille\nStille\nStille",
		"Mitten im Satz eine [Pause von 2 Minuten] und weiter",
		"Absatz.\n\n\nNachspüren\n\nEnde.",
	}

	for _, input := range inputs {
		masked, originals := Protect(input)
		assert.Equal(t, input, Restore(masked, originals),
			"round trip must be exact for %q", input)
	}
}

func TestProtectMasksWholeLines(t *testing.T) {
	input := "Atme ein.\nLange Pause und nachspüren\nAtme aus."
	masked, originals := Protect(input)

	require.Len(t, originals, 1)
	assert.Equal(t, "Lange Pause und nachspüren", originals[0])
	assert.Equal(t, "Atme ein.\n[[PROTECTED_STAGE_DIRECTION_0]]\nAtme aus.", masked)
	assert.NotContains(t, masked, "Lange Pause")
}

func TestProtectIndexesInScanOrder(t *testing.T) {
	input := "Pause eins\ntext\nStille zwei\ntext\n(Pause drei)"
	masked, originals := Protect(input)

	require.Len(t, originals, 3)
	assert.Equal(t, "Pause eins", originals[0])
	assert.Equal(t, "Stille zwei", originals[1])
	assert.Equal(t, "(Pause drei)", originals[2])
	assert.Contains(t, masked, "[[PROTECTED_STAGE_DIRECTION_0]]")
	assert.Contains(t, masked, "[[PROTECTED_STAGE_DIRECTION_2]]")
}

func TestProtectPreservesInternalWhitespace(t *testing.T) {
	input := "  Pause \t mit   innerem   Leerraum  "
	masked, originals := Protect(input)

	require.Len(t, originals, 1)
	assert.Equal(t, input, originals[0])
	assert.Equal(t, input, Restore(masked, originals))
}

func TestIsDirective(t *testing.T) {
	directives := []string{
		"Pause",
		"PAUSE für 14 reale Minuten einatmen",
		"lange Stille",
		"Kurze Pause",
		"große Stille von 2 Minuten",
		"Nachspüren",
		"(Pause)",
		"[lange Stille]",
		"Text davor (Pause von 30 Sekunden) Text danach",
		"silence for 10 seconds",
	}
	for _, line := range directives {
		assert.True(t, IsDirective(line), "expected directive: %q", line)
	}

	notDirectives := []string{
		"Ein ganz normaler Satz.",
		"Die Pausentaste drücken", // keyword only as prefix of another word
		"Er machte weiter ohne Unterbrechung",
		"",
	}
	for _, line := range notDirectives {
		assert.False(t, IsDirective(line), "unexpected directive: %q", line)
	}
}

func TestProtectLeavesNonDirectiveTextUntouched(t *testing.T) {
	input := "Nur Prosa.\nNoch mehr Prosa."
	masked, originals := Protect(input)

	assert.Empty(t, originals)
	assert.Equal(t, input, masked)
}

func TestRestoreHandlesManyLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Pause\ntext dazwischen\n")
	}
	input := b.String()

	masked, originals := Protect(input)
	require.Len(t, originals, 50)
	assert.Equal(t, input, Restore(masked, originals))
}
