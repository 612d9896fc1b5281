package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("word ", 500),
		strings.Repeat("Satz eins. Satz zwei! Satz drei? ", 200),
		strings.Repeat("Absatz.\n\nNeuer Absatz mit etwas Text darin.\n\n", 100),
		strings.Repeat("x", 10_000),
		"zeile\n" + strings.Repeat("noch eine zeile\n", 300),
	}

	for _, size := range []int{1, 7, 100, 1000, 6000} {
		for _, input := range inputs {
			chunks := Split(input, size)
			assert.Equal(t, input, strings.Join(chunks, ""),
				"concatenation must reproduce input (size %d)", size)
		}
	}
}

func TestSplitPrefersParagraphBreak(t *testing.T) {
	text := strings.Repeat("a", 80) + ".\n\n" + strings.Repeat("b", 80)
	chunks := Split(text, 100)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"),
		"first chunk should end at the paragraph break, got %q", chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], "b"))
}

func TestSplitChunksNeverExceedTarget(t *testing.T) {
	// A newline run straddling the target must be cut at the target,
	// not walked past it.
	straddling := strings.Repeat("a", 95) + ".\n\n\n\n\n\n\n\n\n\n" + strings.Repeat("b", 80)

	inputs := []string{
		straddling,
		strings.Repeat("Absatz.\n\n", 50),
		strings.Repeat("Satz eins. Satz zwei. ", 30),
	}

	for _, input := range inputs {
		chunks := Split(input, 100)
		for i, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 100, "chunk %d of %q", i, input[:20])
		}
		assert.Equal(t, input, strings.Join(chunks, ""))
	}
}

func TestSplitPrefersSentenceEnd(t *testing.T) {
	text := strings.Repeat("a", 90) + ". " + strings.Repeat("b", 90)
	chunks := Split(text, 100)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "."),
		"first chunk should end after the sentence punctuation, got %q", chunks[0])
}

func TestSplitForcesCutOnUnbrokenWord(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := Split(text, 100)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
}

func TestSplitNoEmptyChunks(t *testing.T) {
	text := strings.Repeat("Ein Satz. ", 100)
	for _, size := range []int{10, 50, 333} {
		for _, chunk := range Split(text, size) {
			assert.NotEmpty(t, chunk)
		}
	}
}

func TestSplitDefaultsTargetSize(t *testing.T) {
	text := strings.Repeat("a", 100)
	chunks := Split(text, 0)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}
