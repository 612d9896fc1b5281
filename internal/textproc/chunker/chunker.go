// Package chunker splits long text into bounded-size pieces at natural
// boundaries so each piece can be sent to the rewrite step on its own.
package chunker

import "strings"

// DefaultTargetSize is the default chunk size in bytes.
const DefaultTargetSize = 6000

// maxLookback caps the boundary search window regardless of chunk size.
const maxLookback = 500

// Split partitions text into ordered chunks whose concatenation equals
// the input exactly. Near each multiple of targetSize a look-back window
// (20% of the target, capped) is searched for, in priority order: a
// paragraph break, a sentence end followed by whitespace, a single
// newline, a space. With no boundary in the window the text is cut at
// exactly targetSize, which guarantees progress on pathological input
// such as one giant unbroken word.
func Split(text string, targetSize int) []string {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	if text == "" {
		return nil
	}

	chunks := make([]string, 0, len(text)/targetSize+1)
	rest := text
	for len(rest) > targetSize {
		cut := boundaryCut(rest, targetSize)
		chunks = append(chunks, rest[:cut])
		rest = rest[cut:]
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

// boundaryCut returns the cut position for the next chunk of s, which
// is known to be longer than target.
func boundaryCut(s string, target int) int {
	lookback := target / 5
	if lookback > maxLookback {
		lookback = maxLookback
	}
	lo := target - lookback
	if lo < 1 {
		lo = 1
	}
	window := s[lo:target]

	if idx := lastParagraphBreak(window); idx >= 0 {
		// Split after the newline run, capped at target so the chunk
		// never exceeds it; a run straddling target continues into the
		// next chunk.
		cut := lo + idx
		for cut < target && s[cut] == '\n' {
			cut++
		}
		return cut
	}

	if idx := lastSentenceEnd(window); idx >= 0 {
		return lo + idx
	}

	if idx := strings.LastIndexByte(window, '\n'); idx >= 0 {
		return lo + idx + 1
	}

	if idx := strings.LastIndexByte(window, ' '); idx >= 0 {
		return lo + idx + 1
	}

	return target
}

// lastParagraphBreak returns the index of the start of the last run of
// two or more consecutive newlines in window, or -1.
func lastParagraphBreak(window string) int {
	idx := strings.LastIndex(window, "\n\n")
	if idx < 0 {
		return -1
	}
	// Walk back to the start of the newline run.
	for idx > 0 && window[idx-1] == '\n' {
		idx--
	}
	return idx
}

// lastSentenceEnd returns the position just after the last sentence-
// ending punctuation that is followed by whitespace, or -1.
func lastSentenceEnd(window string) int {
	for i := len(window) - 2; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			next := window[i+1]
			if next == ' ' || next == '\n' || next == '\t' {
				return i + 1
			}
		}
	}
	return -1
}
