package domain

import "time"

// Document is the raw extracted text for one preparation run.
// It is immutable once extracted; the preparation service owns it
// for the duration of a single run.
type Document struct {
	// Source is a human-readable origin label (usually the file name).
	Source string

	// Text is the full raw text as delivered by the extractor.
	Text string
}

// Chunk is a contiguous substring of a document, the unit of work
// sent to the rewrite step. Chunks are produced in order and the
// concatenation of all chunk texts reproduces the document exactly.
type Chunk struct {
	// Text is the chunk content.
	Text string

	// Offset is the byte offset of the chunk within the document.
	Offset int

	// Position is the ordinal position within the document.
	Position int
}

// TokenUsage accumulates prompt and output token counts across chunks.
// Counts are monotonically non-decreasing within a run and reset at
// run start. Chunks handled by the local fallback contribute nothing.
type TokenUsage struct {
	PromptTokens int
	OutputTokens int
}

// Add merges another usage sample into the accumulator.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.OutputTokens += other.OutputTokens
}

// Total returns the combined token count.
func (u TokenUsage) Total() int {
	return u.PromptTokens + u.OutputTokens
}

// PrepareResult is the outcome of a completed preparation run.
type PrepareResult struct {
	// Transcript is the final speech-ready text including pause tags.
	Transcript string

	// Usage is the accumulated token usage of the delegated rewrite path.
	Usage TokenUsage

	// Chunks is the number of chunks the document was split into.
	Chunks int

	// FallbackChunks counts chunks that were handled by the local
	// rule-based rewrite after the delegated path failed.
	FallbackChunks int

	// Pauses holds the detected directive lines (meditation mode only).
	Pauses []DetectedPause

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
