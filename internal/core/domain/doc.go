// Package domain defines the core business entities for the text preparer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The raw extracted text for one preparation run
//   - Chunk: A bounded slice of a document sent to the rewrite step
//   - CleaningOptions: The full configuration snapshot for one run
//   - DetectedPause: An operator-authored pause directive found in the text
//   - TokenUsage: Accumulated prompt/output token counts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
