package driven

import (
	"context"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// Rewriter is the delegated rewrite capability: an external language
// model asked to clean one chunk under a system instruction. It is
// treated as unreliable by design. It may time out, return decorated
// or malformed text, or refuse; the watchdog absorbs every failure
// mode and its output is never trusted without sanitisation.
//
// Implementations may include:
//   - OpenAI-compatible chat APIs
//   - Ollama (local models)
type Rewriter interface {
	// Rewrite streams the completion for one chunk. Both channels are
	// closed when the call finishes; at most one error is sent. Deltas
	// may carry usage metadata alongside or instead of text.
	Rewrite(ctx context.Context, req RewriteRequest) (<-chan RewriteDelta, <-chan error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to the delegated path.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// RewriteRequest is the payload for one chunk rewrite.
type RewriteRequest struct {
	// System is the mode-specific instruction set.
	System string

	// Input is the chunk text, already abbreviation-expanded,
	// custom-replaced and (meditation mode) placeholder-masked.
	Input string
}

// RewriteDelta is one streamed piece of a rewrite response.
type RewriteDelta struct {
	// Text is the next fragment of the completion, possibly empty.
	Text string

	// Usage carries token counts when the provider reports them.
	Usage *domain.TokenUsage
}
