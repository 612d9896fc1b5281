package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
	"github.com/MagickCodes/text-aufbereiter/internal/logger"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/sanitise"
)

// DefaultAttemptTimeout bounds one delegated rewrite attempt.
const DefaultAttemptTimeout = 130 * time.Second

// maxAttempts is the number of delegated tries before falling back.
const maxAttempts = 2

var errEmptyResponse = errors.New("rewrite returned empty text")

// watchdog runs the delegated rewrite for one chunk and guarantees a
// usable result. It tries the rewriter up to maxAttempts times, each
// under its own timeout, then falls back to the local rewrite. The
// only error it can return is cancellation of the parent context.
type watchdog struct {
	rewriter driven.Rewriter
	timeout  time.Duration
}

// chunkResult is the watchdog's verdict for one chunk.
type chunkResult struct {
	// Text is the cleaned chunk, never empty for non-empty input.
	Text string

	// Usage accumulates token counts across delegated attempts.
	Usage domain.TokenUsage

	// Fallback is true when the local rewrite produced the text.
	Fallback bool
}

// process cleans one chunk. instruction is the mode-specific system
// prompt; text is the prepared chunk (expanded, replaced, protected).
func (w *watchdog) process(ctx context.Context, instruction, text string, opts domain.CleaningOptions) (chunkResult, error) {
	var result chunkResult

	if w.rewriter != nil {
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			cleaned, usage, err := w.attempt(ctx, instruction, text)
			result.Usage.Add(usage)
			if err == nil {
				result.Text = cleaned
				return result, nil
			}
			if ctx.Err() != nil {
				// Cancellation is the caller's, not the model's; do not
				// mask it with a fallback result.
				return chunkResult{}, ctx.Err()
			}
			logger.Warn("rewrite attempt %d/%d failed: %v", attempt, maxAttempts, err)
		}
		logger.Warn("all rewrite attempts failed, using local fallback")
	}

	cleaned, err := localRewrite(ctx, text, opts)
	if err != nil {
		return chunkResult{}, err
	}
	result.Text = cleaned
	result.Fallback = true
	return result, nil
}

// attempt runs one delegated rewrite under the per-attempt timeout,
// collects the stream and sanitises the response. An empty response
// after sanitisation counts as a failure.
func (w *watchdog) attempt(ctx context.Context, instruction, text string) (string, domain.TokenUsage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	deltas, errs := w.rewriter.Rewrite(attemptCtx, driven.RewriteRequest{
		System: instruction,
		Input:  text,
	})

	var (
		builder strings.Builder
		usage   domain.TokenUsage
	)
	for deltas != nil || errs != nil {
		select {
		case delta, ok := <-deltas:
			if !ok {
				deltas = nil
				continue
			}
			builder.WriteString(delta.Text)
			if delta.Usage != nil {
				usage.Add(*delta.Usage)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return "", usage, fmt.Errorf("rewrite stream: %w", err)
			}
		case <-attemptCtx.Done():
			return "", usage, attemptCtx.Err()
		}
	}

	cleaned := sanitise.CleanResponse(builder.String())
	if strings.TrimSpace(cleaned) == "" {
		return "", usage, errEmptyResponse
	}
	return cleaned, usage, nil
}
