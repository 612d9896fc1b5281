package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driving"
	"github.com/MagickCodes/text-aufbereiter/internal/logger"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/chunker"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/normalise"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/pause"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/protect"
	"github.com/MagickCodes/text-aufbereiter/internal/textproc/sanitise"
)

// requestsPerMinute paces delegated rewrite calls so long documents
// stay inside provider rate limits.
const requestsPerMinute = 20

// PrepareService drives the full preparation pipeline. It implements
// driving.Preparer.
type PrepareService struct {
	rewriter     driven.Rewriter
	sessions     driven.SessionStore
	progress     driving.ProgressSink
	chunkSize    int
	timeout      time.Duration
	maxParagraph int
	limiter      *rate.Limiter
}

var _ driving.Preparer = (*PrepareService)(nil)

// PrepareOption configures a PrepareService.
type PrepareOption func(*PrepareService)

// WithRewriter sets the delegated rewrite capability. Without one every
// chunk takes the local rule-based path.
func WithRewriter(r driven.Rewriter) PrepareOption {
	return func(s *PrepareService) { s.rewriter = r }
}

// WithSessionStore enables persisting results after each run.
func WithSessionStore(store driven.SessionStore) PrepareOption {
	return func(s *PrepareService) { s.sessions = store }
}

// WithProgress sets the sink for per-chunk progress reports.
func WithProgress(sink driving.ProgressSink) PrepareOption {
	return func(s *PrepareService) { s.progress = sink }
}

// WithChunkSize overrides the target chunk size in bytes.
func WithChunkSize(size int) PrepareOption {
	return func(s *PrepareService) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithAttemptTimeout overrides the per-attempt rewrite timeout.
func WithAttemptTimeout(d time.Duration) PrepareOption {
	return func(s *PrepareService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxParagraphLength overrides the post-sanitiser paragraph bound.
func WithMaxParagraphLength(n int) PrepareOption {
	return func(s *PrepareService) {
		if n > 0 {
			s.maxParagraph = n
		}
	}
}

// NewPrepareService constructs the pipeline service.
func NewPrepareService(opts ...PrepareOption) *PrepareService {
	s := &PrepareService{
		chunkSize:    chunker.DefaultTargetSize,
		timeout:      DefaultAttemptTimeout,
		maxParagraph: sanitise.DefaultMaxParagraphLength,
		limiter:      rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare runs the pipeline on one document.
func (s *PrepareService) Prepare(ctx context.Context, doc domain.Document, opts domain.CleaningOptions) (*domain.PrepareResult, error) {
	start := time.Now()
	opts = opts.Normalised()

	if strings.TrimSpace(doc.Text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	if opts.Mode == domain.ModeMeditation {
		// Directive lines are the whole point of this mode; a script
		// without any is rejected before spending rewrite calls on it.
		if len(pause.Scan(doc.Text)) == 0 {
			return nil, domain.ErrNoPausesFound
		}
	}

	chunks := chunker.Split(doc.Text, s.chunkSize)
	logger.Info("document %q split into %d chunks", doc.Source, len(chunks))

	dog := &watchdog{rewriter: s.rewriter, timeout: s.timeout}
	instruction := buildInstruction(opts)

	result := &domain.PrepareResult{Chunks: len(chunks)}
	cleaned := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := chunk
		if opts.ExpandAbbreviations {
			text = normalise.ExpandAbbreviations(text)
		}
		text = normalise.ApplyReplacements(text, opts.Replacements)

		var originals []string
		if opts.Mode == domain.ModeMeditation {
			text, originals = protect.Protect(text)
		}

		if s.rewriter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		res, err := dog.process(ctx, instruction, text, opts)
		if err != nil {
			return nil, err
		}
		result.Usage.Add(res.Usage)
		if res.Fallback {
			result.FallbackChunks++
		}

		text = res.Text
		if opts.Mode == domain.ModeMeditation {
			text = protect.Restore(text, originals)
		}
		if opts.PhoneticCorrection {
			text = normalise.ApplyPhonetic(text)
		}
		cleaned = append(cleaned, text)

		s.report(i+1, len(chunks), start)
	}

	transcript := sanitise.Sanitise(strings.Join(cleaned, "\n\n"), s.maxParagraph)

	switch opts.Mode {
	case domain.ModeMeditation:
		// Re-scan the cleaned transcript so the detected line numbers
		// refer to the text ApplyPauses will receive.
		result.Pauses = pause.Scan(transcript)
	default:
		transcript = pause.Inject(transcript, opts.Pauses)
	}

	result.Transcript = transcript
	result.Elapsed = time.Since(start)
	logger.Info("run finished in %s, %s", result.Elapsed.Round(time.Second), formatUsage(result.Usage))

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, doc.Source, *result); err != nil {
			logger.Warn("session save for %q failed: %v", doc.Source, err)
		}
	}

	return result, nil
}

// ScanPauses detects directive lines and returns advisory warnings.
func (s *PrepareService) ScanPauses(text string) ([]domain.DetectedPause, []string) {
	pauses := pause.Scan(text)
	return pauses, pause.Validate(pauses)
}

// ApplyPauses appends reviewed pause tags to their transcript lines.
func (s *PrepareService) ApplyPauses(transcript string, pauses []domain.DetectedPause) string {
	return pause.Apply(transcript, pauses)
}

// report publishes progress after chunk done of total.
func (s *PrepareService) report(done, total int, start time.Time) {
	if s.progress == nil {
		return
	}
	percent := float64(done) / float64(total) * 100
	eta := "0s"
	if done < total {
		perChunk := time.Since(start) / time.Duration(done)
		remaining := perChunk * time.Duration(total-done)
		eta = remaining.Round(time.Second).String()
	}
	s.progress.Report(percent, eta)
}

// formatUsage renders token usage for log output.
func formatUsage(u domain.TokenUsage) string {
	return fmt.Sprintf("%d prompt + %d output = %d tokens", u.PromptTokens, u.OutputTokens, u.Total())
}
