package driving

import (
	"context"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// Preparer turns raw extracted text into a speech-ready transcript.
type Preparer interface {
	// Prepare runs the full pipeline on a document. In standard mode
	// the returned transcript is final, pause tags included. In
	// meditation mode the transcript is cleaned but untagged; the
	// result carries the detected pauses for review, and ApplyPauses
	// finishes the run. Cancellation of ctx aborts the run and
	// surfaces as context.Canceled; it is an outcome, not a failure.
	Prepare(ctx context.Context, doc domain.Document, opts domain.CleaningOptions) (*domain.PrepareResult, error)

	// ScanPauses detects directive lines in text and returns advisory
	// warnings alongside. Pure; does not modify anything.
	ScanPauses(text string) ([]domain.DetectedPause, []string)

	// ApplyPauses appends reviewed pause tags to their lines in the
	// transcript. Pure; line numbers refer to the transcript as
	// returned by Prepare.
	ApplyPauses(transcript string, pauses []domain.DetectedPause) string
}

// ProgressSink receives run progress. Implementations must be cheap;
// the service calls them from the processing loop.
type ProgressSink interface {
	// Report is called with percent (0-100) and a human-readable
	// remaining-time label, strictly in chunk order.
	Report(percent float64, eta string)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(percent float64, eta string)

// Report implements ProgressSink.
func (f ProgressFunc) Report(percent float64, eta string) {
	f(percent, eta)
}
