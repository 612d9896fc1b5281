package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates the extracted text contains nothing
	// to prepare. Terminal for the run; the caller may return to
	// configuration and retry with a different file.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrNoPausesFound indicates meditation mode found no directive
	// lines. Terminal for the run; the message shown to the user must
	// explain the required line-start keywords.
	ErrNoPausesFound = errors.New("no pause directives found")

	// ErrUnsupportedFormat indicates no extractor is registered for
	// the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrRewriteUnavailable indicates the delegated rewrite service is
	// not configured. Runs still succeed via the local fallback; this
	// error only gates features that require the delegated path.
	ErrRewriteUnavailable = errors.New("rewrite service unavailable")
)
