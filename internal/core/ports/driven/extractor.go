package driven

import "context"

// ProgressFunc reports extraction progress in percent (0-100).
type ProgressFunc func(percent float64)

// Extractor converts one file format into raw text. Extraction is the
// upstream boundary of the pipeline; a failure here is terminal for
// the run and the pipeline never attempts extraction itself.
type Extractor interface {
	// Extensions returns the file extensions this extractor handles,
	// lower-case and including the dot (".txt").
	Extensions() []string

	// Extract reads the file and returns its raw text. onProgress may
	// be nil.
	Extract(ctx context.Context, path string, onProgress ProgressFunc) (string, error)
}

// ExtractorRegistry selects an extractor by file extension.
type ExtractorRegistry interface {
	// Register adds an extractor for its declared extensions.
	Register(e Extractor)

	// ForFile returns the extractor for the file's extension or
	// domain.ErrUnsupportedFormat.
	ForFile(path string) (Extractor, error)
}
