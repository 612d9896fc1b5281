package driven

import (
	"context"
	"time"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// SessionStore persists preparation results keyed by a filename-
// derived string. Persistence is a convenience around the pipeline,
// not part of it: storage failures (quota, IO) must be surfaced as
// recoverable warnings by the caller, never as pipeline errors.
type SessionStore interface {
	// Save stores or replaces the result for key.
	Save(ctx context.Context, key string, result domain.PrepareResult) error

	// Load returns the stored result or domain.ErrNotFound.
	Load(ctx context.Context, key string) (*domain.PrepareResult, error)

	// List returns metadata for all stored sessions, newest first.
	List(ctx context.Context) ([]SessionInfo, error)

	// Delete removes a session. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// SessionInfo describes one stored session.
type SessionInfo struct {
	Key       string
	Chunks    int
	SavedAt   time.Time
	SizeBytes int
}
