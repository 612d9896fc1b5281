package driven

import "github.com/MagickCodes/text-aufbereiter/internal/core/domain"

// PresetStore persists named CleaningOptions snapshots so users can
// reuse a configuration across runs.
type PresetStore interface {
	// Save stores or replaces a preset.
	Save(name string, opts domain.CleaningOptions) error

	// Get returns the preset or domain.ErrNotFound.
	Get(name string) (*domain.CleaningOptions, error)

	// List returns all preset names, sorted.
	List() ([]string, error)

	// Delete removes a preset or returns domain.ErrNotFound.
	Delete(name string) error
}
