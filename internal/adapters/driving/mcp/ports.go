package mcp

import (
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Preparer runs the preparation pipeline.
	Preparer driving.Preparer

	// Sessions exposes stored runs as resources. Optional.
	Sessions driven.SessionStore

	// Presets exposes saved presets as a resource. Optional.
	Presets driven.PresetStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Preparer == nil {
		return ErrMissingPreparer
	}
	// Sessions and Presets are optional
	return nil
}
