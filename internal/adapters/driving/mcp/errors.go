// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants prepare text and scan pause directives through
// the same pipeline the CLI uses.
package mcp

import "errors"

// ErrMissingPreparer is returned when the preparation service is not provided.
var ErrMissingPreparer = errors.New("mcp: preparer is required")
