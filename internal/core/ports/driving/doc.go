// Package driving provides interfaces for primary/inbound adapters:
// the preparation service as seen by the CLI, the review TUI and the
// MCP server.
package driving
