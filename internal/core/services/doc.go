// Package services contains the core business logic: the preparation
// driver that sequences the pipeline per document, the watchdog that
// keeps the delegated rewrite step from ever stalling a run, the
// deterministic local fallback rewrite, and the mode-specific
// instruction builders.
package services
