// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the delegated rewrite capability,
// document extraction, session persistence and configuration presets.
package driven
