// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - PresetStore: TOML-based cleaning-option presets
package file
