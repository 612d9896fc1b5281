package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure PresetStore implements the interface.
var _ driven.PresetStore = (*PresetStore)(nil)

// presetNamePattern restricts names to filesystem-safe characters.
var presetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// PresetStore is a file-based implementation of driven.PresetStore
// using TOML. Each preset is one file in the presets directory so
// users can edit, share and version them directly.
type PresetStore struct {
	mu  sync.RWMutex
	dir string
}

// presetFile is the on-disk TOML layout of a preset.
type presetFile struct {
	Mode                string            `toml:"mode"`
	Chapters            string            `toml:"chapters"`
	Lists               string            `toml:"lists"`
	Hyphenation         string            `toml:"hyphenation"`
	RemoveURLs          bool              `toml:"remove_urls"`
	RemoveEmails        bool              `toml:"remove_emails"`
	RemoveReferences    bool              `toml:"remove_references"`
	RemoveTOC           bool              `toml:"remove_toc"`
	FixTypography       bool              `toml:"fix_typography"`
	ExpandAbbreviations bool              `toml:"expand_abbreviations"`
	PhoneticCorrection  bool              `toml:"phonetic_correction"`
	CustomInstruction   string            `toml:"custom_instruction,omitempty"`
	Replacements        []replacementFile `toml:"replacements,omitempty"`
	Pauses              pausesFile        `toml:"pauses"`
}

type replacementFile struct {
	Search  string `toml:"search"`
	Replace string `toml:"replace"`
}

type pausesFile struct {
	ParagraphEnabled bool    `toml:"paragraph_enabled"`
	ParagraphSeconds float64 `toml:"paragraph_seconds"`
	SentenceEnabled  bool    `toml:"sentence_enabled"`
	SentenceSeconds  float64 `toml:"sentence_seconds"`
}

// NewPresetStore creates a new TOML-based preset store.
// If presetDir is empty, defaults to ~/.aufbereiter/presets.
func NewPresetStore(presetDir string) (*PresetStore, error) {
	if presetDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		presetDir = filepath.Join(home, ".aufbereiter", "presets")
	}

	// Ensure directory exists
	if err := os.MkdirAll(presetDir, 0700); err != nil {
		return nil, err
	}

	return &PresetStore{dir: presetDir}, nil
}

// Save stores or replaces a preset.
func (s *PresetStore) Save(name string, opts domain.CleaningOptions) error {
	if !presetNamePattern.MatchString(name) {
		return fmt.Errorf("invalid preset name %q: %w", name, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(toFile(opts))
	if err != nil {
		return fmt.Errorf("marshalling preset: %w", err)
	}

	return os.WriteFile(s.path(name), data, 0600)
}

// Get returns the preset or domain.ErrNotFound.
func (s *PresetStore) Get(name string) (*domain.CleaningOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var pf presetFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing preset %q: %w", name, err)
	}

	opts := fromFile(pf).Normalised()
	return &opts, nil
}

// List returns all preset names, sorted.
func (s *PresetStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a preset or returns domain.ErrNotFound.
func (s *PresetStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// Path returns the preset directory.
func (s *PresetStore) Path() string {
	return s.dir
}

func (s *PresetStore) path(name string) string {
	return filepath.Join(s.dir, name+".toml")
}

func toFile(opts domain.CleaningOptions) presetFile {
	pf := presetFile{
		Mode:                opts.Mode.String(),
		Chapters:            string(opts.ChapterStyle),
		Lists:               string(opts.ListStyle),
		Hyphenation:         string(opts.Hyphenation),
		RemoveURLs:          opts.RemoveURLs,
		RemoveEmails:        opts.RemoveEmails,
		RemoveReferences:    opts.RemoveReferences,
		RemoveTOC:           opts.RemoveTOC,
		FixTypography:       opts.FixTypography,
		ExpandAbbreviations: opts.ExpandAbbreviations,
		PhoneticCorrection:  opts.PhoneticCorrection,
		CustomInstruction:   opts.CustomInstruction,
		Pauses: pausesFile{
			ParagraphEnabled: opts.Pauses.ParagraphEnabled,
			ParagraphSeconds: opts.Pauses.ParagraphSeconds,
			SentenceEnabled:  opts.Pauses.SentenceEnabled,
			SentenceSeconds:  opts.Pauses.SentenceSeconds,
		},
	}
	for _, r := range opts.Replacements {
		pf.Replacements = append(pf.Replacements, replacementFile{Search: r.Search, Replace: r.Replace})
	}
	return pf
}

func fromFile(pf presetFile) domain.CleaningOptions {
	opts := domain.CleaningOptions{
		Mode:                domain.ProcessingMode(pf.Mode),
		ChapterStyle:        domain.ChapterStyle(pf.Chapters),
		ListStyle:           domain.ListStyle(pf.Lists),
		Hyphenation:         domain.HyphenStyle(pf.Hyphenation),
		RemoveURLs:          pf.RemoveURLs,
		RemoveEmails:        pf.RemoveEmails,
		RemoveReferences:    pf.RemoveReferences,
		RemoveTOC:           pf.RemoveTOC,
		FixTypography:       pf.FixTypography,
		ExpandAbbreviations: pf.ExpandAbbreviations,
		PhoneticCorrection:  pf.PhoneticCorrection,
		CustomInstruction:   pf.CustomInstruction,
		Pauses: domain.PauseConfiguration{
			ParagraphEnabled: pf.Pauses.ParagraphEnabled,
			ParagraphSeconds: pf.Pauses.ParagraphSeconds,
			SentenceEnabled:  pf.Pauses.SentenceEnabled,
			SentenceSeconds:  pf.Pauses.SentenceSeconds,
		},
	}
	for _, r := range pf.Replacements {
		opts.Replacements = append(opts.Replacements, domain.ReplacementRule{Search: r.Search, Replace: r.Replace})
	}
	return opts
}
