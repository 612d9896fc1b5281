package domain

// ProcessingMode selects the overall preparation strategy.
type ProcessingMode string

// Available processing modes.
const (
	// ModeStandard cleans freely and inserts structural pauses at
	// paragraph and sentence boundaries.
	ModeStandard ProcessingMode = "standard"

	// ModeMeditation preserves wording and structure; pauses come from
	// operator-authored directive lines reviewed by the user.
	ModeMeditation ProcessingMode = "meditation"
)

// IsValid returns true if the processing mode is recognised.
func (m ProcessingMode) IsValid() bool {
	return m == ModeStandard || m == ModeMeditation
}

// String returns the string representation.
func (m ProcessingMode) String() string {
	return string(m)
}

// ChapterStyle controls how chapter markers are treated.
type ChapterStyle string

// Available chapter styles.
const (
	// ChapterKeep retains chapter markers verbatim.
	ChapterKeep ChapterStyle = "keep"

	// ChapterRemove strips chapter markers entirely.
	ChapterRemove ChapterStyle = "remove"

	// ChapterSpoken rewrites chapter markers into spoken announcements.
	ChapterSpoken ChapterStyle = "spoken"
)

// IsValid returns true if the chapter style is recognised.
func (s ChapterStyle) IsValid() bool {
	switch s {
	case ChapterKeep, ChapterRemove, ChapterSpoken:
		return true
	default:
		return false
	}
}

// ListStyle controls how bullet and numbered lists are treated.
type ListStyle string

// Available list styles.
const (
	// ListKeep retains list formatting.
	ListKeep ListStyle = "keep"

	// ListProse rewrites lists into flowing prose.
	ListProse ListStyle = "prose"
)

// IsValid returns true if the list style is recognised.
func (s ListStyle) IsValid() bool {
	return s == ListKeep || s == ListProse
}

// HyphenStyle controls how line-end hyphenation is treated.
type HyphenStyle string

// Available hyphenation styles.
const (
	// HyphenJoin rejoins words split across line breaks.
	HyphenJoin HyphenStyle = "join"

	// HyphenKeep leaves hyphenation untouched.
	HyphenKeep HyphenStyle = "keep"
)

// IsValid returns true if the hyphenation style is recognised.
func (s HyphenStyle) IsValid() bool {
	return s == HyphenJoin || s == HyphenKeep
}

// ReplacementRule is a user-supplied literal search/replace pair.
// Search strings are matched case-insensitively as literals, never
// as patterns.
type ReplacementRule struct {
	Search  string
	Replace string
}

// PauseConfiguration holds the structural pause settings for
// standard mode. It is ignored in meditation mode.
type PauseConfiguration struct {
	// ParagraphEnabled inserts a pause tag after every paragraph break.
	ParagraphEnabled bool

	// ParagraphSeconds is the paragraph pause duration in seconds.
	ParagraphSeconds float64

	// SentenceEnabled inserts a pause tag after every sentence end.
	SentenceEnabled bool

	// SentenceSeconds is the sentence pause duration in seconds.
	SentenceSeconds float64
}

// CleaningOptions is the complete configuration snapshot for one
// preparation run. Construct with DefaultCleaningOptions and adjust;
// call Normalised before handing it to the pipeline.
type CleaningOptions struct {
	// Mode selects standard or meditation processing.
	Mode ProcessingMode

	// ChapterStyle controls chapter-marker handling.
	// Forced to ChapterKeep in meditation mode.
	ChapterStyle ChapterStyle

	// ListStyle controls list handling.
	ListStyle ListStyle

	// Hyphenation controls line-end hyphen handling.
	Hyphenation HyphenStyle

	// Content-removal toggles.
	RemoveURLs       bool
	RemoveEmails     bool
	RemoveReferences bool
	RemoveTOC        bool

	// FixTypography normalises quotes, dashes and spacing.
	FixTypography bool

	// ExpandAbbreviations applies the built-in abbreviation table.
	ExpandAbbreviations bool

	// PhoneticCorrection applies the phonetic respelling table after
	// rewriting so speech synthesis pronounces known terms correctly.
	PhoneticCorrection bool

	// Replacements are user-defined literal rules, applied in order.
	Replacements []ReplacementRule

	// CustomInstruction is free text forwarded to the rewrite step.
	CustomInstruction string

	// Pauses configures structural pause injection (standard mode only).
	Pauses PauseConfiguration
}

// DefaultCleaningOptions returns the documented defaults for a run.
func DefaultCleaningOptions() CleaningOptions {
	return CleaningOptions{
		Mode:                ModeStandard,
		ChapterStyle:        ChapterSpoken,
		ListStyle:           ListProse,
		Hyphenation:         HyphenJoin,
		RemoveURLs:          true,
		RemoveEmails:        true,
		RemoveReferences:    true,
		RemoveTOC:           true,
		FixTypography:       true,
		ExpandAbbreviations: true,
		PhoneticCorrection:  false,
		Pauses: PauseConfiguration{
			ParagraphEnabled: true,
			ParagraphSeconds: 2.0,
			SentenceEnabled:  false,
			SentenceSeconds:  0.8,
		},
	}
}

// Normalised returns a copy with invariants enforced: meditation mode
// always keeps chapter markers verbatim, invalid enum values fall back
// to defaults, and pause durations are clamped to the minimum.
func (o CleaningOptions) Normalised() CleaningOptions {
	if !o.Mode.IsValid() {
		o.Mode = ModeStandard
	}
	if !o.ChapterStyle.IsValid() {
		o.ChapterStyle = ChapterSpoken
	}
	if !o.ListStyle.IsValid() {
		o.ListStyle = ListProse
	}
	if !o.Hyphenation.IsValid() {
		o.Hyphenation = HyphenJoin
	}
	if o.Mode == ModeMeditation {
		// Meditation scripts must retain structural markers verbatim.
		o.ChapterStyle = ChapterKeep
	}
	if o.Pauses.ParagraphSeconds < MinPauseSeconds {
		o.Pauses.ParagraphSeconds = MinPauseSeconds
	}
	if o.Pauses.SentenceSeconds < MinPauseSeconds {
		o.Pauses.SentenceSeconds = MinPauseSeconds
	}
	return o
}
