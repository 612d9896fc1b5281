package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// The local fallback rewrite. Pure pattern work honoring the same
// CleaningOptions as the delegated path; it cannot fail except on
// cancellation, which is what makes the watchdog's termination
// guarantee hold. The context is checked between sub-steps because
// large inputs make this CPU-bound.

var (
	chapterLinePattern = regexp.MustCompile(
		`(?im)^[ \t]*(?:kapitel|chapter|teil|abschnitt|prolog|epilog)\b[^\n]*$`)

	numberedHeadingPattern = regexp.MustCompile(`(?m)^[ \t]*\d+(?:\.\d+)*\.?[ \t]+\p{Lu}[^\n]{0,60}$`)

	listMarkerPattern = regexp.MustCompile(`(?m)^[ \t]*(?:[-•*]|\d+[.)])[ \t]+`)

	urlPattern   = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	referencePattern = regexp.MustCompile(`\[\d+\]|\(\d{1,3}\)`)

	tocLinePattern = regexp.MustCompile(`(?m)^[^\n]*\.{3,}[ \t]*\d+[ \t]*$`)

	hyphenJoinPattern = regexp.MustCompile(`(\p{L})-\n(\p{L})`)
)

// typographyReplacer normalises quotes, dashes and ellipses for
// speech synthesis.
var typographyReplacer = strings.NewReplacer(
	"„", "\"", "“", "\"", "”", "\"", "«", "\"", "»", "\"",
	"‚", "'", "‘", "'", "’", "'",
	"–", "-", "—", "-", "‒", "-",
	"…", "...",
)

// localRewrite is the deterministic fallback for one chunk.
func localRewrite(ctx context.Context, text string, opts domain.CleaningOptions) (string, error) {
	steps := []func(string) string{
		func(s string) string {
			if opts.Hyphenation == domain.HyphenJoin {
				s = hyphenJoinPattern.ReplaceAllString(s, "$1$2")
			}
			return s
		},
		func(s string) string {
			if opts.Mode == domain.ModeStandard && opts.ChapterStyle == domain.ChapterRemove {
				s = chapterLinePattern.ReplaceAllString(s, "")
				s = numberedHeadingPattern.ReplaceAllString(s, "")
			}
			return s
		},
		func(s string) string {
			if opts.Mode == domain.ModeStandard && opts.ListStyle == domain.ListProse {
				s = listMarkerPattern.ReplaceAllString(s, "")
			}
			return s
		},
		func(s string) string {
			if opts.RemoveTOC {
				s = tocLinePattern.ReplaceAllString(s, "")
			}
			return s
		},
		func(s string) string {
			if opts.RemoveURLs {
				s = urlPattern.ReplaceAllString(s, "")
			}
			if opts.RemoveEmails {
				s = emailPattern.ReplaceAllString(s, "")
			}
			return s
		},
		func(s string) string {
			if opts.RemoveReferences {
				s = referencePattern.ReplaceAllString(s, "")
			}
			return s
		},
		func(s string) string {
			if opts.FixTypography {
				s = typographyReplacer.Replace(s)
			}
			return s
		},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text = step(text)
	}
	return text, nil
}
