// Package plaintext provides text extraction for plain-text and
// Markdown files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var (
	// markdownLinkPattern rewrites [label](target) to its label.
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

	// markdownHeadingPattern strips leading heading markers.
	markdownHeadingPattern = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)

	// markdownImagePattern removes image embeds entirely.
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

	codeFencePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n?(.*?)```")
)

// Extractor reads .txt and .md files. Markdown files are lightly
// flattened: headings lose their markers, links collapse to their
// labels and images are dropped. Heavier cleanup is the pipeline's
// job, not the extractor's.
type Extractor struct{}

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled file extensions.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".text"}
}

// Extract reads the file and returns its raw text.
func (e *Extractor) Extract(ctx context.Context, path string, onProgress driven.ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if onProgress != nil {
		onProgress(0)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := decode(data)
	if isMarkdown(path) {
		text = flattenMarkdown(text)
	}

	if onProgress != nil {
		onProgress(100)
	}
	return text, nil
}

// decode interprets the raw bytes as UTF-8, falling back to
// Windows-1252 for legacy exports. A UTF-8 BOM is dropped.
func decode(data []byte) string {
	data = stripBOM(data)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xef && data[1] == 0xbb && data[2] == 0xbf {
		return data[3:]
	}
	return data
}

func isMarkdown(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// flattenMarkdown reduces Markdown syntax to readable text.
func flattenMarkdown(text string) string {
	text = markdownImagePattern.ReplaceAllString(text, "")
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	text = markdownHeadingPattern.ReplaceAllString(text, "")
	text = codeFencePattern.ReplaceAllString(text, "$1")
	return text
}
