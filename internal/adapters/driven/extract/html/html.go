// Package html provides text extraction for HTML files.
package html

import (
	"context"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag          = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag           = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag        = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag            = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag             = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments       = regexp.MustCompile(`(?s)<!--.*?-->`)
	openBlockElements  = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	closeBlockElements = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	brTags             = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags             = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags            = regexp.MustCompile(`<[^>]+>`)
	multiSpaces        = regexp.MustCompile(`[ \t]+`)
)

// Extractor reads .html files and strips them down to readable text.
// Block elements become paragraph breaks so the downstream chunker
// sees the same shape it would get from a plain-text source.
type Extractor struct{}

// New creates an HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled file extensions.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Extract reads the file and returns its text content.
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

	text := stripHTML(string(data))

	if onProgress != nil {
		onProgress(100)
	}
	return text, nil
}

// stripHTML removes markup and extracts readable text content.
func stripHTML(content string) string {
	// Remove non-content regions entirely
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become paragraph breaks
	content = openBlockElements.ReplaceAllString(content, "\n\n")
	content = closeBlockElements.ReplaceAllString(content, "\n\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n\n")

	// Strip all remaining tags
	content = allTags.ReplaceAllString(content, "")

	// Decode HTML entities
	content = html.UnescapeString(content)

	// Collapse runs of spaces (but preserve newlines)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Trim each line; blank lines separate paragraphs
	lines := strings.Split(content, "\n")
	var (
		paragraphs []string
		current    []string
	)
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}
