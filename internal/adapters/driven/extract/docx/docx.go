// Package docx provides text extraction for Word documents.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads .docx files. Only the main document part is read;
// headers, footers and comments are skipped since they are not part
// of the narration.
type Extractor struct{}

// New creates a DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled file extensions.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract opens the archive and returns the document text, one line
// per paragraph with blank lines between them.
func (e *Extractor) Extract(ctx context.Context, path string, onProgress driven.ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if onProgress != nil {
		onProgress(0)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	content, err := documentPart(&reader.Reader)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("read %s: no document part", path)
	}

	text, err := parseDocumentXML(content)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}

	if onProgress != nil {
		onProgress(100)
	}
	return text, nil
}

// documentPart returns the raw bytes of word/document.xml.
func documentPart(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, nil
}

// documentXML mirrors the parts of word/document.xml we care about.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts the paragraph text from the document part.
// Empty paragraphs collapse into the blank line between neighbours.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	var paragraphs []string
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
