package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocx builds a minimal .docx archive with the given paragraphs.
func writeDocx(t *testing.T, paragraphs ...string) string {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "dokument.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtractor_Extensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().Extensions())
}

func TestExtractor_Extract(t *testing.T) {
	path := writeDocx(t, "Erster Absatz.", "Zweiter Absatz.")

	text, err := New().Extract(context.Background(), path, nil)

	require.NoError(t, err)
	assert.Equal(t, "Erster Absatz.\n\nZweiter Absatz.", text)
}

func TestExtractor_Extract_SkipsEmptyParagraphs(t *testing.T) {
	path := writeDocx(t, "Davor.", "", "Danach.")

	text, err := New().Extract(context.Background(), path, nil)

	require.NoError(t, err)
	assert.Equal(t, "Davor.\n\nDanach.", text)
}

func TestExtractor_Extract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaputt.docx")
	require.NoError(t, os.WriteFile(path, []byte("kein Archiv"), 0o644))

	_, err := New().Extract(context.Background(), path, nil)

	assert.Error(t, err)
}

func TestExtractor_Extract_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "leer.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = New().Extract(context.Background(), path, nil)

	assert.ErrorContains(t, err, "no document part")
}

func TestExtractor_Extract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, writeDocx(t, "egal"), nil)

	assert.ErrorIs(t, err, context.Canceled)
}
