package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_handlePrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("prepares standard text with pause tags", func(t *testing.T) {
		server, err := NewServer(&Ports{Preparer: newLocalPreparer()})
		require.NoError(t, err)

		input := PrepareInput{Text: "Erster Absatz hier.\n\nZweiter Absatz dort."}
		_, output, err := server.handlePrepare(ctx, nil, input)

		require.NoError(t, err)
		assert.Contains(t, output.Transcript, "[PAUSE 2s]")
		assert.Equal(t, 1, output.Chunks)
		assert.Equal(t, 1, output.FallbackChunks)
		assert.Empty(t, output.Pauses)
	})

	t.Run("meditation mode applies detected pauses", func(t *testing.T) {
		server, err := NewServer(&Ports{Preparer: newLocalPreparer()})
		require.NoError(t, err)

		input := PrepareInput{
			Text: "Atme ein.\nPAUSE für 30 Sekunden halten\nAtme aus.",
			Mode: "meditation",
		}
		_, output, err := server.handlePrepare(ctx, nil, input)

		require.NoError(t, err)
		assert.Contains(t, output.Transcript, "[PAUSE 30s]")
		require.Len(t, output.Pauses, 1)
		assert.Equal(t, 30.0, output.Pauses[0].SuggestedSeconds)
		assert.Equal(t, "[PAUSE 30s]", output.Pauses[0].Tag)
	})

	t.Run("returns error on empty text", func(t *testing.T) {
		server, err := NewServer(&Ports{Preparer: newLocalPreparer()})
		require.NoError(t, err)

		_, _, err = server.handlePrepare(ctx, nil, PrepareInput{Text: "   "})
		require.Error(t, err)
	})
}

func TestServer_handleScan(t *testing.T) {
	t.Run("returns detected pauses", func(t *testing.T) {
		server, err := NewServer(&Ports{Preparer: newLocalPreparer()})
		require.NoError(t, err)

		input := ScanInput{Text: "Text.\nSTILLE für zwei Minuten\nMehr Text."}
		_, output, err := server.handleScan(context.Background(), nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Pauses, 1)
		assert.Equal(t, 2, output.Pauses[0].Line)
		assert.Equal(t, 120.0, output.Pauses[0].SuggestedSeconds)
		assert.Empty(t, output.Warnings)
	})

	t.Run("warns when nothing is found", func(t *testing.T) {
		server, err := NewServer(&Ports{Preparer: newLocalPreparer()})
		require.NoError(t, err)

		_, output, err := server.handleScan(context.Background(), nil, ScanInput{Text: "Nur Prosa."})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		require.Len(t, output.Warnings, 1)
	})
}

func TestNewServerRequiresPreparer(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingPreparer)
}
