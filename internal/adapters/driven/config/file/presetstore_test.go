package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

func newTestStore(t *testing.T) *PresetStore {
	t.Helper()
	store, err := NewPresetStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	opts := domain.DefaultCleaningOptions()
	opts.Mode = domain.ModeMeditation
	opts.PhoneticCorrection = true
	opts.CustomInstruction = "Sanfte Sprache verwenden."
	opts.Replacements = []domain.ReplacementRule{{Search: "AG", Replace: "Aktiengesellschaft"}}
	opts.Pauses.SentenceEnabled = true
	opts.Pauses.SentenceSeconds = 1.5

	require.NoError(t, store.Save("meditation", opts))

	loaded, err := store.Get("meditation")
	require.NoError(t, err)

	assert.Equal(t, domain.ModeMeditation, loaded.Mode)
	// Meditation mode pins chapter handling on load.
	assert.Equal(t, domain.ChapterKeep, loaded.ChapterStyle)
	assert.True(t, loaded.PhoneticCorrection)
	assert.Equal(t, "Sanfte Sprache verwenden.", loaded.CustomInstruction)
	require.Len(t, loaded.Replacements, 1)
	assert.Equal(t, "Aktiengesellschaft", loaded.Replacements[0].Replace)
	assert.True(t, loaded.Pauses.SentenceEnabled)
	assert.Equal(t, 1.5, loaded.Pauses.SentenceSeconds)
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("fehlt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveRejectsUnsafeNames(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		err := store.Save(name, domain.DefaultCleaningOptions())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "name %q", name)
	}
}

func TestListSorted(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("zulu", domain.DefaultCleaningOptions()))
	require.NoError(t, store.Save("alpha", domain.DefaultCleaningOptions()))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zulu"}, names)
}

func TestListIgnoresForeignFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Path(), "notizen.txt"), []byte("x"), 0o600))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("kurz", domain.DefaultCleaningOptions()))
	require.NoError(t, store.Delete("kurz"))

	assert.ErrorIs(t, store.Delete("kurz"), domain.ErrNotFound)
}
