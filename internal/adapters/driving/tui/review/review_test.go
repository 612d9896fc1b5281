package review

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

func testPauses() []domain.DetectedPause {
	return []domain.DetectedPause{
		{ID: "1", Line: 3, Instruction: "Atme tief ein", Suggested: 30},
		{ID: "2", Line: 7, Instruction: "PAUSE für 14 reale Minuten einatmen", Suggested: 840},
		{ID: "3", Line: 12, Instruction: "Stille halten", Suggested: 120},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func TestNewModel(t *testing.T) {
	m := NewModel(testPauses())

	assert.Len(t, m.entries, 3)
	assert.Equal(t, 0, m.cursor)
	assert.False(t, m.editing)
	assert.False(t, m.done)
	assert.False(t, m.aborted)
}

func TestModel_Init(t *testing.T) {
	m := NewModel(testPauses())

	assert.Nil(t, m.Init())
}

func TestModel_Update_Navigation(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, keyRune('j'))
	assert.Equal(t, 2, m.cursor)

	// Boundary at the last entry.
	m = update(t, m, keyRune('j'))
	assert.Equal(t, 2, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, keyRune('k'))
	m = update(t, m, keyRune('k'))
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Update_ToggleDrop(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('d'))
	assert.True(t, m.entries[0].dropped)

	m = update(t, m, keyRune('d'))
	assert.False(t, m.entries[0].dropped)
}

func TestModel_Update_EditSeconds(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('e'))
	require.True(t, m.editing)
	assert.Equal(t, "30", m.input.Value())

	m.input.SetValue("45.5")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing)
	assert.InDelta(t, 45.5, m.entries[0].pause.Suggested, 0.001)
}

func TestModel_Update_EditRejectsInvalidInput(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('e'))
	require.True(t, m.editing)

	m.input.SetValue("nicht eine Zahl")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Stays in editing mode and keeps the original duration.
	assert.True(t, m.editing)
	assert.InDelta(t, 30, m.entries[0].pause.Suggested, 0.001)
}

func TestModel_Update_EditCancel(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('e'))
	m.input.SetValue("999")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.InDelta(t, 30, m.entries[0].pause.Suggested, 0.001)
}

func TestModel_Update_EditIgnoredOnDroppedEntry(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('d'))
	m = update(t, m, keyRune('e'))

	assert.False(t, m.editing)
}

func TestModel_Update_Accept(t *testing.T) {
	m := NewModel(testPauses())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(Model)
	require.True(t, ok)

	assert.True(t, model.done)
	assert.NotNil(t, cmd)
}

func TestModel_Update_Abort(t *testing.T) {
	m := NewModel(testPauses())

	updated, cmd := m.Update(keyRune('q'))
	model, ok := updated.(Model)
	require.True(t, ok)

	assert.True(t, model.Aborted())
	assert.NotNil(t, cmd)
}

func TestFinalise_Accept(t *testing.T) {
	m := NewModel(testPauses())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	accepted, err := finalise(m)

	require.NoError(t, err)
	assert.Len(t, accepted, 3)
}

func TestFinalise_AbortIsNotAcceptAll(t *testing.T) {
	m := NewModel(testPauses())
	m = update(t, m, keyRune('q'))

	accepted, err := finalise(m)

	// Cancelling must not silently apply every suggestion.
	assert.ErrorIs(t, err, ErrAborted)
	assert.Nil(t, accepted)
}

func TestModel_Accepted(t *testing.T) {
	m := NewModel(testPauses())

	// Drop the middle entry and adjust the first.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, keyRune('d'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, keyRune('e'))
	m.input.SetValue("60")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	accepted := m.Accepted()

	require.Len(t, accepted, 2)
	assert.Equal(t, "1", accepted[0].ID)
	assert.InDelta(t, 60, accepted[0].Suggested, 0.001)
	assert.Equal(t, "3", accepted[1].ID)
}

func TestModel_View(t *testing.T) {
	m := NewModel(testPauses())

	out := m.View()

	assert.Contains(t, out, "Pausen prüfen")
	assert.Contains(t, out, "Zeile 3")
	assert.Contains(t, out, "[PAUSE 840s]")
}

func TestModel_View_DroppedMarker(t *testing.T) {
	m := NewModel(testPauses())

	m = update(t, m, keyRune('d'))

	assert.Contains(t, m.View(), "entfernt")
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "30", want: 30},
		{name: "decimal", input: "2.5", want: 2.5},
		{name: "german comma", input: "2,5", want: 2.5},
		{name: "padded", input: " 15 ", want: 15},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "below minimum", input: "0.01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeconds(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
