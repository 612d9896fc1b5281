// Package review provides the interactive pause review for meditation
// runs: every detected directive is listed with its suggested duration
// and the user can adjust or drop entries before the tags are applied.
package review

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driving/tui/styles"
	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// entry is one reviewable pause.
type entry struct {
	pause   domain.DetectedPause
	dropped bool
}

// Model is the bubbletea model for the pause review.
type Model struct {
	entries []entry
	cursor  int
	editing bool
	input   textinput.Model
	done    bool
	aborted bool
	styles  *styles.Styles
}

// NewModel creates a review model for the detected pauses.
func NewModel(pauses []domain.DetectedPause) Model {
	entries := make([]entry, len(pauses))
	for i, p := range pauses {
		entries[i] = entry{pause: p}
	}

	ti := textinput.New()
	ti.Placeholder = "Sekunden"
	ti.CharLimit = 8
	ti.Width = 10

	return Model{
		entries: entries,
		input:   ti,
		styles:  styles.DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}
	return m.updateBrowsing(keyMsg)
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "d", " ":
		if len(m.entries) > 0 {
			m.entries[m.cursor].dropped = !m.entries[m.cursor].dropped
		}

	case "e":
		if len(m.entries) > 0 && !m.entries[m.cursor].dropped {
			m.editing = true
			m.input.SetValue(formatSeconds(m.entries[m.cursor].pause.Suggested))
			return m, m.input.Focus()
		}

	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		if seconds, err := parseSeconds(m.input.Value()); err == nil {
			m.entries[m.cursor].pause.Suggested = seconds
			m.editing = false
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Pausen prüfen"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}

		line := fmt.Sprintf("Zeile %d: %s", e.pause.Line, truncate(e.pause.Instruction, 60))
		tag := m.styles.Duration.Render(domain.FormatPauseTag(e.pause.Suggested))

		switch {
		case e.dropped:
			b.WriteString(prefix + m.styles.Dropped.Render(line+" (entfernt)"))
		case i == m.cursor:
			b.WriteString(prefix + m.styles.Selected.Render(line) + " " + tag)
		default:
			b.WriteString(prefix + m.styles.Normal.Render(line) + " " + tag)
		}
		b.WriteString("\n")

		if m.editing && i == m.cursor {
			b.WriteString("    Neue Dauer: " + m.input.View() + "\n")
		}
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.styles.Help.Render("enter übernehmen · esc abbrechen"))
	} else {
		b.WriteString(m.styles.Help.Render("↑/↓ wählen · e Dauer ändern · d entfernen/zurück · enter anwenden · q abbrechen"))
	}
	b.WriteString("\n")
	return b.String()
}

// Accepted returns the kept pauses with their reviewed durations.
func (m Model) Accepted() []domain.DetectedPause {
	var pauses []domain.DetectedPause
	for _, e := range m.entries {
		if !e.dropped {
			pauses = append(pauses, e.pause)
		}
	}
	return pauses
}

// Aborted returns true if the user cancelled the review.
func (m Model) Aborted() bool {
	return m.aborted
}

// ErrAborted is returned when the user cancels the review instead of
// accepting it.
var ErrAborted = errors.New("review: aborted")

// Run blocks on the interactive review and returns the accepted
// pauses, or ErrAborted when the user cancels.
func Run(pauses []domain.DetectedPause) ([]domain.DetectedPause, error) {
	program := tea.NewProgram(NewModel(pauses))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	model, ok := final.(Model)
	if !ok {
		return pauses, nil
	}
	return finalise(model)
}

// finalise maps the terminal model state to the review outcome.
func finalise(m Model) ([]domain.DetectedPause, error) {
	if m.Aborted() {
		return nil, ErrAborted
	}
	return m.Accepted(), nil
}

func parseSeconds(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if seconds < domain.MinPauseSeconds {
		return 0, fmt.Errorf("duration below %.1fs", domain.MinPauseSeconds)
	}
	return seconds, nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
