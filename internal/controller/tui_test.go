package controller

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_DisplayDiscovery(t *testing.T) {
	var buf strings.Builder

	require.NoError(t, NewTUI(&buf).DisplayDiscovery(discoveryGroups()))

	out := buf.String()
	assert.Contains(t, out, "Discovered examples")
	assert.Contains(t, out, "a/sample.go")
	assert.Contains(t, out, "2 group(s), 3 example(s)")
	assert.Contains(t, out, "b/other.go")
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(storedSummary())

	assert.Contains(t, out, "Run results")
	assert.Contains(t, out, "sample.Add")
	assert.Contains(t, out, "line 9")
	assert.Contains(t, out, "line 11 - failed")
	assert.Contains(t, out, "line 13 - errored")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "Total: 3")
}

func TestTUI_DisplaySummaryShortContentPrintsPlain(t *testing.T) {
	var buf strings.Builder

	// A non-file writer keeps the default 24-line height; a single short
	// suite fits and prints without starting a program.
	require.NoError(t, NewTUI(&buf).DisplaySummary(storedSummary()))

	assert.Contains(t, buf.String(), "Run results")
}

func TestSummaryModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			model := newSummaryModel("content", 80, 24)

			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			updated, cmd := model.Update(msg)
			require.NotNil(t, cmd)
			assert.Empty(t, updated.View())
		})
	}
}

func TestSummaryModel_ViewShowsHelp(t *testing.T) {
	model := newSummaryModel("line one\nline two\n", 80, 10)

	view := model.View()
	assert.Contains(t, view, "line one")
	assert.Contains(t, view, "scroll")
}

func TestSummaryModel_Resize(t *testing.T) {
	model := newSummaryModel("content", 80, 24)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	sm, ok := updated.(summaryModel)
	require.True(t, ok)

	assert.Equal(t, 100, sm.viewport.Width)
	assert.Equal(t, 39, sm.viewport.Height)
}
