package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/docrun-dev/docrun/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	suiteIndent = "  "
)

// TUI implements UI with an interactive Bubble Tea viewer.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayDiscovery renders the discovery listing without interaction; a
// scrolling viewer adds nothing for a flat count table.
func (t *TUI) DisplayDiscovery(groups []m.ExampleGroup) error {
	stats := buildFileStats(groups)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Discovered examples") + "\n\n")

	for _, stat := range stats {
		fmt.Fprintf(&b, "%s%s  %s\n", suiteIndent, stat.path,
			faintStyle.Render(fmt.Sprintf("%d group(s), %d example(s)", stat.groups, stat.examples)))
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplaySummary shows the run summary in a scrollable viewport when the
// content overflows the terminal, plain output otherwise.
func (t *TUI) DisplaySummary(summary m.RunSummary) error {
	content := renderSummary(summary)

	width, height := 80, 24
	if f, ok := t.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	if strings.Count(content, "\n") < height-1 {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	model := newSummaryModel(content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderSummary(summary m.RunSummary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Run results") + "\n\n")

	for _, suite := range summary.Suites {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(suite.Name),
			faintStyle.Render(fmt.Sprintf("(%s:%d)", suite.File, suite.Line)))

		for _, r := range suite.Results {
			var line string

			switch r.Status {
			case m.StatusPassed:
				line = passStyle.Render(fmt.Sprintf("✓ line %d", r.Line))
			case m.StatusFailed:
				line = failStyle.Render(fmt.Sprintf("✗ line %d - failed", r.Line))
			case m.StatusErrored:
				line = errorStyle.Render(fmt.Sprintf("! line %d - errored", r.Line))
			}

			b.WriteString(suiteIndent + line + "\n")

			if r.Details != "" {
				for _, dl := range strings.Split(strings.TrimRight(r.Details, "\n"), "\n") {
					b.WriteString(suiteIndent + suiteIndent + faintStyle.Render(dl) + "\n")
				}
			}
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total: %d | %s | %s | %s\n",
		summary.Total,
		passStyle.Render(fmt.Sprintf("passed %d", summary.Passed)),
		failStyle.Render(fmt.Sprintf("failed %d", summary.Failed)),
		errorStyle.Render(fmt.Sprintf("errored %d", summary.Errored)))

	return b.String()
}

// summaryModel is the Bubble Tea model wrapping the rendered summary in a
// viewport.
type summaryModel struct {
	viewport viewport.Model
	quitting bool
}

func newSummaryModel(content string, width, height int) summaryModel {
	vp := viewport.New(width, height-1)
	vp.SetContent(content)

	return summaryModel{viewport: vp}
}

func (sm summaryModel) Init() tea.Cmd {
	return nil
}

func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			sm.quitting = true
			return sm, tea.Quit
		}

	case tea.WindowSizeMsg:
		sm.viewport.Width = msg.Width
		sm.viewport.Height = msg.Height - 1
	}

	var cmd tea.Cmd
	sm.viewport, cmd = sm.viewport.Update(msg)

	return sm, cmd
}

func (sm summaryModel) View() string {
	if sm.quitting {
		return ""
	}

	return sm.viewport.View() + "\n" + helpStyle.Render("↑/↓ scroll · q quit")
}
