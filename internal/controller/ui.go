// Package controller provides output adapters for displaying discovery and
// run results to a human. The IDE protocol stream never goes through here.
package controller

import (
	"os"

	"golang.org/x/term"

	m "github.com/docrun-dev/docrun/internal/model"
)

// UI displays discovery listings and saved run summaries. Implementations
// range from plain text to an interactive terminal viewer.
type UI interface {
	DisplayDiscovery(groups []m.ExampleGroup) error
	DisplaySummary(summary m.RunSummary) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
