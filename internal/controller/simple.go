package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/docrun-dev/docrun/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// fileStat aggregates discovery counts for one file.
type fileStat struct {
	path     string
	groups   int
	examples int
}

// DisplayDiscovery renders per-file group and example counts as a table.
func (s *SimpleUI) DisplayDiscovery(groups []m.ExampleGroup) error {
	stats := buildFileStats(groups)

	totalExamples := 0
	for _, g := range groups {
		totalExamples += len(g.Examples)
	}

	s.printf("\n%s", renderDiscoveryTable(stats, len(groups), totalExamples))

	return nil
}

func buildFileStats(groups []m.ExampleGroup) []fileStat {
	info := make(map[string]fileStat)

	for _, g := range groups {
		stat := info[string(g.Filename)]
		stat.path = string(g.Filename)
		stat.groups++
		stat.examples += len(g.Examples)
		info[string(g.Filename)] = stat
	}

	stats := make([]fileStat, 0, len(info))
	for _, stat := range info {
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].path < stats[j].path
	})

	return stats
}

func renderDiscoveryTable(stats []fileStat, totalGroups, totalExamples int) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Groups", "Examples"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, stat := range stats {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.groups), fmt.Sprintf("%d", stat.examples)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(stats)),
		fmt.Sprintf("%d", totalGroups),
		fmt.Sprintf("%d", totalExamples),
	})

	table.Render()

	return buf.String()
}

// DisplaySummary prints a saved run summary with per-example statuses.
func (s *SimpleUI) DisplaySummary(summary m.RunSummary) error {
	for _, suite := range summary.Suites {
		s.printf("%s (%s:%d)\n", suite.Name, suite.File, suite.Line)

		for _, r := range suite.Results {
			mark := "✓"
			if r.Status != m.StatusPassed {
				mark = "✗"
			}

			s.printf("  %s line %d - %s\n", mark, r.Line, r.Status)

			if r.Details != "" {
				s.printf("%s\n", r.Details)
			}
		}
	}

	s.printf("\nTotal: %d | Passed: %d | Failed: %d | Errored: %d\n",
		summary.Total, summary.Passed, summary.Failed, summary.Errored)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
