package domain

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "github.com/docrun-dev/docrun/internal/model"
)

const ellipsisMarker = "..."

// checkOutput reports whether got matches want under the active flags.
func checkOutput(want, got string, flags m.FlagSet) bool {
	if flags.Has(m.FlagNormalizeWhitespace) {
		want = strings.Join(strings.Fields(want), " ")
		got = strings.Join(strings.Fields(got), " ")
	}

	if want == got {
		return true
	}

	if flags.Has(m.FlagEllipsis) {
		return ellipsisMatch(want, got)
	}

	return false
}

// checkFault compares an expected fault text against the raised fault's
// message. Under FlagIgnoreFaultDetail only the text up to the first colon
// has to match.
func checkFault(want, got string, flags m.FlagSet) bool {
	want = strings.TrimSpace(want)
	got = strings.TrimSpace(got)

	if checkOutput(want, got, flags) {
		return true
	}

	if !flags.Has(m.FlagIgnoreFaultDetail) {
		return false
	}

	wantHead := headBeforeColon(want)
	gotHead := headBeforeColon(got)

	return wantHead != "" && gotHead != "" && checkOutput(wantHead, gotHead, flags)
}

func headBeforeColon(s string) string {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return ""
	}

	return s[:idx+1]
}

// ellipsisMatch implements "..." wildcard matching: the literal pieces of
// want must occur in got in order, with the first and last pieces anchored
// unless want itself starts or ends with the marker.
func ellipsisMatch(want, got string) bool {
	pieces := strings.Split(want, ellipsisMarker)
	if len(pieces) == 1 {
		return want == got
	}

	first, last := pieces[0], pieces[len(pieces)-1]

	if first != "" {
		if !strings.HasPrefix(got, first) {
			return false
		}

		got = got[len(first):]
	}

	rest := pieces[1 : len(pieces)-1]

	if last != "" {
		if !strings.HasSuffix(got, last) {
			return false
		}

		got = got[:len(got)-len(last)]
	}

	for _, piece := range rest {
		idx := strings.Index(got, piece)
		if idx < 0 {
			return false
		}

		got = got[idx+len(piece):]
	}

	return true
}

// renderDiff produces the expected/actual difference for failure details.
func renderDiff(want, got string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || text == "" {
		return fmt.Sprintf("Expected:\n%s\nGot:\n%s\n", want, got)
	}

	return text
}

// failureHeader locates a failing example the way interactive runners do.
func failureHeader(group m.ExampleGroup, ex m.Example) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File %q, line %d, in %s\n", group.Filename, group.StartLine+ex.LineOffset, group.Name)
	b.WriteString("Failed example:\n")

	for _, line := range strings.Split(strings.TrimRight(ex.Source, "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}

	return b.String()
}

// indent prefixes every non-empty line with four spaces.
func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}

	return strings.Join(lines, "\n") + "\n"
}
