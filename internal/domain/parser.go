// Package domain implements example extraction, execution and run
// orchestration for docrun.
package domain

import (
	"regexp"
	"strings"

	m "github.com/docrun-dev/docrun/internal/model"
)

const (
	promptMarker       = ">>>"
	continuationMarker = "..."

	// faultPrefix marks an expected-output block as an expected fault.
	faultPrefix = "panic: "

	// blankLineMarker stands in for an intentionally blank expected line,
	// since a truly blank line terminates the expected block.
	blankLineMarker = "<BLANKLINE>"
)

// directivePattern matches per-example flag overrides, e.g.
// "// doctest: +skip" or "// doctest: +ellipsis, -normalize-whitespace".
var directivePattern = regexp.MustCompile(`//\s*doctest:\s*([^\n]*)`)

// docLine is one line of documentation text with its 1-based file line.
type docLine struct {
	line int
	text string
}

// textLines splits raw text into docLines numbered from 1.
func textLines(text string) []docLine {
	raw := strings.Split(text, "\n")
	lines := make([]docLine, 0, len(raw))

	for i, l := range raw {
		lines = append(lines, docLine{line: i + 1, text: l})
	}

	return lines
}

// parseExamples scans documentation lines for prompt-marked snippets. Each
// example's LineOffset is its prompt line relative to startLine.
func parseExamples(lines []docLine, startLine int) []m.Example {
	var examples []m.Example

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i].text, " \t")
		if !strings.HasPrefix(trimmed, promptMarker) {
			i++
			continue
		}

		indent := len(lines[i].text) - len(trimmed)
		offset := lines[i].line - startLine

		source := []string{markerRest(trimmed, promptMarker)}
		i++

		for i < len(lines) {
			t := strings.TrimLeft(lines[i].text, " \t")
			if !strings.HasPrefix(t, continuationMarker) {
				break
			}

			source = append(source, markerRest(t, continuationMarker))
			i++
		}

		var want []string

		for i < len(lines) {
			t := strings.TrimLeft(lines[i].text, " \t")
			if t == "" || strings.HasPrefix(t, promptMarker) {
				break
			}

			want = append(want, dedent(lines[i].text, indent))
			i++
		}

		examples = append(examples, buildExample(source, want, offset))
	}

	return examples
}

func buildExample(source, want []string, offset int) m.Example {
	src, overrides := extractDirectives(strings.Join(source, "\n"))

	ex := m.Example{
		Source:     src,
		LineOffset: offset,
		Overrides:  overrides,
	}

	if len(want) == 0 {
		return ex
	}

	text := strings.Join(want, "\n") + "\n"
	if strings.HasPrefix(text, faultPrefix) {
		ex.WantFault = strings.TrimPrefix(text, faultPrefix)
		return ex
	}

	ex.Want = expandBlankLines(text)

	return ex
}

// markerRest strips the prompt or continuation marker and one space.
func markerRest(line, marker string) string {
	rest := strings.TrimPrefix(line, marker)
	return strings.TrimPrefix(rest, " ")
}

func dedent(line string, indent int) string {
	if len(line) >= indent {
		return line[indent:]
	}

	return strings.TrimLeft(line, " \t")
}

// extractDirectives removes directive comments from the snippet and returns
// the flag overrides they declare. Unknown names are ignored.
func extractDirectives(source string) (string, []m.FlagOverride) {
	var overrides []m.FlagOverride

	cleaned := directivePattern.ReplaceAllStringFunc(source, func(match string) string {
		body := directivePattern.FindStringSubmatch(match)[1]

		for _, token := range strings.FieldsFunc(body, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			if len(token) < 2 {
				continue
			}

			flag, ok := m.ParseFlag(token[1:])
			if !ok {
				continue
			}

			switch token[0] {
			case '+':
				overrides = append(overrides, m.FlagOverride{Flag: flag, Enable: true})
			case '-':
				overrides = append(overrides, m.FlagOverride{Flag: flag, Enable: false})
			}
		}

		return ""
	})

	lines := strings.Split(cleaned, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	return strings.Join(lines, "\n"), overrides
}

func expandBlankLines(want string) string {
	lines := strings.Split(want, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == blankLineMarker {
			lines[i] = ""
		}
	}

	return strings.Join(lines, "\n")
}
