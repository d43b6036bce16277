package adapter

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/docrun-dev/docrun/internal/model"
)

// ServiceMessages writes TeamCity service messages, one per line, to the
// stream an IDE parses for live test status. Consumers rely on strict
// message ordering, so every method writes synchronously.
type ServiceMessages struct {
	w io.Writer
}

// NewServiceMessages constructs a ServiceMessages writer.
func NewServiceMessages(w io.Writer) *ServiceMessages {
	return &ServiceMessages{w: w}
}

// tcEscaper applies the TeamCity attribute-value escaping rules.
var tcEscaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"[", "|[",
	"]", "|]",
)

func (s *ServiceMessages) message(name string, attrs ...string) {
	var b strings.Builder

	b.WriteString("##teamcity[")
	b.WriteString(name)

	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}

		fmt.Fprintf(&b, " %s='%s'", attrs[i], tcEscaper.Replace(attrs[i+1]))
	}

	b.WriteString("]\n")

	_, _ = io.WriteString(s.w, b.String())
}

// TestCount announces how many tests the run will report.
func (s *ServiceMessages) TestCount(count int) {
	s.message("testCount", "count", strconv.Itoa(count))
}

// TestMatrixEntered signals that test reporting follows.
func (s *ServiceMessages) TestMatrixEntered() {
	s.message("testMatrixEntered")
}

// TestSuiteStarted opens a suite scope.
func (s *ServiceMessages) TestSuiteStarted(name, location string) {
	s.message("testSuiteStarted", "name", name, "locationHint", location)
}

// TestSuiteFinished closes a suite scope.
func (s *ServiceMessages) TestSuiteFinished(name string) {
	s.message("testSuiteFinished", "name", name)
}

// TestStarted opens one test.
func (s *ServiceMessages) TestStarted(name, location string) {
	s.message("testStarted", "name", name, "locationHint", location)
}

// TestFinished reports a passing test.
func (s *ServiceMessages) TestFinished(name string) {
	s.message("testFinished", "name", name)
}

// TestFailed reports wrong output.
func (s *ServiceMessages) TestFailed(name, message, details string) {
	s.message("testFailed", "name", name, "message", message, "details", details)
}

// TestError reports a fault raised during execution.
func (s *ServiceMessages) TestError(name, message, details string) {
	s.message("testError", "name", name, "message", message, "details", details)
}

// TeamCitySink adapts run events onto service messages. It holds no state
// of its own: every event carries the enclosing group, and test identities
// derive from it on each call.
type TeamCitySink struct {
	messages *ServiceMessages
}

// NewTeamCitySink constructs a TeamCitySink writing to w.
func NewTeamCitySink(w io.Writer) *TeamCitySink {
	return &TeamCitySink{messages: NewServiceMessages(w)}
}

// RunStarted announces the example count before any suite opens.
func (t *TeamCitySink) RunStarted(count int) {
	t.messages.TestCount(count)
	t.messages.TestMatrixEntered()
}

// SuiteStarted reports the group under its own name and location.
func (t *TeamCitySink) SuiteStarted(group m.ExampleGroup) {
	t.messages.TestSuiteStarted(group.Name, Location(group.Filename, group.StartLine))
}

// SuiteFinished closes the group's suite scope.
func (t *TeamCitySink) SuiteFinished(group m.ExampleGroup) {
	t.messages.TestSuiteFinished(group.Name)
}

// ExampleStarted reports one example at its computed location.
func (t *TeamCitySink) ExampleStarted(group m.ExampleGroup, ex m.Example) {
	t.messages.TestStarted(testName(group, ex), Location(group.Filename, group.StartLine+ex.LineOffset))
}

// ExampleFinished reports exactly one of finished/failed/error.
func (t *TeamCitySink) ExampleFinished(group m.ExampleGroup, ex m.Example, outcome m.Outcome) {
	name := testName(group, ex)

	switch outcome.Kind {
	case m.Success:
		t.messages.TestFinished(name)
	case m.Failure:
		t.messages.TestFailed(name, "Failure", outcome.Diff)
	case m.Error:
		t.messages.TestError(name, "Error", outcome.Fault)
	}
}

// testName concatenates the enclosing suite's name and the example source.
func testName(group m.ExampleGroup, ex m.Example) string {
	return group.Name + ex.Source
}

// Location renders the protocol location string for a 1-relative line.
func Location(path m.Path, line int) string {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		abs = string(path)
	}

	return fmt.Sprintf("file://%s:%d", abs, line)
}
