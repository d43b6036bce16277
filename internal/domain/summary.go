package domain

import (
	m "github.com/docrun-dev/docrun/internal/model"
)

// SummarySink accumulates run events into a model.RunSummary so a run can be
// persisted and re-displayed after the protocol stream is gone.
type SummarySink struct {
	summary m.RunSummary
}

// NewSummarySink constructs an empty SummarySink.
func NewSummarySink() *SummarySink {
	return &SummarySink{}
}

// Summary returns the accumulated run summary.
func (s *SummarySink) Summary() m.RunSummary {
	return s.summary
}

// RunStarted records the announced example count.
func (s *SummarySink) RunStarted(count int) {
	s.summary.Total = count
}

// SuiteStarted opens a new suite entry.
func (s *SummarySink) SuiteStarted(group m.ExampleGroup) {
	s.summary.Suites = append(s.summary.Suites, m.SuiteResult{
		Name: group.Name,
		File: string(group.Filename),
		Line: group.StartLine,
	})
}

// ExampleStarted is a no-op; results attach on ExampleFinished.
func (s *SummarySink) ExampleStarted(m.ExampleGroup, m.Example) {}

// ExampleFinished records one example result under the current suite. An
// event arriving before any SuiteStarted is dropped whole, so the counters
// never disagree with the recorded results.
func (s *SummarySink) ExampleFinished(group m.ExampleGroup, ex m.Example, outcome m.Outcome) {
	if len(s.summary.Suites) == 0 {
		return
	}

	result := m.ExampleResult{
		Name: group.Name + ex.Source,
		Line: group.StartLine + ex.LineOffset,
	}

	switch outcome.Kind {
	case m.Success:
		result.Status = m.StatusPassed
		s.summary.Passed++
	case m.Failure:
		result.Status = m.StatusFailed
		result.Details = outcome.Diff
		s.summary.Failed++
	case m.Error:
		result.Status = m.StatusErrored
		result.Details = outcome.Fault
		s.summary.Errored++
	}

	cur := &s.summary.Suites[len(s.summary.Suites)-1]
	cur.Results = append(cur.Results, result)
}

// SuiteFinished is a no-op; suite entries close implicitly.
func (s *SummarySink) SuiteFinished(m.ExampleGroup) {}
