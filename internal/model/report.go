package model

// ExampleStatus is the persisted status of one executed example.
type ExampleStatus string

// Available ExampleStatus values.
const (
	StatusPassed  ExampleStatus = "passed"
	StatusFailed  ExampleStatus = "failed"
	StatusErrored ExampleStatus = "errored"
)

// ExampleResult is one example's row in a persisted run summary.
type ExampleResult struct {
	Name    string        `yaml:"name"`
	Line    int           `yaml:"line"`
	Status  ExampleStatus `yaml:"status"`
	Details string        `yaml:"details,omitempty"`
}

// SuiteResult aggregates the results of one example group.
type SuiteResult struct {
	Name    string          `yaml:"name"`
	File    string          `yaml:"file"`
	Line    int             `yaml:"line"`
	Results []ExampleResult `yaml:"results"`
}

// RunSummary is the persisted outcome of a whole run.
type RunSummary struct {
	Total   int           `yaml:"total"`
	Passed  int           `yaml:"passed"`
	Failed  int           `yaml:"failed"`
	Errored int           `yaml:"errored"`
	Suites  []SuiteResult `yaml:"suites"`
}
