package adapter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/docrun-dev/docrun/internal/model"
)

func TestServiceMessages_Escaping(t *testing.T) {
	var buf strings.Builder
	NewServiceMessages(&buf).TestFinished("a|b'c\nd\re[f]g")

	assert.Equal(t, "##teamcity[testFinished name='a||b|'c|nd|re|[f|]g']\n", buf.String())
}

func TestServiceMessages_Forms(t *testing.T) {
	tests := []struct {
		name string
		emit func(s *ServiceMessages)
		want string
	}{
		{
			name: "test count",
			emit: func(s *ServiceMessages) { s.TestCount(3) },
			want: "##teamcity[testCount count='3']\n",
		},
		{
			name: "matrix entered",
			emit: func(s *ServiceMessages) { s.TestMatrixEntered() },
			want: "##teamcity[testMatrixEntered]\n",
		},
		{
			name: "suite started",
			emit: func(s *ServiceMessages) { s.TestSuiteStarted("sample", "file:///tmp/sample.go:1") },
			want: "##teamcity[testSuiteStarted name='sample' locationHint='file:///tmp/sample.go:1']\n",
		},
		{
			name: "suite finished",
			emit: func(s *ServiceMessages) { s.TestSuiteFinished("sample") },
			want: "##teamcity[testSuiteFinished name='sample']\n",
		},
		{
			name: "test started",
			emit: func(s *ServiceMessages) { s.TestStarted("sample1 + 1", "file:///tmp/sample.go:3") },
			want: "##teamcity[testStarted name='sample1 + 1' locationHint='file:///tmp/sample.go:3']\n",
		},
		{
			name: "test failed",
			emit: func(s *ServiceMessages) { s.TestFailed("sample1 + 1", "Failure", "want 3") },
			want: "##teamcity[testFailed name='sample1 + 1' message='Failure' details='want 3']\n",
		},
		{
			name: "test error",
			emit: func(s *ServiceMessages) { s.TestError("sample1 + 1", "Error", "boom") },
			want: "##teamcity[testError name='sample1 + 1' message='Error' details='boom']\n",
		},
		{
			name: "empty attributes are omitted",
			emit: func(s *ServiceMessages) { s.TestSuiteStarted("sample", "") },
			want: "##teamcity[testSuiteStarted name='sample']\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			tt.emit(NewServiceMessages(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLocation(t *testing.T) {
	abs, err := filepath.Abs("sample.go")
	require.NoError(t, err)

	assert.Equal(t, "file://"+abs+":7", Location(m.Path("sample.go"), 7))
}

func sinkGroup() m.ExampleGroup {
	return m.ExampleGroup{
		Name:      "sample.Add",
		Filename:  m.Path("/tmp/sample.go"),
		StartLine: 7,
	}
}

func TestTeamCitySink_RunStarted(t *testing.T) {
	var buf strings.Builder
	NewTeamCitySink(&buf).RunStarted(2)

	assert.Equal(t,
		"##teamcity[testCount count='2']\n##teamcity[testMatrixEntered]\n",
		buf.String())
}

func TestTeamCitySink_SuiteMessages(t *testing.T) {
	var buf strings.Builder
	sink := NewTeamCitySink(&buf)

	sink.SuiteStarted(sinkGroup())
	sink.SuiteFinished(sinkGroup())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "##teamcity[testSuiteStarted name='sample.Add' locationHint='file:///tmp/sample.go:7']", lines[0])
	assert.Equal(t, "##teamcity[testSuiteFinished name='sample.Add']", lines[1])
}

func TestTeamCitySink_ExampleMessages(t *testing.T) {
	ex := m.Example{Source: "Add(1, 2)", LineOffset: 2}

	tests := []struct {
		name    string
		outcome m.Outcome
		want    string
	}{
		{
			name:    "success",
			outcome: m.Outcome{Kind: m.Success},
			want:    "##teamcity[testFinished name='sample.AddAdd(1, 2)']\n",
		},
		{
			name:    "failure",
			outcome: m.Outcome{Kind: m.Failure, Diff: "-3\n+2"},
			want:    "##teamcity[testFailed name='sample.AddAdd(1, 2)' message='Failure' details='-3|n+2']\n",
		},
		{
			name:    "error",
			outcome: m.Outcome{Kind: m.Error, Fault: "boom"},
			want:    "##teamcity[testError name='sample.AddAdd(1, 2)' message='Error' details='boom']\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			NewTeamCitySink(&buf).ExampleFinished(sinkGroup(), ex, tt.outcome)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTeamCitySink_ExampleStartedLocation(t *testing.T) {
	var buf strings.Builder
	NewTeamCitySink(&buf).ExampleStarted(sinkGroup(), m.Example{Source: "Add(1, 2)", LineOffset: 2})

	assert.Equal(t,
		"##teamcity[testStarted name='sample.AddAdd(1, 2)' locationHint='file:///tmp/sample.go:9']\n",
		buf.String())
}
