package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingFixture = `// Package sample holds arithmetic examples.
//
// >>> 1 + 1
// 2
package sample
`

const failingFixture = `// Package sample holds arithmetic examples.
//
// >>> 1 + 1
// 3
package sample
`

// executeCommand runs a fresh command tree so the global root's state never
// leaks between tests.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newRunCmd(), newListCmd(), newViewCmd(), newInitCmd(), newVersionCmd())

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buf.String(), err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// assertOrdered checks that every needle appears in out, each one after the
// previous.
func assertOrdered(t *testing.T, out string, needles ...string) {
	t.Helper()

	last := -1
	for _, needle := range needles {
		idx := strings.Index(out, needle)
		require.GreaterOrEqual(t, idx, 0, "missing %q in output:\n%s", needle, out)
		require.Greater(t, idx, last, "%q out of order in output:\n%s", needle, out)
		last = idx
	}
}

func TestRun_PassingExampleStreamsFullProtocol(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", passingFixture)

	out, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	assertOrdered(t, out,
		"##teamcity[testCount count='1']",
		"##teamcity[testMatrixEntered]",
		"##teamcity[testSuiteStarted name='sample'",
		"##teamcity[testStarted name='sample1 + 1'",
		"##teamcity[testFinished name='sample1 + 1'",
		"##teamcity[testSuiteFinished name='sample']",
	)
}

func TestRun_WrongOutputReportsFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", failingFixture)

	out, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	assertOrdered(t, out,
		"##teamcity[testStarted name='sample1 + 1'",
		"##teamcity[testFailed name='sample1 + 1'",
	)

	// The details carry both the expected and the actual value.
	assert.Contains(t, out, "-3")
	assert.Contains(t, out, "+2")
	assert.NotContains(t, out, "testFinished")
}

func TestRun_MissingMemberFailsWithoutTestMessages(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", passingFixture)

	out, err := executeCommand(t, "run", path+"::MissingClass")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "sample")
	assert.Contains(t, err.Error(), "MissingClass")
	assert.NotContains(t, out, "##teamcity[testStarted")
	assert.NotContains(t, out, "##teamcity[testSuiteStarted")
}

func TestRun_LocationHintsPointAtFileLines(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", passingFixture)

	out, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	// Group doc starts at line 1, the prompt sits on line 3.
	assert.Contains(t, out, "locationHint='file://"+path+":1'")
	assert.Contains(t, out, "locationHint='file://"+path+":3'")
}

func TestRun_SavePersistsSummary(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", passingFixture)

	_, err := executeCommand(t, "run", "--save", path)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(defaultReportsDir, "summary.yaml"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "total: 1")
	assert.Contains(t, string(data), "passed: 1")
}

func TestRun_RequiresTarget(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "run")
	assert.Error(t, err)
}

func TestRun_TextTarget(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "usage.txt", ">>> 1 + 1\n2\n")

	out, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	assertOrdered(t, out,
		"##teamcity[testSuiteStarted name='usage.txt'",
		"##teamcity[testFinished name='usage.txt1 + 1'",
	)
}
