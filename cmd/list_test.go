package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ShowsDiscoveredCounts(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFixture(t, "sample.go", passingFixture)

	out, err := executeCommand(t, "list", path)
	require.NoError(t, err)

	assert.Contains(t, out, "sample.go")
	// tablewriter auto-formats footer labels to upper case.
	assert.Contains(t, out, "TOTAL FILES 1")
	assert.NotContains(t, out, "##teamcity")
}

func TestList_InvalidTarget(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "list", "sample.go::")
	assert.Error(t, err)
}
