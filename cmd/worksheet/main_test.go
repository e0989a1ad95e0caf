package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCmd resets the global flags and captures output.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	configPath, variant, enable, verbose = "", "", nil, false
	contextLines, maxStops = 3, -1
	t.Cleanup(func() {
		configPath, variant, enable, verbose = "", "", nil, false
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestRunDefaultsToBuggy(t *testing.T) {
	cmd, out := newTestCmd(t)
	require.NoError(t, runRun(cmd, []string{"advanced"}))

	assert.Contains(t, out.String(), "Advanced Debugging Worksheet")
	assert.Contains(t, out.String(), "Minimum value: 50\n")
	assert.Contains(t, out.String(), "✓ All exercises complete!")
}

func TestRunFixedWithEnable(t *testing.T) {
	cmd, out := newTestCmd(t)
	variant = "fixed"
	enable = []string{"fix-the-bug"}
	require.NoError(t, runRun(cmd, []string{"basics"}))

	assert.Contains(t, out.String(), "10 / 0 = error: 10 / 0: division by zero")
}

func TestRunRejectsUnknownSheet(t *testing.T) {
	cmd, _ := newTestCmd(t)
	err := runRun(cmd, []string{"intermediate"})
	assert.ErrorContains(t, err, "unknown worksheet")
}

func TestRunRejectsUnknownSwitch(t *testing.T) {
	cmd, _ := newTestCmd(t)
	enable = []string{"everything"}
	err := runRun(cmd, []string{"basics"})
	assert.ErrorContains(t, err, "unknown exercise or path")
}

func TestRunFromConfigFile(t *testing.T) {
	cmd, out := newTestCmd(t)
	configPath = filepath.Join(t.TempDir(), "worksheet.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("variant: fixed\nsheets: [advanced]\n"), 0o644))

	require.NoError(t, runRun(cmd, nil))
	assert.Contains(t, out.String(), "Minimum value: 3\n")
	assert.NotContains(t, out.String(), "Debugging Basics Worksheet")
}

func TestList(t *testing.T) {
	cmd, out := newTestCmd(t)
	require.NoError(t, runList(cmd, nil))

	assert.Contains(t, out.String(), "basics: Debugging Basics Worksheet")
	assert.Contains(t, out.String(), "fix-the-bug")
	assert.Contains(t, out.String(), "[disabled]")
	assert.Contains(t, out.String(), "Opt-in switches (--enable): ")
}

func TestCompare(t *testing.T) {
	cmd, out := newTestCmd(t)
	require.NoError(t, runCompare(cmd, []string{"advanced"}))

	assert.Contains(t, out.String(), "--- advanced (buggy)")
	assert.Contains(t, out.String(), "+++ advanced (fixed)")
	assert.Contains(t, out.String(), "-Minimum value: 50")
}
