package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-env", ""}, args...)
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunSingle(t *testing.T) {
	code, out, errOut := runCLI(t, "-n", "3", "-set", "table=wall=0.5,lava=0.5")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "seed 1337: "), out)
	assert.Contains(t, lines[0], "solvable=true")
	assert.Equal(t, "########", lines[2])
	assert.Equal(t, 'A', []rune(lines[3])[1], "start marker at (1,1)")
	assert.Contains(t, out, "novelty (peak ")
}

func TestRunManySeeds(t *testing.T) {
	code, out, errOut := runCLI(t, "-n", "2", "-runs", "3", "-workers", "2", "-seed", "10")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "10 "))
	assert.True(t, strings.HasPrefix(lines[3], "12 "))
}

func TestRunEnvironmentOverrides(t *testing.T) {
	t.Setenv("DYNGRID_SIZE", "6")
	code, out, errOut := runCLI(t, "-n", "1", "-novelty=false")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "\n######\n")
	assert.NotContains(t, out, "novelty")
}

func TestRunSeedOverrides(t *testing.T) {
	code, out, errOut := runCLI(t, "-n", "1", "-set", "seed=42")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "seed 42: "), out)

	t.Setenv("DYNGRID_SEED", "77")
	code, out, errOut = runCLI(t, "-n", "1", "-runs", "2")
	require.Equal(t, 0, code, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "77 "))
	assert.True(t, strings.HasPrefix(lines[2], "78 "))

	code, out, errOut = runCLI(t, "-n", "1", "-seed", "5", "-set", "seed=42")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "seed 5: "), "an explicit -seed wins")
}

func TestRunRejectsBadInput(t *testing.T) {
	code, _, errOut := runCLI(t, "-set", "table=wall=0.3")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid table")

	code, _, _ = runCLI(t, "-set", "size")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "-bogus")
	assert.Equal(t, 2, code)
}

func TestRunVerboseLogsAlterations(t *testing.T) {
	code, _, errOut := runCLI(t, "-n", "2", "-v")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "alteration applied")
}
