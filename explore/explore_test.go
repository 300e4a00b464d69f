// Copyright © 2025 The srcscope authors

package explore

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/deps"
)

const carHeader = `
class Engine {
};
class Car : public Engine {
public:
	void drive() {
	}
};
`

func testShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	a, err := analysis.NewAnalyzer(nil)
	require.NoError(t, err)
	require.NoError(t, a.AnalyzeFile("car.h", strings.NewReader(carHeader)))
	res := a.Result()
	shell := NewShell(res, deps.Analyze(res.Root))
	var buf bytes.Buffer
	shell.out = &buf
	return shell, &buf
}

func TestTypesCommand(t *testing.T) {
	shell, buf := testShell(t)
	assert.True(t, shell.Eval("types"))
	assert.Equal(t, "Car\nEngine\n", buf.String())
}

func TestShowCommand(t *testing.T) {
	shell, buf := testShell(t)
	shell.Eval("show Car")
	assert.Contains(t, buf.String(), "class Car")
	assert.Contains(t, buf.String(), "function drive")

	buf.Reset()
	shell.Eval("show Nothing")
	assert.Contains(t, buf.String(), "no scope named")
}

func TestDepsCommand(t *testing.T) {
	shell, buf := testShell(t)
	shell.Eval("deps Car")
	assert.Contains(t, buf.String(), "Car inherits Engine")

	buf.Reset()
	shell.Eval("deps Engine")
	assert.Contains(t, buf.String(), "no outgoing relations")

	buf.Reset()
	shell.Eval("deps")
	assert.Contains(t, buf.String(), "fingerprint")
}

func TestExitCommand(t *testing.T) {
	shell, _ := testShell(t)
	assert.False(t, shell.Eval("exit"))
	assert.False(t, shell.Eval("quit"))
}

func TestBlankCommand(t *testing.T) {
	shell, buf := testShell(t)
	assert.True(t, shell.Eval(""))
	assert.True(t, shell.Eval("   \t"))
	assert.Empty(t, buf.String())
}

func TestUnknownCommand(t *testing.T) {
	shell, buf := testShell(t)
	assert.True(t, shell.Eval("frobnicate"))
	assert.Contains(t, buf.String(), "unknown command")
}

func TestCompleter(t *testing.T) {
	shell, _ := testShell(t)
	c := &queryCompleter{shell: shell}

	got, n := c.Do([]rune("ty"), 2)
	require.Len(t, got, 1)
	assert.Equal(t, "pes", string(got[0]))
	assert.Equal(t, 2, n)

	got, _ = c.Do([]rune("show Ca"), 7)
	require.Len(t, got, 1)
	assert.Equal(t, "r", string(got[0]))
}

func TestRunReadsUntilEOF(t *testing.T) {
	shell, buf := testShell(t)
	stdin := io.NopCloser(strings.NewReader("types\nexit\n"))
	err := shell.Run("> ", WithStdin(stdin), WithStderr(nopWriteCloser{buf}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Car")
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".srcscope_history")

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".srcscope_history")
	require.NoError(t, os.WriteFile(histFile, []byte("types"), 0644))

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnsureHistoryFilePermissions_EmptyPath(t *testing.T) {
	ensureHistoryFilePermissions("")
}
