package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/relcut/internal/model"
)

// fakeRunner records every invocation and its working directory instead of
// spawning processes. Output responses can be primed per command line.
type fakeRunner struct {
	calls   [][]string
	dirs    []string
	outputs map[string]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: make(map[string]string)}
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv ...string) error {
	f.calls = append(f.calls, argv)
	f.dirs = append(f.dirs, dir)
	return nil
}

func (f *fakeRunner) Output(_ context.Context, dir string, argv ...string) (string, error) {
	f.calls = append(f.calls, argv)
	f.dirs = append(f.dirs, dir)
	return f.outputs[strings.Join(argv, " ")], nil
}

// TestNewTempWorkspace verifies that an empty workDir produces a fresh
// temporary directory that Cleanup removes.
func TestNewTempWorkspace(t *testing.T) {
	ws, err := New("", false, newFakeRunner())
	require.NoError(t, err)

	info, statErr := os.Stat(ws.Dir)
	require.NoError(t, statErr, "temporary workspace directory should exist")
	assert.True(t, info.IsDir())
	assert.True(t, ws.Removable(), "temp workspace should be removable when debug is off")

	require.NoError(t, ws.Cleanup())
	_, statErr = os.Stat(ws.Dir)
	assert.True(t, os.IsNotExist(statErr), "Cleanup should remove the temp workspace")
}

// TestNewTempWorkspaceDebug verifies that debug mode keeps the temporary
// directory alive across Cleanup.
func TestNewTempWorkspaceDebug(t *testing.T) {
	ws, err := New("", true, newFakeRunner())
	require.NoError(t, err)
	// The directory is not tracked by t.TempDir, so remove it ourselves
	// once the assertions are done.
	defer func() { _ = os.RemoveAll(ws.Dir) }()

	assert.False(t, ws.Removable(), "debug mode should suppress removal")

	require.NoError(t, ws.Cleanup())
	_, statErr := os.Stat(ws.Dir)
	assert.NoError(t, statErr, "Cleanup must not delete a debug workspace")
}

// TestNewUserDir verifies that a user-supplied work dir is created and
// never removed by Cleanup.
func TestNewUserDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "release-ws")

	ws, err := New(dir, false, newFakeRunner())
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	require.NoError(t, statErr, "user work dir should be created")
	assert.False(t, ws.Removable())

	require.NoError(t, ws.Cleanup())
	_, statErr = os.Stat(dir)
	assert.NoError(t, statErr, "user-supplied dir must survive Cleanup")
}

// TestNewUserDirAlreadyExists verifies the "directory already exists"
// UserError fires before any command could run, and only when debug is off.
func TestNewUserDirAlreadyExists(t *testing.T) {
	dir := t.TempDir() // already exists

	_, err := New(dir, false, newFakeRunner())
	require.Error(t, err)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr, "pre-existing dir should be a UserError")
	assert.Contains(t, userErr.Message, "directory already exists")
}

// TestNewUserDirAlreadyExistsDebug verifies that debug mode accepts a
// pre-existing directory silently.
func TestNewUserDirAlreadyExistsDebug(t *testing.T) {
	dir := t.TempDir()

	ws, err := New(dir, true, newFakeRunner())
	require.NoError(t, err, "debug mode should tolerate an existing work dir")
	assert.Equal(t, dir, ws.Dir)
	assert.False(t, ws.Removable())
}

// TestRunUsesWorkspaceDir verifies that Run and Output delegate to the
// runner with the workspace argv intact.
func TestRunUsesWorkspaceDir(t *testing.T) {
	runner := newFakeRunner()
	ws, err := New(filepath.Join(t.TempDir(), "ws"), false, runner)
	require.NoError(t, err)

	require.NoError(t, ws.Run(context.Background(), "make", "pre-release"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"make", "pre-release"}, runner.calls[0])
	assert.Equal(t, ws.Dir, runner.dirs[0], "every command must run in the workspace dir")
}

// TestRevParse verifies that RevParse trims the trailing newline git
// appends to its output.
func TestRevParse(t *testing.T) {
	runner := newFakeRunner()
	runner.outputs["git rev-parse main"] = "abc123def456\n"

	ws, err := New(filepath.Join(t.TempDir(), "ws"), false, runner)
	require.NoError(t, err)

	sha, err := ws.RevParse(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "abc123def456", sha)
}

// TestPath verifies path joining against the workspace root.
func TestPath(t *testing.T) {
	ws, err := New(filepath.Join(t.TempDir(), "ws"), false, newFakeRunner())
	require.NoError(t, err)

	assert.Equal(t,
		filepath.Join(ws.Dir, "doc", "_build", "html"),
		ws.Path("doc", "_build", "html"))
}

// TestExecRunnerOutput exercises the production runner against a real
// process. The command is trivial on purpose — what matters is that stdout
// is captured and returned.
func TestExecRunnerOutput(t *testing.T) {
	r := NewExecRunner()

	out, err := r.Output(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

// TestExecRunnerFailure verifies that a non-zero exit surfaces as an error
// naming the failed command, with stderr folded in.
func TestExecRunnerFailure(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Output(context.Background(), t.TempDir(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
	assert.Contains(t, err.Error(), "broken", "stderr should appear in the error message")
}
