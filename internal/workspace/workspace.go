package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/relcut/internal/model"
)

// Workspace is the directory a release runs in, plus the Runner used to
// execute external commands inside it. It is owned exclusively by the
// release pipeline for the whole process lifetime; there is no concurrent
// access.
type Workspace struct {
	// Dir is the absolute path to the workspace directory.
	Dir string

	runner Runner

	// remove records whether Cleanup should delete the directory.
	// Only freshly created temporary directories are ever removed,
	// and only when debug mode is off.
	remove bool
}

// New allocates a workspace according to the configured work directory
// and debug mode.
//
// Two cases, mirroring the CLI contract:
//  1. workDir empty: a fresh temporary directory is created. It is marked
//     for removal by Cleanup unless debug is set.
//  2. workDir given: the directory is created with os.Mkdir. If it already
//     exists this is a UserError ("directory already exists") unless debug
//     is set, in which case the existing directory is used as-is.
//     User-supplied directories are never removed by Cleanup.
func New(workDir string, debug bool, runner Runner) (*Workspace, error) {
	if workDir == "" {
		dir, err := os.MkdirTemp("", "relcut-")
		if err != nil {
			return nil, fmt.Errorf("creating temporary workspace: %w", err)
		}
		return &Workspace{Dir: dir, runner: runner, remove: !debug}, nil
	}

	if err := os.Mkdir(workDir, 0o755); err != nil {
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("creating workspace %s: %w", workDir, err)
		}
		// Pre-existing directory: tolerated only in debug mode, where
		// re-running against a half-built workspace is the whole point.
		if !debug {
			return nil, model.NewUserError("directory already exists: %s", workDir)
		}
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace path %s: %w", workDir, err)
	}

	return &Workspace{Dir: abs, runner: runner, remove: false}, nil
}

// Cleanup removes the workspace directory if it was a temporary directory
// created by New and debug mode was off. It is a no-op otherwise.
// Callers defer this once, right after New succeeds.
func (w *Workspace) Cleanup() error {
	if !w.remove {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// Removable reports whether Cleanup would delete the workspace directory.
func (w *Workspace) Removable() bool {
	return w.remove
}

// Run executes an external command with the workspace as its working
// directory, streaming its output through. This is the sole execution
// primitive used by every release step.
func (w *Workspace) Run(ctx context.Context, argv ...string) error {
	return w.runner.Run(ctx, w.Dir, argv...)
}

// Output executes an external command in the workspace and returns its
// captured stdout.
func (w *Workspace) Output(ctx context.Context, argv ...string) (string, error) {
	return w.runner.Output(ctx, w.Dir, argv...)
}

// RevParse returns the commit SHA the given ref resolves to in the
// workspace's clone, with surrounding whitespace trimmed.
func (w *Workspace) RevParse(ctx context.Context, ref string) (string, error) {
	out, err := w.Output(ctx, "git", "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Path joins the given elements onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}
