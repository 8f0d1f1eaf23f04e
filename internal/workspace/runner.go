package workspace

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner is the narrow interface through which all external commands run.
// Implementations execute argv with the given working directory.
//
// Run streams the command's output through to the parent process, which is
// what the release pipeline wants for git/make/bumpversion — their output
// is the operator's progress report. Output captures stdout instead, for
// commands whose result is consumed programmatically (git rev-parse).
type Runner interface {
	Run(ctx context.Context, dir string, argv ...string) error
	Output(ctx context.Context, dir string, argv ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
//
// Before executing, it echoes the space-joined command line to stdout so
// the operator always sees exactly which external command is about to run.
// This echo is part of the tool's contract, not debug output.
type ExecRunner struct{}

// NewExecRunner creates the production command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv in dir, streaming stdout and stderr through to the
// parent process. A non-zero exit is returned as an error that names the
// failed command; the pipeline treats such errors as tool failures, not
// user errors.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv ...string) error {
	echo(argv)

	// #nosec G204 — argv is assembled internally from configuration, not
	// from untrusted input.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", strings.Join(argv, " "), err)
	}
	return nil
}

// Output executes argv in dir and returns its captured stdout. Stderr is
// captured separately and folded into the error message on failure, so a
// failing command stays diagnosable without polluting the captured output.
func (r *ExecRunner) Output(ctx context.Context, dir string, argv ...string) (string, error) {
	echo(argv)

	// #nosec G204 — argv is assembled internally, not from untrusted input.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("%s failed", strings.Join(argv, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}

	return stdout.String(), nil
}

// echo prints the command line about to be executed. Every invocation is
// announced this way for operational transparency.
func echo(argv []string) {
	fmt.Println(strings.Join(argv, " "))
}
