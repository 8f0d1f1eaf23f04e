// Package model defines the domain types for the relcut CLI.
//
// All types here are plain values passed between components. Nothing in
// this package performs IO; the workspace, bumpversion, ci, and release
// packages consume these types and do the actual work.
package model

import (
	"fmt"
	"strings"
)

// ReleaseType represents the kind of semantic version bump to perform.
// It is passed verbatim to the external version-bump tool, which owns
// the actual version arithmetic and the resulting commit.
type ReleaseType string

const (
	// ReleaseMajor bumps the major version (X.y.z → X+1.0.0).
	ReleaseMajor ReleaseType = "major"

	// ReleaseMinor bumps the minor version (x.Y.z → x.Y+1.0).
	ReleaseMinor ReleaseType = "minor"

	// ReleasePatch bumps the patch version (x.y.Z → x.y.Z+1).
	ReleasePatch ReleaseType = "patch"
)

// String returns the string representation of ReleaseType.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (r ReleaseType) String() string {
	return string(r)
}

// IsValid checks whether the ReleaseType value is one of the
// predefined valid release types.
func (r ReleaseType) IsValid() bool {
	switch r {
	case ReleaseMajor, ReleaseMinor, ReleasePatch:
		return true
	default:
		return false
	}
}

// ParseReleaseType converts a string to a ReleaseType.
// Returns an error if the string does not match any valid type.
func ParseReleaseType(s string) (ReleaseType, error) {
	rt := ReleaseType(strings.ToLower(s))
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid release type: %q (valid: major, minor, patch)", s)
	}
	return rt, nil
}

// ReleaseTypeNames returns the valid release type strings in their
// conventional order. Used by the CLI layer for positional argument
// validation and usage text.
func ReleaseTypeNames() []string {
	return []string{string(ReleaseMajor), string(ReleaseMinor), string(ReleasePatch)}
}

// ReleaseConfig is the immutable configuration for a release run.
// It is constructed exactly once at startup — flags merged with the
// optional project config file — and threaded unchanged through every
// pipeline step.
type ReleaseConfig struct {
	// Remote is the Git remote URL or path the release branch is cloned from.
	Remote string `json:"remote"`

	// Branch is the branch to release.
	Branch string `json:"branch"`

	// WorkDir is the workspace directory. Empty means a fresh temporary
	// directory is created and removed after the run (unless Debug).
	WorkDir string `json:"workDir,omitempty"`

	// Debug suppresses workspace cleanup and relaxes the
	// "work dir must not pre-exist" check.
	Debug bool `json:"debug"`

	// ReleaseType is the requested version bump.
	ReleaseType ReleaseType `json:"releaseType"`
}

// Validate checks that the required configuration fields are present.
// It does not touch the filesystem — workspace-level checks (pre-existing
// directory, etc.) belong to the workspace package.
func (c *ReleaseConfig) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty (set --remote or the project config file)")
	}
	if c.Branch == "" {
		return fmt.Errorf("branch must not be empty (set --branch or the project config file)")
	}
	if !c.ReleaseType.IsValid() {
		return fmt.Errorf("invalid release type %q", c.ReleaseType)
	}
	return nil
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates the release pipeline completed and all
	// verification steps passed.
	ExitSuccess ExitCode = 0

	// ExitUserError indicates a release-process rule was violated
	// (pre-existing work dir, missing doc artifacts, missing changelog
	// entry, CI mismatch). The message on stderr is user-actionable.
	ExitUserError ExitCode = 1

	// ExitUsageError indicates invalid command-line arguments.
	// cobra's own flag errors map here as well.
	ExitUsageError ExitCode = 2

	// ExitToolFailure indicates an external tool (git, make, the
	// version-bump tool) or the environment failed in a way relcut does
	// not translate into a friendly message. The raw error is printed.
	ExitToolFailure ExitCode = 3
)

// UserError is a recognized, user-actionable failure of a release-process
// rule, as opposed to an unexpected tooling fault. UserErrors are caught
// at the top level, printed plainly to stderr, and exit the process with
// ExitUserError. Everything else propagates raw.
type UserError struct {
	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError from a format string.
func NewUserError(format string, args ...interface{}) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WrapUserError creates a UserError that wraps an existing error.
func WrapUserError(err error, format string, args ...interface{}) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...), Err: err}
}
