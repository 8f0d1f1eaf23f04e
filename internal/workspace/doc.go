// Package workspace owns the release working directory and the execution
// of external commands inside it.
//
// A Workspace is either a freshly created temporary directory (removed
// after the run unless debug mode is on) or a user-supplied path that must
// not already exist (unless debug mode is on). Every external tool the
// release pipeline invokes — git, make, the version-bump tool — runs with
// the workspace as its working directory, through the Runner abstraction
// defined here.
//
// Runner exists so that pipeline steps are unit-testable: tests substitute
// a fake runner that records argv sequences instead of spawning real
// processes.
package workspace
