// Package release implements the release pipeline: the strictly ordered
// sequence of steps that turns a branch into a verified release candidate.
//
// The sequence is: clone the branch into the workspace, run the project's
// pre-release target, bump the semantic version, show the resulting commit,
// rebuild the documentation and changelog, then verify that both name the
// new version. Each step is a precondition for the next; there are no
// retries and no parallelism. A failing external command aborts the
// pipeline at that step.
//
// The verification steps (CheckDoc, CheckChangelog) are pure filesystem
// checks and are exported separately so they can be tested — and reused —
// without running the external tools.
package release
