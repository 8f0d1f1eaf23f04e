// Package model defines the domain types and value objects for the
// relcut CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is ReleaseConfig — the immutable configuration built
// once at startup from CLI flags (optionally defaulted from a project
// config file) — together with the ReleaseType enum and the exit-code
// vocabulary.
//
// The package also defines UserError, the error type for release-process
// rule violations. UserErrors are the only failures turned into friendly
// messages at the top level; every other error surfaces raw with its full
// diagnostic detail so that tooling faults stay debuggable.
package model
