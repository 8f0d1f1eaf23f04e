// Package cli implements the cobra-based CLI commands for relcut.
//
// The root command itself runs the release pipeline — the binary is the
// verb. The only subcommand, ci-check, exposes the optional CI status
// verification. This file defines the root command, global flags, and the
// error-to-exit-code translation.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/relcut/internal/bumpversion"
	"github.com/mmr-tortoise/relcut/internal/config"
	"github.com/mmr-tortoise/relcut/internal/model"
	"github.com/mmr-tortoise/relcut/internal/release"
	"github.com/mmr-tortoise/relcut/internal/workspace"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine consumption.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// usageError marks an error as an argument/usage problem so that Execute
// can map it to the usage exit code. cobra has no error type of its own
// for this, so flag and positional-argument failures are wrapped here.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a multi-verb CLI, the root command does the work: it takes the
// release type as its single positional argument and runs the full
// release pipeline. The ci-check subcommand is registered alongside.
func NewRootCommand() *cobra.Command {
	// Release flags are locals captured by RunE, not package globals —
	// only the root command uses them.
	var (
		remote  string
		branch  string
		workDir string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:   "relcut {major|minor|patch}",
		Short: "Cut a verified project release",
		Long: `relcut automates a project release: it clones the release branch into a
workspace, bumps the semantic version, rebuilds the documentation and the
changelog, and verifies that both name the new version before declaring
the release ready.

Remote and branch may be given as flags or defaulted from a project
config file (.relcut.json, .relcut.jsonc, .relcut.yaml, or .relcut.yml)
in the current directory.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Exactly one positional argument, restricted to the release
		// types. Failures here are usage errors, hence the wrapper.
		Args:      asUsageErrors(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		ValidArgs: model.ReleaseTypeNames(),

		RunE: func(cmd *cobra.Command, args []string) error {
			releaseType, err := model.ParseReleaseType(args[0])
			if err != nil {
				return &usageError{err: err}
			}
			cfg := model.ReleaseConfig{
				Remote:      remote,
				Branch:      branch,
				WorkDir:     workDir,
				Debug:       debug,
				ReleaseType: releaseType,
			}
			return runRelease(cmd.Context(), cfg)
		},
	}

	// PersistentFlags are inherited by all subcommands. This is the cobra
	// mechanism for global flags — any flag defined here is automatically
	// available in every subcommand without re-declaration.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().StringVarP(&remote, "remote", "r", "", "Git remote to release from")
	rootCmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to release")
	rootCmd.Flags().StringVarP(&workDir, "work-dir", "w", "", "Work directory (default: fresh temp dir)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false,
		"Debug mode: keep the work directory and tolerate a pre-existing one")

	// Flag parse failures (unknown flag, bad value) become usage errors.
	// The func is inherited by subcommands.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(NewCICheckCommand())

	return rootCmd
}

// runRelease is the main logic behind the root command. It merges flag
// values with the project config file, allocates the workspace, and drives
// the release pipeline.
func runRelease(ctx context.Context, cfg model.ReleaseConfig) error {
	// Fill unset flags from the optional project config file in the
	// invoking directory. Explicit flags always win.
	project, err := config.LoadFrom(".")
	if err != nil {
		return err
	}
	project.ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return &usageError{err: err}
	}

	ws, err := workspace.New(cfg.WorkDir, cfg.Debug, workspace.NewExecRunner())
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove workspace %s: %v\n", ws.Dir, err)
		}
	}()

	fmt.Printf("Working directory: %s\n", ws.Dir)
	VerboseLog("Releasing branch %q from %q (%s bump)", cfg.Branch, cfg.Remote, cfg.ReleaseType)

	if err := release.New(cfg, ws).Run(ctx); err != nil {
		return err
	}

	// The pipeline has verified this version against the docs and
	// changelog; read it once more for the success report.
	version, err := bumpversion.CurrentVersion(ws.Dir)
	if err != nil {
		return err
	}

	printReleaseResult(version, cfg, ws)
	return nil
}

// printReleaseResult outputs the success report in text or JSON format.
func printReleaseResult(version string, cfg model.ReleaseConfig, ws *workspace.Workspace) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"version":     version,
			"branch":      cfg.Branch,
			"releaseType": cfg.ReleaseType.String(),
			"workDir":     ws.Dir,
			"workDirKept": !ws.Removable(),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Release %s is ready (branch %q, %s bump)\n", version, cfg.Branch, cfg.ReleaseType)
	if !ws.Removable() {
		fmt.Printf("Workspace kept at %s\n", ws.Dir)
	}
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Error tiers, per the release tool's contract:
//   - usage errors (bad flags/arguments) exit with ExitUsageError
//   - UserErrors (release-process rule violations) are printed plainly
//     and exit with ExitUserError
//   - everything else (git/make failures, network faults) is printed raw
//     and exits with ExitToolFailure
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			printError(usageErr.Error(), nil)
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
			os.Exit(int(model.ExitUsageError))
		}

		var userErr *model.UserError
		if errors.As(err, &userErr) {
			printError(userErr.Error(), nil)
			os.Exit(int(model.ExitUserError))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitToolFailure))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode — stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// asUsageErrors wraps a cobra positional-args validator so its failures
// are classified as usage errors by Execute.
func asUsageErrors(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
