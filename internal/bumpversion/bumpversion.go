// Package bumpversion reads version metadata maintained by the external
// version-bump tool.
//
// The tool keeps the authoritative current version in an INI-style file,
// .bumpversion.cfg, at the root of the checkout:
//
//	[bumpversion]
//	current_version = 1.2.3
//
// relcut never writes this file — bumping is delegated entirely to the
// external tool. This package only reads the resulting version back so the
// verification steps can check it against the documentation and changelog.
package bumpversion

import (
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/ini.v1"
)

// ConfigFileName is the well-known name of the version-bump tool's
// configuration file inside a checkout.
const ConfigFileName = ".bumpversion.cfg"

// CurrentVersion returns the current_version value from the [bumpversion]
// section of .bumpversion.cfg inside workDir.
//
// The value must parse as a semantic version. Rejecting garbage here keeps
// the later doc/changelog checks from producing misleading "version
// missing" diagnostics when the real problem is a corrupt config file.
//
// Errors from this function are configuration/tooling faults, not user
// errors: a checkout without a readable bumpversion config cannot be
// released at all, and the raw error is the most useful diagnostic.
func CurrentVersion(workDir string) (string, error) {
	path := filepath.Join(workDir, ConfigFileName)

	cfg, err := ini.Load(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	section, err := cfg.GetSection("bumpversion")
	if err != nil {
		return "", fmt.Errorf("%s: missing [bumpversion] section: %w", path, err)
	}

	key, err := section.GetKey("current_version")
	if err != nil {
		return "", fmt.Errorf("%s: missing current_version key: %w", path, err)
	}

	version := key.String()
	if _, err := semver.NewVersion(version); err != nil {
		return "", fmt.Errorf("%s: current_version %q is not a semantic version: %w", path, version, err)
	}

	return version, nil
}
