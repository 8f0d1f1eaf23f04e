// Package config handles the optional relcut project configuration file.
//
// The file supplies defaults for flags the operator would otherwise type on
// every release (remote, branch, CI repository slug). Two formats are
// supported, probed in order:
//
//	.relcut.json / .relcut.jsonc  — JSONC (JSON with Comments), stripped
//	                                with github.com/tidwall/jsonc before
//	                                parsing with encoding/json
//	.relcut.yaml / .relcut.yml    — YAML, parsed with gopkg.in/yaml.v3
//
// A missing file is not an error — all values can come from flags. A file
// that exists but fails to parse is a UserError: the operator wrote it and
// can fix it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/relcut/internal/model"
)

// CandidateNames lists the config file names probed by Locate, in priority
// order.
var CandidateNames = []string{".relcut.json", ".relcut.jsonc", ".relcut.yaml", ".relcut.yml"}

// Project is the parsed project configuration file. Every field is a
// default only — explicit CLI flags always win.
type Project struct {
	// Remote is the default Git remote for --remote.
	Remote string `json:"remote" yaml:"remote"`

	// Branch is the default branch for --branch.
	Branch string `json:"branch" yaml:"branch"`

	// CI configures the optional CI status check.
	CI CIConfig `json:"ci" yaml:"ci"`
}

// CIConfig identifies the CI API endpoint and repository for ci-check.
type CIConfig struct {
	// BaseURL overrides the default CI API root. Empty selects the
	// built-in default.
	BaseURL string `json:"baseURL" yaml:"baseURL"`

	// Slug is the repository identifier, "owner/repo".
	Slug string `json:"slug" yaml:"slug"`
}

// Locate returns the path of the first config file candidate that exists
// in dir, or "" if none does.
func Locate(dir string) string {
	for _, name := range CandidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and parses the project config file at path. The format is
// chosen by file extension: .yaml/.yml parse as YAML, everything else as
// JSONC.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var project Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &project); err != nil {
			return nil, model.WrapUserError(err, "invalid config file %s", path)
		}
	default:
		// Strip JSONC comments and trailing commas before parsing.
		// encoding/json silently ignores unknown fields, which lets the
		// file carry notes for humans without breaking the tool.
		if err := json.Unmarshal(jsonc.ToJSON(data), &project); err != nil {
			return nil, model.WrapUserError(err, "invalid config file %s", path)
		}
	}

	return &project, nil
}

// LoadFrom locates and loads the project config in dir. A missing file
// yields a zero-value Project, not an error.
func LoadFrom(dir string) (*Project, error) {
	path := Locate(dir)
	if path == "" {
		return &Project{}, nil
	}
	return Load(path)
}

// ApplyDefaults fills empty fields of the release configuration from the
// project file. Flag values already present are left untouched.
func (p *Project) ApplyDefaults(cfg *model.ReleaseConfig) {
	if cfg.Remote == "" {
		cfg.Remote = p.Remote
	}
	if cfg.Branch == "" {
		cfg.Branch = p.Branch
	}
}
