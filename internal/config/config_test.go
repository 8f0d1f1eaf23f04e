package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/relcut/internal/model"
)

// writeFile writes content under dir with the given name and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadJSONC verifies JSONC parsing, including comments and trailing
// commas, which plain encoding/json would reject.
func TestLoadJSONC(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".relcut.jsonc", `{
  // release defaults
  "remote": "git@example.com:acme/widget.git",
  "branch": "main",
  "ci": {
    "baseURL": "https://ci.example.com",
    "slug": "acme/widget",
  },
}`)

	project, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:acme/widget.git", project.Remote)
	assert.Equal(t, "main", project.Branch)
	assert.Equal(t, "https://ci.example.com", project.CI.BaseURL)
	assert.Equal(t, "acme/widget", project.CI.Slug)
}

// TestLoadYAML verifies YAML parsing of the same shape.
func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".relcut.yaml", `
remote: git@example.com:acme/widget.git
branch: release
ci:
  slug: acme/widget
`)

	project, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:acme/widget.git", project.Remote)
	assert.Equal(t, "release", project.Branch)
	assert.Equal(t, "acme/widget", project.CI.Slug)
	assert.Empty(t, project.CI.BaseURL)
}

// TestLoadMalformed verifies that an unparseable file is a UserError naming
// the file, for both formats.
func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()

	jsonPath := writeFile(t, dir, ".relcut.json", `{"remote": `)
	_, err := Load(jsonPath)
	require.Error(t, err)
	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, ".relcut.json")

	yamlPath := writeFile(t, dir, ".relcut.yaml", "remote: [unclosed")
	_, err = Load(yamlPath)
	require.Error(t, err)
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, ".relcut.yaml")
}

// TestLocate verifies probing order and the empty result for a directory
// without any candidate file.
func TestLocate(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Locate(dir), "no candidates should locate nothing")

	writeFile(t, dir, ".relcut.yml", "branch: main\n")
	assert.Equal(t, filepath.Join(dir, ".relcut.yml"), Locate(dir))

	// A higher-priority candidate wins once present.
	writeFile(t, dir, ".relcut.json", "{}")
	assert.Equal(t, filepath.Join(dir, ".relcut.json"), Locate(dir))
}

// TestLoadFromMissing verifies that a directory without a config file
// yields a zero-value Project rather than an error.
func TestLoadFromMissing(t *testing.T) {
	project, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Project{}, project)
}

// TestApplyDefaults verifies that file values fill only unset flags.
func TestApplyDefaults(t *testing.T) {
	project := &Project{Remote: "file-remote", Branch: "file-branch"}

	cfg := model.ReleaseConfig{Remote: "flag-remote", ReleaseType: model.ReleasePatch}
	project.ApplyDefaults(&cfg)

	assert.Equal(t, "flag-remote", cfg.Remote, "explicit flag must win over file value")
	assert.Equal(t, "file-branch", cfg.Branch, "empty flag should take the file value")
}
