package release

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/relcut/internal/model"
)

// ChangelogFileName is the changelog file checked at the root of the clone.
const ChangelogFileName = "CHANGES.rst"

// docBuildDir is the documentation build output, relative to the clone root.
var docBuildDir = filepath.Join("doc", "_build", "html")

// CheckDoc verifies that the documentation build reflects the released
// version. Four conditions, each with its own diagnostic:
//
//  1. doc/_build/html exists and is a directory
//  2. index.html exists within it
//  3. changes.html exists within it
//  4. changes.html contains the substring " <version> documentation"
//
// The leading space in the title substring is deliberate: it rejects
// prefixed versions such as "v1.2.3 documentation", which would indicate
// the doc build picked up a stale or differently-formatted version.
func CheckDoc(workDir, version string) error {
	htmlDir := filepath.Join(workDir, docBuildDir)

	info, err := os.Stat(htmlDir)
	if err != nil || !info.IsDir() {
		return model.NewUserError("check-doc: no documentation build found")
	}

	if !isFile(filepath.Join(htmlDir, "index.html")) {
		return model.NewUserError("check-doc: no documentation index.html found")
	}

	changesPath := filepath.Join(htmlDir, "changes.html")
	if !isFile(changesPath) {
		return model.NewUserError("check-doc: no documentation changes.html found")
	}

	content, err := os.ReadFile(changesPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", changesPath, err)
	}

	title := fmt.Sprintf(" %s documentation", version)
	if !strings.Contains(string(content), title) {
		return model.NewUserError("check-doc: wrong title, title missing: '%s'", title)
	}

	return nil
}

// CheckChangelog verifies that CHANGES.rst contains a line exactly equal
// to the version string. The match is whole-line (trailing newline
// trimmed), never a substring — "1.2.3 (release)" must not satisfy a
// check for "1.2.3".
//
// A missing or unreadable CHANGES.rst is a raw error, not a UserError:
// the changelog is regenerated by the build, so its absence means the
// tooling failed, not that the operator forgot an entry.
func CheckChangelog(workDir, version string) error {
	path := filepath.Join(workDir, ChangelogFileName)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if scanner.Text() == version {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return model.NewUserError("check-changelog: version missing from %s: %s", ChangelogFileName, version)
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
