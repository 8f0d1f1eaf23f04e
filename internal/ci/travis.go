// Package ci queries a remote CI API for the build status of a branch and
// checks it against the local checkout.
//
// This check is not part of the mandatory release sequence. It is exposed
// as the explicit "ci-check" CLI command, for operators who want to confirm
// the branch is green before releasing. Whether it should become mandatory
// is a product decision that has been left open.
package ci

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmr-tortoise/relcut/internal/model"
	"github.com/mmr-tortoise/relcut/internal/workspace"
)

// DefaultBaseURL is the CI API endpoint used when no override is configured.
const DefaultBaseURL = "https://api.travis-ci.org"

// BranchStatus is the subset of the CI branch API response the check needs:
// the commit the latest build ran against and the build state of the branch.
type BranchStatus struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
	Branch struct {
		State string `json:"state"`
	} `json:"branch"`
}

// Client talks to the CI status API for a single repository.
type Client struct {
	// BaseURL is the API root, without a trailing slash requirement.
	BaseURL string

	// Slug identifies the repository as "owner/repo".
	Slug string

	// HTTPClient performs the requests. Defaults to a client with a
	// modest timeout; tests substitute httptest clients.
	HTTPClient *http.Client
}

// NewClient creates a CI client for the given repository slug.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, slug string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		Slug:       slug,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// urlFor joins a URI path onto the base URL, normalizing slashes on both
// sides so configured base URLs may or may not carry a trailing slash.
func (c *Client) urlFor(uri string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(uri, "/")
}

// BranchStatus fetches the CI status of the given branch.
//
// Network and decoding failures are returned raw — an unreachable CI API is
// a tooling fault, not a release-rule violation.
func (c *Client) BranchStatus(ctx context.Context, branch string) (*BranchStatus, error) {
	url := c.urlFor(fmt.Sprintf("repos/%s/branches/%s", c.Slug, branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	var status BranchStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", url, err)
	}

	return &status, nil
}

// CheckBranch verifies the CI invariants for the branch checked out in the
// workspace:
//
//  1. The commit the latest CI build ran against must equal the local HEAD
//     of the branch (git rev-parse <branch> in the workspace).
//  2. The branch build state must be the literal "passed".
//
// Violations are UserErrors — both conditions are operator-actionable
// (push the missing commit, or wait for / fix the build).
func (c *Client) CheckBranch(ctx context.Context, ws *workspace.Workspace, branch string) error {
	localSHA, err := ws.RevParse(ctx, branch)
	if err != nil {
		return err
	}

	fmt.Printf("Current HEAD is %s\n", localSHA)

	status, err := c.BranchStatus(ctx, branch)
	if err != nil {
		return err
	}

	if status.Commit.SHA != localSHA {
		return model.NewUserError("ci-check: latest CI build does not match current HEAD (built %s, local %s)",
			status.Commit.SHA, localSHA)
	}
	if status.Branch.State != "passed" {
		return model.NewUserError("ci-check: latest build status is %q", status.Branch.State)
	}

	return nil
}
