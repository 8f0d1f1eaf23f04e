package release

import (
	"context"

	"github.com/mmr-tortoise/relcut/internal/bumpversion"
	"github.com/mmr-tortoise/relcut/internal/model"
	"github.com/mmr-tortoise/relcut/internal/workspace"
)

// bumpTool is the external version-bump tool. It owns the version
// arithmetic, rewrites .bumpversion.cfg, and commits the change to the
// clone's history.
const bumpTool = "bumpversion"

// Pipeline threads the immutable release configuration and the workspace
// handle through the ordered release steps. It holds no other state —
// every step reads its inputs from the workspace.
type Pipeline struct {
	cfg model.ReleaseConfig
	ws  *workspace.Workspace
}

// New creates a Pipeline over an already-allocated workspace.
func New(cfg model.ReleaseConfig, ws *workspace.Workspace) *Pipeline {
	return &Pipeline{cfg: cfg, ws: ws}
}

// Run executes the full release sequence.
//
// Every external command's exit status is checked: a failing clone, make
// target, or version bump aborts the pipeline immediately with the raw
// error. Only the verification steps produce UserErrors — those are the
// release-process rules an operator can act on.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.createWorkspace(ctx); err != nil {
		return err
	}
	if err := p.initializeWorkspace(ctx); err != nil {
		return err
	}
	if err := p.bumpVersion(ctx); err != nil {
		return err
	}
	if err := p.showCommit(ctx); err != nil {
		return err
	}
	if err := p.buildDocs(ctx); err != nil {
		return err
	}
	if err := p.buildChangelog(ctx); err != nil {
		return err
	}

	// The new version exists only after the bump; read it back from the
	// clone's .bumpversion.cfg for the verification steps.
	version, err := bumpversion.CurrentVersion(p.ws.Dir)
	if err != nil {
		return err
	}

	if err := CheckDoc(p.ws.Dir, version); err != nil {
		return err
	}
	return CheckChangelog(p.ws.Dir, version)
}

// createWorkspace clones the release branch into the workspace directory.
func (p *Pipeline) createWorkspace(ctx context.Context) error {
	return p.ws.Run(ctx, "git", "clone", "--branch", p.cfg.Branch, p.cfg.Remote, p.ws.Dir)
}

// initializeWorkspace runs the project's pre-release target, which is
// expected to install dependencies and prepare the build tooling.
func (p *Pipeline) initializeWorkspace(ctx context.Context) error {
	return p.make(ctx, "pre-release")
}

// bumpVersion invokes the version-bump tool with the requested release
// type. The tool mutates the version metadata and commits it.
func (p *Pipeline) bumpVersion(ctx context.Context) error {
	return p.ws.Run(ctx, bumpTool, p.cfg.ReleaseType.String())
}

// showCommit displays the bump commit. Diagnostic only — the operator sees
// what the release will ship as; nothing is validated here.
func (p *Pipeline) showCommit(ctx context.Context) error {
	return p.ws.Run(ctx, "git", "--no-pager", "show", "HEAD")
}

// buildDocs rebuilds the documentation from scratch.
func (p *Pipeline) buildDocs(ctx context.Context) error {
	if err := p.make(ctx, "doc-clean"); err != nil {
		return err
	}
	return p.make(ctx, "doc")
}

// buildChangelog regenerates the changelog artifact.
func (p *Pipeline) buildChangelog(ctx context.Context) error {
	return p.make(ctx, "changes")
}

// make runs a single build-tool target in the workspace.
func (p *Pipeline) make(ctx context.Context, target string) error {
	return p.ws.Run(ctx, "make", target)
}
