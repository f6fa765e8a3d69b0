package figure

import (
	"context"
	"os"
	"path/filepath"

	"github.com/figtools/figgen/pkg/errors"
	"github.com/figtools/figgen/pkg/kroki"
)

// Remote renders markup sources (mermaid, plantuml) through a kroki
// service. It has no local executable: command execution is replaced by an
// HTTP GET carrying the compressed source in the URL.
type Remote struct {
	client *kroki.Client
}

// NewRemote creates the remote backend against the given kroki host
// (empty selects the public service).
func NewRemote(host string) *Remote {
	return &Remote{client: kroki.New(host)}
}

// Name implements Backend.
func (r *Remote) Name() string { return "kroki" }

// Formats implements Backend. The service validates formats per language,
// so no allow-list is enforced locally.
func (r *Remote) Formats() []string { return nil }

// Convert implements Backend. A non-200 response is a per-file error: it
// is reported, not retried, and never aborts the batch.
func (r *Remote) Convert(ctx context.Context, job Job) []Result {
	res := Result{Job: job, Artifact: ArtifactPath(job, "")}

	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", job.OutDir)
		return []Result{res}
	}
	if !job.Force && artifactExists(res.Artifact) {
		res.Cached = true
		return []Result{res}
	}

	source, err := os.ReadFile(job.Source)
	if err != nil {
		res.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", job.Source)
		return []Result{res}
	}

	body, err := r.client.Render(ctx, filepath.Ext(job.Source), job.Format, source)
	if err != nil {
		res.Err = err
		return []Result{res}
	}

	if err := os.WriteFile(res.Artifact, body, 0o644); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "write %s", res.Artifact)
	}
	return []Result{res}
}

// ConvertAll implements Backend.
func (r *Remote) ConvertAll(ctx context.Context, jobs []Job) ([]Result, error) {
	return convertAll(ctx, r, jobs)
}

var _ Backend = (*Remote)(nil)
