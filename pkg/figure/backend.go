package figure

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/figtools/figgen/pkg/errors"
)

// Backend is one renderer integration: a local external tool or the remote
// kroki service.
type Backend interface {
	// Name identifies the backend in diagnostics ("drawio", "dot", ...).
	Name() string

	// Formats returns the output formats this backend is checked against.
	// An empty slice means the backend is not format-checked here and
	// validation is delegated to the external tool.
	Formats() []string

	// Convert performs all conversion units for one input file. Multi-page
	// backends return one Result per page; the rest return exactly one.
	// Per-unit failures are carried in the Results, never as a panic or a
	// batch abort.
	Convert(ctx context.Context, job Job) []Result

	// ConvertAll fans jobs out across the worker pool. The error return is
	// reserved for fatal configuration problems (an unsupported requested
	// format), detected before any unit starts.
	ConvertAll(ctx context.Context, jobs []Job) ([]Result, error)
}

// CommandBuilder is implemented by backends that invoke a local executable.
// Given the requested format, resolved artifact path, source path, and page
// index it returns the exact argv to run.
type CommandBuilder interface {
	BuildCommand(format, dest, source string, page int) []string
}

// ArtifactPath resolves the output path for a job:
// <outdir>/<source basename without extension><suffix>.<format>.
func ArtifactPath(job Job, suffix string) string {
	base := filepath.Base(job.Source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(job.OutDir, stem+suffix+"."+job.Format)
}

// artifactExists is the cache gate: a plain existence check, no content
// hash or mtime comparison. A stale artifact still counts as a hit.
func artifactExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// checkFormat validates the requested format against a backend's
// allow-list. The returned error is fatal for the whole invocation.
func checkFormat(b Backend, format string) error {
	formats := b.Formats()
	if len(formats) == 0 {
		return nil
	}
	if !slices.Contains(formats, format) {
		return errors.New(errors.ErrCodeUnsupportedFormat,
			"%s can not convert to %s (supported: %s)", b.Name(), format, strings.Join(formats, ", "))
	}
	return nil
}

// convertAll is the shared ConvertAll implementation: one format gate for
// the whole batch, then one document-level unit per job on the pool.
func convertAll(ctx context.Context, b Backend, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	if err := checkFormat(b, jobs[0].Format); err != nil {
		return nil, err
	}

	perJob := make([][]Result, len(jobs))
	forEach(DefaultWorkers, len(jobs), func(i int) {
		perJob[i] = b.Convert(ctx, jobs[i])
	})

	var results []Result
	for _, rs := range perJob {
		results = append(results, rs...)
	}
	return results, nil
}

// convertFile runs the common single-page flow: resolve the artifact path,
// create the target directory, honor the cache gate, then execute the
// built command.
func convertFile(ctx context.Context, b Backend, cb CommandBuilder, run Runner, job Job) Result {
	res := Result{Job: job, Artifact: ArtifactPath(job, "")}

	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", job.OutDir)
		return res
	}

	if !job.Force && artifactExists(res.Artifact) {
		res.Cached = true
		return res
	}

	argv := cb.BuildCommand(job.Format, res.Artifact, job.Source, 0)
	if err := run(ctx, argv); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeRendererFailed, err, "%s failed on %s", b.Name(), job.Source)
	}
	return res
}
