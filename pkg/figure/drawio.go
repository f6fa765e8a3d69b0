package figure

import (
	"context"
	"os"
	"strconv"

	"github.com/figtools/figgen/pkg/errors"
)

// DefaultDrawioPath is where the drawio desktop app installs on Linux.
const DefaultDrawioPath = "/opt/drawio/drawio"

var drawioFormats = []string{"pdf", "png", "jpg", "svg", "vsdx", "xml"}

// Drawio exports drawio documents through the drawio desktop binary. It is
// the only multi-page backend: each document expands into one unit per
// declared page, exported concurrently on a page-level pool nested inside
// the file-level pool.
type Drawio struct {
	path string
	run  Runner
}

// NewDrawio creates the drawio backend using the given executable path.
func NewDrawio(path string) *Drawio {
	if path == "" {
		path = DefaultDrawioPath
	}
	return &Drawio{path: path, run: runCommand}
}

// Name implements Backend.
func (d *Drawio) Name() string { return "drawio" }

// Formats implements Backend.
func (d *Drawio) Formats() []string { return drawioFormats }

// BuildCommand implements CommandBuilder. PDF exports are cropped to the
// drawing bounds.
func (d *Drawio) BuildCommand(format, dest, source string, page int) []string {
	argv := []string{d.path, "--export", "--format", format, "--page-index", strconv.Itoa(page)}
	if format == "pdf" {
		argv = append(argv, "--crop")
	}
	return append(argv, "--output", dest, source)
}

// Convert exports every page of the document. Page units run concurrently
// and fail independently; a broken page never blocks its siblings.
func (d *Drawio) Convert(ctx context.Context, job Job) []Result {
	content, err := os.ReadFile(job.Source)
	if err != nil {
		return []Result{{
			Job: job,
			Err: errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", job.Source),
		}}
	}

	suffixes := Pages(string(content))

	results := make([]Result, len(suffixes))
	forEach(DefaultWorkers, len(suffixes), func(i int) {
		results[i] = d.convertPage(ctx, job, suffixes[i], i)
	})
	return results
}

// convertPage exports a single page. The page index in the export command
// matches the suffix's position in the Pages output.
func (d *Drawio) convertPage(ctx context.Context, job Job, suffix string, page int) Result {
	res := Result{Job: job, Page: page, Suffix: suffix, Artifact: ArtifactPath(job, suffix)}

	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", job.OutDir)
		return res
	}

	if !job.Force && artifactExists(res.Artifact) {
		res.Cached = true
		return res
	}

	argv := d.BuildCommand(job.Format, res.Artifact, job.Source, page)
	if err := d.run(ctx, argv); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeRendererFailed, err,
			"drawio failed on %s page %d", job.Source, page)
	}
	return res
}

// ConvertAll implements Backend.
func (d *Drawio) ConvertAll(ctx context.Context, jobs []Job) ([]Result, error) {
	return convertAll(ctx, d, jobs)
}

var (
	_ Backend        = (*Drawio)(nil)
	_ CommandBuilder = (*Drawio)(nil)
)
