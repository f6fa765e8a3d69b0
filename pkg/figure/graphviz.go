package figure

import (
	"bytes"
	"context"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/figtools/figgen/pkg/errors"
)

// DefaultDotPath is the usual graphviz dot location.
const DefaultDotPath = "/usr/bin/dot"

var dotFormats = []string{"pdf", "ps", "png", "svg", "fig", "gif", "jpg", "jpeg", "json"}

// embeddedFormats maps the formats the in-process graphviz engine can
// produce when the external dot binary is not installed.
var embeddedFormats = map[string]graphviz.Format{
	"svg":  graphviz.SVG,
	"png":  graphviz.PNG,
	"jpg":  graphviz.JPG,
	"jpeg": graphviz.JPG,
}

// Dot renders graphviz DOT files. It prefers the external dot binary; when
// that is missing it falls back to the embedded graphviz engine for the
// formats the engine supports.
type Dot struct {
	path string
	run  Runner
}

// NewDot creates the graphviz backend using the given dot executable path.
func NewDot(path string) *Dot {
	if path == "" {
		path = DefaultDotPath
	}
	return &Dot{path: path, run: runCommand}
}

// Name implements Backend.
func (d *Dot) Name() string { return "dot" }

// Formats implements Backend.
func (d *Dot) Formats() []string { return dotFormats }

// BuildCommand implements CommandBuilder.
func (d *Dot) BuildCommand(format, dest, source string, _ int) []string {
	return []string{d.path, "-T" + format, "-o", dest, source}
}

// Convert implements Backend.
func (d *Dot) Convert(ctx context.Context, job Job) []Result {
	if _, ok := embeddedFormats[job.Format]; ok && toolMissing(d.path) {
		return []Result{d.convertEmbedded(ctx, job)}
	}
	return []Result{convertFile(ctx, d, d, d.run, job)}
}

// convertEmbedded renders through the bundled graphviz engine instead of
// shelling out.
func (d *Dot) convertEmbedded(ctx context.Context, job Job) Result {
	res := Result{Job: job, Artifact: ArtifactPath(job, "")}

	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", job.OutDir)
		return res
	}
	if !job.Force && artifactExists(res.Artifact) {
		res.Cached = true
		return res
	}

	data, err := renderEmbedded(ctx, job.Source, embeddedFormats[job.Format])
	if err != nil {
		res.Err = errors.Wrap(errors.ErrCodeRendererFailed, err, "embedded graphviz failed on %s", job.Source)
		return res
	}
	if err := os.WriteFile(res.Artifact, data, 0o644); err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "write %s", res.Artifact)
	}
	return res
}

func renderEmbedded(ctx context.Context, source string, format graphviz.Format) ([]byte, error) {
	dot, err := os.ReadFile(source)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, err
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertAll implements Backend.
func (d *Dot) ConvertAll(ctx context.Context, jobs []Job) ([]Result, error) {
	return convertAll(ctx, d, jobs)
}

var (
	_ Backend        = (*Dot)(nil)
	_ CommandBuilder = (*Dot)(nil)
)
