package figure

import "context"

// DefaultInkscapePath is the usual inkscape location.
const DefaultInkscapePath = "/usr/bin/inkscape"

var inkscapeFormats = []string{"eps", "emf", "wmf", "xaml", "pdf", "ps", "png", "svg"}

// Inkscape converts vector image sources. It handles the vector half of
// the raw-image group; everything else goes to the universal Magick
// backend.
type Inkscape struct {
	path string
	run  Runner
}

// NewInkscape creates the inkscape backend using the given executable path.
func NewInkscape(path string) *Inkscape {
	if path == "" {
		path = DefaultInkscapePath
	}
	return &Inkscape{path: path, run: runCommand}
}

// Name implements Backend.
func (i *Inkscape) Name() string { return "inkscape" }

// Formats implements Backend.
func (i *Inkscape) Formats() []string { return inkscapeFormats }

// BuildCommand implements CommandBuilder.
func (i *Inkscape) BuildCommand(format, dest, source string, _ int) []string {
	return []string{i.path, "--export-type=" + format, "-o", dest, source}
}

// Convert implements Backend.
func (i *Inkscape) Convert(ctx context.Context, job Job) []Result {
	return []Result{convertFile(ctx, i, i, i.run, job)}
}

// ConvertAll implements Backend.
func (i *Inkscape) ConvertAll(ctx context.Context, jobs []Job) ([]Result, error) {
	return convertAll(ctx, i, jobs)
}

var (
	_ Backend        = (*Inkscape)(nil)
	_ CommandBuilder = (*Inkscape)(nil)
)
