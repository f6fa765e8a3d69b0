package figure

import "context"

// DefaultMagickPath is the usual ImageMagick convert location.
const DefaultMagickPath = "/usr/bin/convert"

// Magick converts raster images with ImageMagick. ImageMagick reads and
// writes well over two hundred formats, so this backend is not
// format-checked; the tool reports unsupported conversions itself.
type Magick struct {
	path string
	run  Runner
}

// NewMagick creates the ImageMagick backend using the given executable path.
func NewMagick(path string) *Magick {
	if path == "" {
		path = DefaultMagickPath
	}
	return &Magick{path: path, run: runCommand}
}

// Name implements Backend.
func (m *Magick) Name() string { return "imagemagick" }

// Formats implements Backend. The empty list means unchecked.
func (m *Magick) Formats() []string { return nil }

// BuildCommand implements CommandBuilder. ImageMagick infers both formats
// from the file extensions.
func (m *Magick) BuildCommand(_ string, dest, source string, _ int) []string {
	return []string{m.path, source, dest}
}

// Convert implements Backend.
func (m *Magick) Convert(ctx context.Context, job Job) []Result {
	return []Result{convertFile(ctx, m, m, m.run, job)}
}

// ConvertAll implements Backend.
func (m *Magick) ConvertAll(ctx context.Context, jobs []Job) ([]Result, error) {
	return convertAll(ctx, m, jobs)
}

var (
	_ Backend        = (*Magick)(nil)
	_ CommandBuilder = (*Magick)(nil)
)
