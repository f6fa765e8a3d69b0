package figure

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/figtools/figgen/pkg/errors"
	"github.com/figtools/figgen/pkg/kroki"
)

// Config carries the per-backend executable paths and the kroki host.
// Empty fields select the documented defaults. Configured once at startup
// and read-only afterward; it is shared across all workers.
type Config struct {
	DrawioPath   string // default /opt/drawio/drawio
	DotPath      string // default /usr/bin/dot
	InkscapePath string // default /usr/bin/inkscape
	MagickPath   string // default /usr/bin/convert
	KrokiHost    string // default https://kroki.io
}

// Request describes one conversion batch.
type Request struct {
	Sources     []string // input file paths
	OutDir      string   // output directory for all artifacts
	Format      string   // single target format for the whole batch
	Force       bool     // regenerate existing artifacts
	AllowImages bool     // permit raw-image inputs (inkscape/imagemagick)
}

// Report collects the outcome of a batch.
type Report struct {
	Results []Result
	Skipped []string // unrecognized inputs, excluded with a diagnostic
}

// Converted counts units that performed a conversion successfully.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && !res.Cached {
			n++
		}
	}
	return n
}

// Cached counts units skipped because the artifact already existed.
func (r *Report) Cached() int {
	n := 0
	for _, res := range r.Results {
		if res.Cached {
			n++
		}
	}
	return n
}

// Failed counts units that reported an error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// vectorExts are raw-image extensions routed to the vector-capable
// inkscape backend; any other image extension goes to imagemagick.
var vectorExts = map[string]bool{
	".svg": true,
	".eps": true,
	".ps":  true,
	".wmf": true,
	".emf": true,
}

// markupExts are routed to the remote kroki backend.
var markupExts = map[string]bool{
	".mmd":  true,
	".puml": true,
}

// Dispatcher classifies inputs by extension, groups them per backend, and
// runs each group's batch conversion.
type Dispatcher struct {
	drawio   Backend
	dot      Backend
	inkscape Backend
	magick   Backend
	remote   Backend
	logger   *log.Logger
}

// NewDispatcher wires the five backends from cfg. A nil logger falls back
// to the package default.
func NewDispatcher(cfg Config, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		drawio:   NewDrawio(cfg.DrawioPath),
		dot:      NewDot(cfg.DotPath),
		inkscape: NewInkscape(cfg.InkscapePath),
		magick:   NewMagick(cfg.MagickPath),
		remote:   NewRemote(cfg.KrokiHost),
		logger:   logger,
	}
}

// group holds the jobs classified for one backend.
type group struct {
	backend Backend
	jobs    []Job
}

// Run converts every source in req. Fatal problems (usage errors,
// unsupported formats for a format-checked backend, a missing kroki
// language mapping) return an error before any unit starts. Per-unit
// failures are carried in the Report; siblings are unaffected.
func (d *Dispatcher) Run(ctx context.Context, req Request) (*Report, error) {
	groups, skipped, err := d.classify(req)
	if err != nil {
		return nil, err
	}
	report := &Report{Skipped: skipped}

	// Configuration errors abort before any group starts work.
	if err := d.preflight(groups, req.Format); err != nil {
		return nil, err
	}

	for _, g := range groups {
		if len(g.jobs) == 0 {
			continue
		}
		d.logger.Debugf("converting %d file(s) with %s", len(g.jobs), g.backend.Name())
		results, err := g.backend.ConvertAll(ctx, g.jobs)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, results...)
	}
	return report, nil
}

// classify splits req.Sources into per-backend groups. Unrecognized inputs
// are excluded with one diagnostic line each; raw images without the allow
// flag are a usage error for the whole batch.
func (d *Dispatcher) classify(req Request) ([]group, []string, error) {
	groups := []group{
		{backend: d.drawio},
		{backend: d.dot},
		{backend: d.remote},
		{backend: d.inkscape},
		{backend: d.magick},
	}
	var skipped []string

	for _, source := range req.Sources {
		job := NewJob(source, req.OutDir, req.Format, req.Force)
		ext := strings.ToLower(filepath.Ext(source))

		switch {
		case ext == ".drawio":
			groups[0].jobs = append(groups[0].jobs, job)
		case ext == ".dot":
			groups[1].jobs = append(groups[1].jobs, job)
		case markupExts[ext]:
			groups[2].jobs = append(groups[2].jobs, job)
		case ext == "":
			d.logger.Warnf("skipping %s: no file extension to route on", source)
			skipped = append(skipped, source)
			continue
		case !req.AllowImages:
			return nil, nil, errors.New(errors.ErrCodeUsage,
				"%s is a raw image; pass --convert to allow inkscape/imagemagick conversion", source)
		case vectorExts[ext]:
			groups[3].jobs = append(groups[3].jobs, job)
		default:
			groups[4].jobs = append(groups[4].jobs, job)
		}
		d.logger.Debugf("job %s: %s -> %s", job.ID, source, req.Format)
	}
	return groups, skipped, nil
}

// preflight validates the requested format against every non-empty
// format-checked group and the kroki language table, before any external
// invocation.
func (d *Dispatcher) preflight(groups []group, format string) error {
	for _, g := range groups {
		if len(g.jobs) == 0 {
			continue
		}
		if err := checkFormat(g.backend, format); err != nil {
			return err
		}
		if g.backend == d.remote {
			for _, job := range g.jobs {
				if _, err := kroki.Language(strings.ToLower(filepath.Ext(job.Source))); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
