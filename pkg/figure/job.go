// Package figure implements the figgen conversion engine: the backend
// abstraction over local renderer tools and the kroki web service, the
// extension-based dispatcher, and the bounded parallel execution of
// conversion units.
//
// A conversion unit is one (source file, page, format) triple. Units are
// independent: they share only the read-only backend configuration and
// write to distinct artifact paths by construction, so no locking is
// needed. Outputs that already exist are skipped unless forced.
package figure

import (
	"github.com/google/uuid"
)

// Job describes one input file to convert. It is immutable once created;
// multi-page documents expand into per-page units internally.
type Job struct {
	ID     string // correlates log lines for this job
	Source string // input file path
	OutDir string // target directory for artifacts
	Format string // requested output format ("pdf", "png", ...)
	Force  bool   // overwrite an existing artifact
}

// NewJob creates a Job with a fresh ID.
func NewJob(source, outDir, format string, force bool) Job {
	return Job{
		ID:     uuid.NewString(),
		Source: source,
		OutDir: outDir,
		Format: format,
		Force:  force,
	}
}

// Result reports the outcome of one conversion unit.
type Result struct {
	Job      Job
	Artifact string // resolved artifact path
	Page     int    // page index for multi-page documents, 0 otherwise
	Suffix   string // page suffix baked into the artifact name, "" for single-page
	Cached   bool   // artifact already existed; no work performed
	Err      error  // per-unit failure, nil on success
}

// OK reports whether the unit succeeded (including cache hits).
func (r Result) OK() bool { return r.Err == nil }
