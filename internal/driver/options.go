package driver

import (
	"errors"
	"fmt"

	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/observ"
	"enumclass/internal/project"
)

// ErrNoSources is returned when a directory holds no .ec files.
var ErrNoSources = errors.New("no .ec source files found")

// SourceExt is the extension of files picked up from directories.
const SourceExt = ".ec"

// Options control one Diagnose run. The zero value checks with one job per
// CPU, no cache and an unlimited diagnostic budget.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Coverage       coverage.Options
	// Fixes attaches "Add remaining cases" edits to findings.
	Fixes bool

	// Manifest supplies severity overrides. Its own problems are reported
	// against the manifest file.
	Manifest *project.Manifest

	Cache *DiskCache
	Timer *observ.Timer
	// Progress receives file events. Diagnose never closes it.
	Progress chan<- Event
}

// fingerprint is the part of Options that changes per-file results.
func (o Options) fingerprint() []byte {
	return fmt.Appendf(nil, "schema=%d;max=%d;null=%t;fixes=%t",
		diskCacheSchemaVersion, o.MaxDiagnostics, o.Coverage.WildcardCoversNull, o.Fixes)
}

// applyOverrides rewrites severities in bag; codes switched off are dropped.
func applyOverrides(bag *diag.Bag, overrides map[diag.Code]project.Override) {
	if len(overrides) == 0 {
		return
	}
	bag.Filter(func(d *diag.Diagnostic) bool {
		o, ok := overrides[d.Code]
		return !ok || !o.Off
	})
	bag.Transform(func(d *diag.Diagnostic) {
		if o, ok := overrides[d.Code]; ok {
			d.Severity = o.Severity
		}
	})
}
