package directive

import (
	"fmt"
	"io"

	"enumclass/internal/diag"
	"enumclass/internal/source"
)

// RunnerConfig configures directive checking.
type RunnerConfig struct {
	// Filter limits checking to specific namespaces (empty = all).
	Filter []string

	// Output receives one line per scenario and the summary.
	Output io.Writer
}

type RunResult struct {
	Total  int
	Passed int
	Failed int
	// Unexpected counts diagnostics in covered files that no directive
	// names.
	Unexpected int
}

func (r RunResult) OK() bool {
	return r.Failed == 0 && r.Unexpected == 0
}

// Runner matches scenarios against reported diagnostics.
type Runner struct {
	config   RunnerConfig
	registry *Registry
}

func NewRunner(registry *Registry, config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = io.Discard
	}
	return &Runner{
		config:   config,
		registry: registry,
	}
}

// Run checks that every code named by a scenario was reported on its line
// and that nothing else was reported in the covered files.
func (r *Runner) Run(fs *source.FileSet, diagnostics []diag.Diagnostic) RunResult {
	scenarios := r.registry.FilterByNamespace(r.config.Filter)
	used := make([]bool, len(diagnostics))
	result := RunResult{Total: len(scenarios)}

	for i := range scenarios {
		s := &scenarios[i]
		var missing []string
		for _, code := range s.Codes {
			idx := -1
			for j, d := range diagnostics {
				if !used[j] && d.Primary.File == s.File && d.Code.ID() == code && lineOf(fs, d) == s.Line {
					idx = j
					break
				}
			}
			if idx < 0 {
				missing = append(missing, code)
				continue
			}
			used[idx] = true
		}
		if len(missing) > 0 {
			result.Failed++
			fmt.Fprintf(r.config.Output, "FAIL %s: missing %v\n", s.Location(), missing)
			continue
		}
		result.Passed++
		fmt.Fprintf(r.config.Output, "ok   %s %v\n", s.Location(), s.Codes)
	}

	for i, d := range diagnostics {
		if used[i] || !r.registry.Covers(d.Primary.File) {
			continue
		}
		result.Unexpected++
		start, _ := fs.Resolve(d.Primary)
		path := ""
		if f := fs.Get(d.Primary.File); f != nil {
			path = f.FormatPath("relative", fs.BaseDir())
		}
		fmt.Fprintf(r.config.Output, "UNEXPECTED %s:%d:%d %s %s\n", path, start.Line, start.Col, d.Code.ID(), d.Message)
	}

	fmt.Fprintln(r.config.Output)
	fmt.Fprintf(r.config.Output, "Expectation summary: %d total, %d passed, %d failed, %d unexpected\n",
		result.Total, result.Passed, result.Failed, result.Unexpected)
	return result
}

func lineOf(fs *source.FileSet, d diag.Diagnostic) uint32 {
	start, _ := fs.Resolve(d.Primary)
	return start.Line
}
