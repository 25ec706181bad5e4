package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"enumclass/internal/coverage"
	"enumclass/internal/diagfmt"
	"enumclass/internal/driver"
	"enumclass/internal/observ"
	"enumclass/internal/project"
)

const manifestFlagHint = project.ManifestName + " (default: searched upwards from the target)"

// settings is the manifest with command-line flags applied on top.
type settings struct {
	manifest *project.Manifest

	format         string
	pathMode       diagfmt.PathMode
	maxDiagnostics int
	jobs           int
	cache          bool
	coverage       coverage.Options

	quiet   bool
	timings bool
}

// addAnalysisFlags registers the flags shared by check, fix and cases.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = manifest value, then one per CPU)")
	cmd.Flags().Bool("cache", false, "cache per-file results on disk")
	cmd.Flags().Bool("wildcard-covers-null", true, "let default/_ arms also handle null")
	cmd.Flags().String("path-mode", "", "how to print file paths (auto|absolute|relative|basename)")
}

// loadManifest reads --config or the nearest enumclass.toml above target.
// Without one the defaults are used.
func loadManifest(cmd *cobra.Command, target string) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = project.FindManifest(target)
		if errors.Is(err, project.ErrNoManifest) {
			return project.Default(), nil
		}
		if err != nil {
			return nil, err
		}
	}
	return project.Load(path)
}

func resolveSettings(cmd *cobra.Command, target string) (*settings, error) {
	m, err := loadManifest(cmd, target)
	if err != nil {
		return nil, err
	}
	s := &settings{
		manifest:       m,
		format:         m.Output.Format,
		maxDiagnostics: m.Analysis.MaxDiagnostics,
		jobs:           m.Analysis.Jobs,
		cache:          m.Output.Cache,
		coverage:       coverage.Options{WildcardCoversNull: m.Analysis.WildcardCoversNull},
	}
	pathMode := m.Output.PathMode

	root := cmd.Root().PersistentFlags()
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, err
	}
	if n, err := root.GetInt("max-diagnostics"); err != nil {
		return nil, err
	} else if n > 0 {
		s.maxDiagnostics = n
	}

	flags := cmd.Flags()
	if flags.Lookup("format") != nil && flags.Changed("format") {
		if s.format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("jobs") != nil {
		if n, err := flags.GetInt("jobs"); err != nil {
			return nil, err
		} else if n > 0 {
			s.jobs = n
		}
	}
	if flags.Changed("cache") {
		if s.cache, err = flags.GetBool("cache"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("wildcard-covers-null") {
		if s.coverage.WildcardCoversNull, err = flags.GetBool("wildcard-covers-null"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("path-mode") {
		if pathMode, err = flags.GetString("path-mode"); err != nil {
			return nil, err
		}
	}
	if s.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return nil, err
	}
	return s, nil
}

// driverOptions builds the driver configuration. The returned timer is nil
// unless --timings is set.
func (s *settings) driverOptions(fixes bool) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
		Coverage:       s.coverage,
		Fixes:          fixes,
		Manifest:       s.manifest,
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("enumclass")
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
