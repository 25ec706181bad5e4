package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumclass/internal/diag"
	"enumclass/internal/diagfmt"
	"enumclass/internal/directive"
	"enumclass/internal/driver"
	"enumclass/internal/observ"
	"enumclass/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.ec|directory>",
	Short: "Report non-exhaustive switches and unreachable patterns",
	Long:  `Check one .ec file or every .ec file below a directory and report exhaustiveness and declaration diagnostics.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	addAnalysisFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show the lines each fix would produce")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	checkCmd.Flags().Bool("expect", false, "compare diagnostics against // expect: comments instead of printing them")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	expect, err := cmd.Flags().GetBool("expect")
	if err != nil {
		return err
	}
	showFixes := suggest || preview

	opts, err := s.driverOptions(showFixes)
	if err != nil {
		return err
	}

	var result *driver.Result
	if s.format == "pretty" && !s.quiet && isDir(target) && shouldUseTUI(mode) {
		result, err = runDiagnoseWithUI(cmd.Context(), "checking "+target, target, opts)
	} else {
		result, err = driver.Diagnose(cmd.Context(), target, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if expect {
		return runExpectations(out, result, s.quiet)
	}
	switch s.format {
	case "pretty":
		diagfmt.Pretty(out, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       !color.NoColor,
			Context:     1,
			PathMode:    s.pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   showFixes,
			ShowPreview: preview,
		})
		if !s.quiet {
			printSummary(out, result)
		}
	case "short":
		diagfmt.Short(out, result.Bag, result.FileSet, s.pathMode)
	case "json":
		err = diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  preview,
		})
	case "sarif":
		err = diagfmt.Sarif(out, result.Bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "enumclass",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		return fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if s.timings {
		if err := printTimings(cmd.ErrOrStderr(), opts.Timer, s.format == "json"); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		return errFindings
	}
	return nil
}

// runExpectations checks result against the // expect: comments of every
// analyzed file.
func runExpectations(out io.Writer, result *driver.Result, quiet bool) error {
	reg := directive.NewRegistry()
	for _, fr := range result.Files {
		reg.CollectFromFile(result.FileSet, fr.FileID, fr.Path)
	}
	cfg := directive.RunnerConfig{Output: out}
	if quiet {
		cfg.Output = io.Discard
	}
	res := directive.NewRunner(reg, cfg).Run(result.FileSet, result.Bag.Items())
	if !res.OK() {
		return errFindings
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// printSummary writes the trailing "N files, M constructs" line.
func printSummary(w io.Writer, result *driver.Result) {
	constructs, cached := 0, 0
	for _, fr := range result.Files {
		constructs += len(fr.Analyses)
		if fr.Cached {
			cached++
		}
	}
	errs, warns := 0, 0
	for _, d := range result.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if result.Bag.Len() > 0 {
		fmt.Fprintln(w)
	}
	line := fmt.Sprintf("checked %s, %s: %s, %s",
		plural(len(result.Files), "file"), plural(constructs, "construct"),
		plural(errs, "error"), plural(warns, "warning"))
	if cached > 0 {
		line += fmt.Sprintf(" (%d cached)", cached)
	}
	fmt.Fprintln(w, line)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func printTimings(w io.Writer, timer *observ.Timer, asJSON bool) error {
	if timer == nil {
		return nil
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(timer.Report())
	}
	_, err := io.WriteString(w, timer.Summary())
	return err
}
