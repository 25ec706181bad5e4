package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"enumclass/internal/driver"
	"enumclass/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.ec|directory>",
	Short: "Add the missing cases to non-exhaustive switches",
	Long:  "Run the checker and apply the fixes attached to its diagnostics. Without flags the first preferred fix is applied.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	addAnalysisFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier")
	fixCmd.Flags().Bool("list", false, "list fix identifiers without applying anything")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := s.driverOptions(true)
	if err != nil {
		return err
	}
	result, err := driver.Diagnose(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	out := cmd.OutOrStdout()
	if list {
		return listFixes(out, result)
	}
	res, applyErr := fix.Apply(result.FileSet, result.Bag.Items(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	if err := printApplyResult(out, res, applyErr, dryRun); err != nil {
		return err
	}
	if s.timings {
		return printTimings(cmd.ErrOrStderr(), opts.Timer, false)
	}
	return nil
}

func listFixes(w io.Writer, result *driver.Result) error {
	cands := fix.Candidates(result.FileSet, result.Bag.Items())
	if len(cands) == 0 {
		_, err := fmt.Fprintln(w, "No fixes available.")
		return err
	}
	for _, c := range cands {
		marker := " "
		if c.Fix.IsPreferred {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s: %s\n", marker, c.ID, c.Title, c.Diag.Message); err != nil {
			return err
		}
	}
	return nil
}

func printApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(w, "  %s [%s] (%d edits)\n", item.Title, item.ID, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, ch := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", ch.Path, ch.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(w, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}
