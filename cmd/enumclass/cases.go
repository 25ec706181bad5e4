package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumclass/internal/diagfmt"
	"enumclass/internal/driver"
)

var casesCmd = &cobra.Command{
	Use:   "cases [flags] <file.ec|directory> [Type]",
	Short: "List the resolved cases of closed types",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCases,
}

func init() {
	addAnalysisFlags(casesCmd)
	casesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type caseJSON struct {
	Name string `json:"name"`
	Line uint32 `json:"line"`
}

type closedJSON struct {
	Name  string     `json:"name"`
	File  string     `json:"file"`
	Line  uint32     `json:"line"`
	Cases []caseJSON `json:"cases"`
}

func runCases(cmd *cobra.Command, args []string) error {
	target := args[0]
	name := ""
	if len(args) == 2 {
		name = args[1]
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := s.driverOptions(false)
	if err != nil {
		return err
	}
	result, err := driver.Cases(cmd.Context(), target, opts)
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		diagfmt.Short(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.pathMode)
	}

	listing := result.ClosedTypes(name)
	if name != "" && len(listing) == 0 {
		return fmt.Errorf("no closed type named %q", name)
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		printCases(out, result, listing)
	case "json":
		if err := writeCasesJSON(out, result, listing); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	if result.Bag.HasErrors() {
		return errFindings
	}
	return nil
}

func printCases(w io.Writer, result *driver.Result, listing []driver.ClosedListing) {
	typeName := color.New(color.Bold)
	for i, l := range listing {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := result.FileSet.Resolve(l.Type.Span)
		fmt.Fprintf(w, "%s  (%s:%d)\n", typeName.Sprint(l.Type.Name), l.Path, start.Line)
		if len(l.Type.Cases) == 0 {
			fmt.Fprintln(w, "  (no cases)")
		}
		for _, c := range l.Type.Cases {
			fmt.Fprintf(w, "  %s\n", c.Name)
		}
	}
}

func writeCasesJSON(w io.Writer, result *driver.Result, listing []driver.ClosedListing) error {
	out := make([]closedJSON, 0, len(listing))
	for _, l := range listing {
		start, _ := result.FileSet.Resolve(l.Type.Span)
		cj := closedJSON{Name: l.Type.Name, File: l.Path, Line: start.Line, Cases: []caseJSON{}}
		for _, c := range l.Type.Cases {
			cs, _ := result.FileSet.Resolve(c.Span)
			cj.Cases = append(cj.Cases, caseJSON{Name: c.Name, Line: cs.Line})
		}
		out = append(out, cj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
