package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enumclass/internal/diagfmt"
	"enumclass/internal/driver"
)

var tokensCmd = &cobra.Command{
	Use:    "tokens [flags] <file.ec>",
	Short:  "Dump the token stream of a file",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE:   runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	res, err := driver.Tokenize(args[0], 0)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.Tokens(out, res.Tokens, res.FileSet)
	case "json":
		err = diagfmt.TokensJSON(out, res.Tokens)
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		diagfmt.Short(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PathModeAuto)
	}
	return nil
}
