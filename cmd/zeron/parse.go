package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zeron/internal/diag"
	"zeron/internal/diagfmt"
	"zeron/internal/driver"
	"zeron/internal/sema"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.zr",
	Short: "Parse a zeron source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("types", false, "resolve the file and annotate expressions with their types")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	withTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}

	ctx := cmd.Context()
	result, err := driver.Parse(ctx, args[0], globals.maxDiagnostics)
	if err != nil {
		return err
	}
	if withTypes && !result.Bag.HasErrors() {
		sema.Resolve(ctx, result.Builder, result.FileID, sema.Options{Reporter: diag.BagReporter{Bag: result.Bag}})
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, prettyOpts())
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatASTJSON(out, result.Builder, result.FileID, withTypes)
	} else {
		err = diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet, withTypes)
	}
	if err != nil {
		return err
	}
	if code := driver.ExitCodeForBag(result.Bag); code != driver.ExitOK {
		return exitError{code}
	}
	return nil
}
