package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zeron/internal/diagfmt"
	"zeron/internal/driver"
	"zeron/internal/version"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] [file.zr]",
	Short: "Print the frame and slot layout of a zeron file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	files, err := targetFiles(args)
	if err != nil {
		return err
	}

	res, err := driver.Check(cmd.Context(), files[0], driver.CheckOptions{
		MaxDiagnostics: globals.maxDiagnostics,
		Layout:         true,
		Timings:        globals.timings,
	})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, prettyOpts())
	}
	if !res.OK() {
		return exitError{driver.ExitCodeForBag(res.Bag)}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json", "yaml":
		report := &diagfmt.Report{Version: version.Version, Files: []diagfmt.FileReport{{
			Path:      res.Path,
			OK:        true,
			Globals:   diagfmt.Symbols(res.Layout.Globals),
			Functions: diagfmt.Symbols(res.Layout.Functions),
			Frames:    diagfmt.Frames(res.Layout),
		}}}
		if format == "json" {
			return diagfmt.ReportJSON(out, report)
		}
		return diagfmt.ReportYAML(out, report)
	}
	return diagfmt.FormatLayoutPretty(out, res.Layout)
}
