package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zeron/internal/diagfmt"
	"zeron/internal/driver"
	"zeron/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [files...]",
	Short: "Format zeron source files",
	Long:  `Re-space zeron sources. Without --write the result goes to stdout.`,
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	fmtCmd.Flags().Bool("check", false, "list files whose formatting differs and exit 1")
	fmtCmd.Flags().Int("indent", 4, "spaces per indentation level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	files, err := targetFiles(args)
	if err != nil {
		return err
	}
	opt := format.Options{IndentWidth: indent, UseTabs: tabs}

	exit := driver.ExitOK
	for _, path := range files {
		res, err := driver.Parse(cmd.Context(), path, globals.maxDiagnostics)
		if err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, prettyOpts())
			exit = driver.ExitSyntax
			continue
		}
		sf := res.File
		out, err := format.Source(sf, opt)
		if err != nil {
			return err
		}
		changed := !bytes.Equal(out, sf.Content)
		switch {
		case check:
			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				if exit == driver.ExitOK {
					exit = 1
				}
			}
		case write:
			if changed {
				if err := os.WriteFile(path, out, 0o644); err != nil { //nolint:gosec // source files stay world-readable
					return err
				}
			}
		default:
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
	}
	if exit != driver.ExitOK {
		return exitError{exit}
	}
	return nil
}
