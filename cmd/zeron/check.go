package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"zeron/internal/diagfmt"
	"zeron/internal/driver"
	"zeron/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.zr...]",
	Short: "Resolve zeron files and report diagnostics",
	Long: `Check parses and resolves each file independently. Without arguments the
[run].main file of the nearest zeron.toml is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|msgpack)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().String("progress", "auto", "show a progress view (auto|on|off)")
}

type checkFlags struct {
	format   string
	jobs     int
	cache    bool
	progress uiMode
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var cf checkFlags
	var err error
	if cf.format, err = cmd.Flags().GetString("format"); err != nil {
		return cf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch cf.format {
	case "pretty", "short", "json", "yaml", "msgpack":
	default:
		return cf, fmt.Errorf("unknown format: %s", cf.format)
	}
	if cf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return cf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if cf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return cf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	progress, err := cmd.Flags().GetString("progress")
	if err != nil {
		return cf, fmt.Errorf("failed to get progress flag: %w", err)
	}
	if cf.progress, err = readUIMode(progress); err != nil {
		return cf, err
	}

	if m := globals.manifest; m != nil {
		if !cmd.Flags().Changed("jobs") {
			cf.jobs = m.Config.Check.Jobs
		}
		if !cmd.Flags().Changed("cache") {
			cf.cache = m.Config.Check.Cache
		}
	}
	return cf, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cf, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	files, err := targetFiles(args)
	if err != nil {
		return err
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: globals.maxDiagnostics,
		Timings:        globals.timings,
		Jobs:           cf.jobs,
	}
	if cf.cache {
		cache, err := driver.OpenDiskCache("zeron")
		if err != nil {
			return err
		}
		opts.Cache = cache
	}

	var results []*driver.CheckResult
	if cf.format == "pretty" && shouldUseTUI(cf.progress, len(files)) {
		results, err = checkWithUI(cmd.Context(), "check", files, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	if err := writeCheckResults(cmd.OutOrStdout(), cf.format, results); err != nil {
		return err
	}
	return checkExit(results)
}

func writeCheckResults(out io.Writer, format string, results []*driver.CheckResult) error {
	switch format {
	case "pretty":
		failed := 0
		for _, r := range results {
			r.Bag.Sort()
			if r.Bag.Len() > 0 {
				diagfmt.Pretty(out, r.Bag, r.FileSet, prettyOpts())
				fmt.Fprintln(out)
			}
			if !r.OK() {
				failed++
			}
		}
		if !globals.quiet {
			fmt.Fprintf(out, "checked %d file(s): %d ok, %d with errors\n", len(results), len(results)-failed, failed)
		}
		return nil
	case "short":
		for _, r := range results {
			if err := diagfmt.Short(out, r.Bag, r.FileSet, false); err != nil {
				return err
			}
		}
		return nil
	}

	report := buildReport(results)
	switch format {
	case "json":
		return diagfmt.ReportJSON(out, report)
	case "yaml":
		return diagfmt.ReportYAML(out, report)
	default:
		return diagfmt.ReportMsgpack(out, report)
	}
}

func buildReport(results []*driver.CheckResult) *diagfmt.Report {
	report := &diagfmt.Report{Version: version.Version}
	for _, r := range results {
		fr := diagfmt.FileReport{
			Path:        r.Path,
			OK:          r.OK(),
			Cached:      r.Cached,
			Diagnostics: diagfmt.BuildDiagnostics(r.Bag, r.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}),
			Globals:     diagfmt.Symbols(r.Summary.Globals),
			Functions:   diagfmt.Symbols(r.Summary.Functions),
			Frames:      diagfmt.Frames(r.Layout),
		}
		if !fr.OK {
			report.Errors++
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

// checkExit: синтаксические ошибки важнее семантических
func checkExit(results []*driver.CheckResult) error {
	code := driver.ExitOK
	for _, r := range results {
		switch c := driver.ExitCodeForBag(r.Bag); {
		case c == driver.ExitSyntax:
			return exitError{c}
		case c != driver.ExitOK && code == driver.ExitOK:
			code = c
		}
	}
	if code != driver.ExitOK {
		return exitError{code}
	}
	return nil
}

func checkWithUI(ctx context.Context, title string, files []string, opts driver.CheckOptions) ([]*driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		results []*driver.CheckResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		o := opts
		o.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, files, o)
		outcomeCh <- outcome{res, err}
		close(events)
	}()

	if err := runProgress(title, files, events, os.Stderr); err != nil {
		// UI упал: дожидаемся проверки без него
		for range events {
		}
		o := <-outcomeCh
		return o.results, o.err
	}
	o := <-outcomeCh
	return o.results, o.err
}
