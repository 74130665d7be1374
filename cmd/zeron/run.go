package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zeron/internal/diagfmt"
	"zeron/internal/driver"
	"zeron/internal/eval"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.zr]",
	Short: "Check and execute a zeron program",
	Long: `Run resolves the program and, when it is free of errors, executes it.
Without arguments the [run].main file of the nearest zeron.toml is run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("max-depth", eval.DefaultMaxDepth, "maximum call depth")
}

func runRun(cmd *cobra.Command, args []string) error {
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	files, err := targetFiles(args)
	if err != nil {
		return err
	}

	res, err := driver.Run(cmd.Context(), files[0], driver.RunOptions{
		Check: driver.CheckOptions{
			MaxDiagnostics: globals.maxDiagnostics,
			Timings:        globals.timings,
		},
		Runtime:  runtimeFor(cmd),
		MaxDepth: maxDepth,
	})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, prettyOpts())
	}
	if res.RuntimeErr != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.RuntimeErr.FormatWithFiles(res.FileSet))
	}
	if code := res.ExitCode(); code != driver.ExitOK {
		return exitError{code}
	}
	return nil
}

// runtimeFor sends program output to the command's stdout.
func runtimeFor(cmd *cobra.Command) eval.Runtime {
	if cmd.OutOrStdout() == os.Stdout {
		return eval.DefaultRuntime{}
	}
	return commandRuntime{cmd}
}
