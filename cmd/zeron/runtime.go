package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
)

// commandRuntime is the evaluator's view of a command with redirected
// output.
type commandRuntime struct{ cmd *cobra.Command }

func (r commandRuntime) Stdout() io.Writer { return r.cmd.OutOrStdout() }
func (commandRuntime) Now() time.Time      { return time.Now() }
