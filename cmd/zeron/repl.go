package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"zeron/internal/diagfmt"
	"zeron/internal/repl"
	"zeron/internal/version"
)

const (
	historyFile = ".zeron_history"
	promptMain  = "> "
	promptCont  = ". "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive zeron session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if !globals.quiet {
		fmt.Fprintf(out, "%s\ntype :quit to exit\n", version.Banner(globals.color))
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f) //nolint:errcheck
			_ = f.Close()            //nolint:errcheck
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f) //nolint:errcheck
				_ = f.Close()             //nolint:errcheck
			}
		}()
	}

	session := repl.New(repl.Options{
		Runtime:        runtimeFor(cmd),
		MaxDiagnostics: globals.maxDiagnostics,
	})
	errColor := color.New(color.FgRed)

	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if trimmed == ":quit" || trimmed == ":q" {
				return nil
			}
			fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		res, err := session.Eval(cmd.Context(), src)
		if err != nil {
			return err
		}
		printOutcome(cmd.ErrOrStderr(), res, session, errColor)
	}
}

func printOutcome(w io.Writer, res repl.Outcome, session *repl.Repl, errColor *color.Color) {
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(w, res.Bag, session.FileSet(), prettyOpts())
	}
	if res.RuntimeErr != nil {
		errColor.Fprint(w, res.RuntimeErr.FormatWithFiles(session.FileSet())) //nolint:errcheck
	}
}

// readEntry reads lines until braces and parentheses balance.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			return "", false
		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl-C сбрасывает незаконченный ввод
			return "", true
		case err != nil:
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !repl.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
