package main

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zeron/internal/diagfmt"
)

// globalOptions are the persistent flags merged with zeron.toml.
type globalOptions struct {
	color          bool // для stderr
	quiet          bool
	timings        bool
	maxDiagnostics int
	manifest       *projectManifest
}

var globals globalOptions

func setupGlobals(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !useColor
	globals.color = useColor

	if globals.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if globals.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if globals.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, found, err := loadProjectManifest(wd)
	if err != nil {
		return err
	}
	if found {
		globals.manifest = manifest
		if !flags.Changed("max-diagnostics") && manifest.Config.Check.MaxDiagnostics > 0 {
			globals.maxDiagnostics = manifest.Config.Check.MaxDiagnostics
		}
	}

	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}

func readColorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

// isTerminal проверяет, является ли файл терминалом (включая cygwin/msys)
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalWidth is the width of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) uint8 {
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil || !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 0
	}
	width, err := safecast.Conv[uint8](min(w, 255))
	if err != nil {
		return 0
	}
	return width
}

func prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     globals.color,
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		Width:     terminalWidth(os.Stderr),
		ShowNotes: true,
	}
}
