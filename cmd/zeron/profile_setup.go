package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zeron/internal/prof"
)

var activeProfile *prof.Session

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.ExecTrace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	activeProfile, err = prof.Start(cfg)
	return err
}

func stopProfiling(stderr io.Writer) {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(stderr, "profile: %v\n", err)
	}
	activeProfile = nil
}
