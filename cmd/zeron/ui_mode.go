package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"zeron/internal/driver"
	"zeron/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --progress value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: в auto-режиме прогресс нужен только для нескольких файлов
func shouldUseTUI(mode uiMode, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && !globals.quiet && isTerminal(os.Stderr)
	}
}

func runProgress(title string, files []string, events <-chan driver.Event, out io.Writer) error {
	model := ui.NewProgressModel(title, files, events)
	_, err := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil)).Run()
	return err
}
