package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	manifestName       = "zeron.toml"
	noZeronTomlMessage = "no zeron.toml found\nplease specify the file explicitly, e.g.:\n  zeron run path/to/main.zr"
	sourceExt          = ".zr"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Run     runConfig     `toml:"run"`
	Check   checkConfig   `toml:"check,omitempty"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type runConfig struct {
	Main string `toml:"main"`
}

type checkConfig struct {
	Jobs           int  `toml:"jobs,omitempty"`
	MaxDiagnostics int  `toml:"max_diagnostics,omitempty"`
	Cache          bool `toml:"cache,omitempty"`
}

func findZeronToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findZeronToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [run].main", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Check.Jobs < 0 || cfg.Check.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [check] values must not be negative", path)
	}
	return cfg, nil
}

// mainFile resolves [run].main against the manifest directory.
func (m *projectManifest) mainFile() (string, error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Run.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != sourceExt {
		return "", fmt.Errorf("%s: [run].main must be a %s file", m.Path, sourceExt)
	}
	return mainPath, nil
}

// targetFiles picks the files a command works on: explicit args, else
// the manifest's main file.
func targetFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if globals.manifest == nil {
		return nil, errors.New(noZeronTomlMessage)
	}
	main, err := globals.manifest.mainFile()
	if err != nil {
		return nil, err
	}
	return []string{main}, nil
}
