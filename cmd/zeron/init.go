package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new zeron project",
	Long: `Initialize a new zeron project by creating a project manifest (zeron.toml)
and a hello-world entry point (main.zr). If [path|name] is omitted, initializes
the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMainZr = `// zeron hello world
fn greet(name: String): String {
    return "Hello, " + name + "!";
}

print(greet("Zeron"));
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "zeron-project"
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	manifest, err := buildDefaultManifest(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, manifest, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main"+sourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainZr), 0o600); err != nil {
			return fmt.Errorf("failed to write main%s: %w", sourceExt, err)
		}
		createdMain = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized zeron project %s in %s\n", name, target)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdMain {
		fmt.Fprintf(out, "  - main%s\n", sourceExt)
	} else {
		fmt.Fprintf(out, "  - main%s (existing)\n", sourceExt)
	}
	return nil
}

func buildDefaultManifest(name string) ([]byte, error) {
	cfg := projectConfig{
		Package: packageConfig{Name: name},
		Run:     runConfig{Main: "main" + sourceExt},
	}
	var buf bytes.Buffer
	buf.WriteString("# zeron project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
