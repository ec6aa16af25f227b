package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new stamp project",
	Long: `Initialize a new stamp project by creating a project manifest (stamp.toml)
and an example source file (src/main.stp). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "stamp-project"
	}

	manifestPath := filepath.Join(target, "stamp.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "src", "main.stp")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
			return fmt.Errorf("failed to create src directory: %w", err)
		}
		if err := os.WriteFile(mainPath, []byte(defaultMainSTP()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.stp: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized stamp project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - stamp.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - src/main.stp\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - src/main.stp (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Stamp project manifest
[package]
name = "%s"
version = "0.1.0"

[source]
dir = "src"

[output]
dir = "gen"
`, name)
}

// defaultMainSTP returns the placeholder source used when initializing a new
// project: one seq directive exercising splice and substitution.
func defaultMainSTP() string {
	return `// Run "stamp expand" to generate gen/main.gen.stp from this file.

seq(N in 0..4 {
    fn handler~N() {
        dispatch(N);
    }
})
`
}
