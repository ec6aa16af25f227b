package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stamp/internal/driver"
	"stamp/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [path]",
	Short: "Expand generator directives in source files",
	Long: `Expand runs the directive expansion pipeline over one .stp file or over
every .stp file under a directory. Without a path it expands the project's
source directory from stamp.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().StringP("output", "o", "", "output file or directory (default: stdout for a file, [output].dir from stamp.toml for a directory)")
	expandCmd.Flags().Bool("check", false, "verify that outputs are up to date without writing")
	expandCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = one per CPU)")
	expandCmd.Flags().Bool("no-cache", false, "bypass the expansion disk cache")
	expandCmd.Flags().Bool("ui", false, "show interactive progress for directory runs")
}

func runExpand(cmd *cobra.Command, args []string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	outputPath, _ := cmd.Flags().GetString("output")
	checkOnly, _ := cmd.Flags().GetBool("check")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	withUI, _ := cmd.Flags().GetBool("ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	target, outDir, err := resolveExpandTarget(args)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = outDir
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics}
	if !noCache {
		if cache, err := driver.OpenDiskCache("stamp"); err == nil {
			opts.Cache = cache
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return expandSingleFile(cmd, target, outputPath, checkOnly, opts)
	}
	return expandDirectory(cmd, target, outputPath, checkOnly, jobs, withUI && !quiet, opts)
}

// resolveExpandTarget picks the expansion target: the explicit argument, or
// the manifest's source directory when invoked inside a project.
func resolveExpandTarget(args []string) (target, outDir string, err error) {
	if len(args) == 1 {
		return args[0], "", nil
	}
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", errors.New(noStampTomlMessage)
	}
	return manifest.SourceDir(), manifest.OutputDir(), nil
}

func expandSingleFile(cmd *cobra.Command, path, outputPath string, checkOnly bool, opts driver.Options) error {
	res := driver.ExpandFile(source.NewFileSet(), path, opts)
	printDiagnostics(cmd, res.Bag, res.Set)
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s: expansion failed", path)
	}

	switch {
	case checkOnly:
		return verifyOutput(outPathFor(path, outputPath), res.Output)
	case outputPath == "":
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	default:
		return writeOutput(outPathFor(path, outputPath), res.Output)
	}
}

func expandDirectory(cmd *cobra.Command, dir, outputDir string, checkOnly bool, jobs int, withUI bool, opts driver.Options) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var results []driver.FileResult
	var err error
	if withUI && isTerminal(os.Stdout) {
		results, err = runExpandWithUI(cmd.Context(), dir, jobs, opts)
	} else {
		results, err = driver.ExpandDir(cmd.Context(), dir, jobs, opts)
	}
	if err != nil {
		return err
	}

	failed := 0
	written := 0
	for _, res := range results {
		printDiagnostics(cmd, res.Bag, res.Set)
		if res.Bag.HasErrors() {
			failed++
			continue
		}
		out := expandedPath(dir, outputDir, res.Path)
		if checkOnly {
			if err := verifyOutput(out, res.Output); err != nil {
				return err
			}
			continue
		}
		if err := writeOutput(out, res.Output); err != nil {
			return err
		}
		written++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if !quiet && !checkOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "expanded %d files\n", written)
	}
	return nil
}

// outPathFor maps a single input file to its output path. An empty target
// means next to the input with the generated extension.
func outPathFor(input, target string) string {
	if target != "" {
		return target
	}
	return strings.TrimSuffix(input, driver.SourceExt) + ".gen" + driver.SourceExt
}

// expandedPath maps one source file under dir into the output directory,
// keeping the relative layout.
func expandedPath(dir, outputDir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	if outputDir == "" {
		outputDir = dir
	}
	rel = strings.TrimSuffix(rel, driver.SourceExt) + ".gen" + driver.SourceExt
	return filepath.Join(outputDir, rel)
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}

// verifyOutput reports a mismatch between the expected expansion and what is
// on disk, for CI-style --check runs.
func verifyOutput(path, content string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: missing expanded output, run stamp expand", path)
		}
		return err
	}
	if string(existing) != content+"\n" {
		return fmt.Errorf("%s: expanded output is stale, run stamp expand", path)
	}
	return nil
}

func runExpandWithUI(ctx context.Context, dir string, jobs int, opts driver.Options) ([]driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return runDirWithUI(ctx, "stamp expand "+dir, files, func(sink driver.ProgressSink) ([]driver.FileResult, error) {
		opts.Sink = sink
		return driver.ExpandDir(ctx, dir, jobs, opts)
	})
}
