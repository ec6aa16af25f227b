package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stamp/internal/driver"
	"stamp/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Run directive validation without writing output",
	Long: `Check expands directives and runs the sorted-order validators, reporting
diagnostics without producing any output files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = one per CPU)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	jobs, _ := cmd.Flags().GetInt("jobs")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	target, _, err := resolveExpandTarget(args)
	if err != nil {
		return err
	}
	// validation must always re-run, never replay cached outputs
	opts := driver.Options{MaxDiagnostics: maxDiagnostics}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	var results []driver.FileResult
	if info.IsDir() {
		results, err = driver.ExpandDir(cmd.Context(), target, jobs, opts)
		if err != nil {
			return err
		}
	} else {
		results = []driver.FileResult{driver.ExpandFile(source.NewFileSet(), target, opts)}
	}

	failed := 0
	for _, res := range results {
		printDiagnostics(cmd, res.Bag, res.Set)
		if res.Bag.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files have errors", failed, len(results))
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, no errors\n", len(results))
	}
	return nil
}
