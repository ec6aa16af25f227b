package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stamp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Stamp source code generator toolchain",
	Long:  `Stamp expands generator directives in .stp source files: seq sequence expansion, derive companions, and sorted-order validation`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
