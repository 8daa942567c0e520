package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"phpsniff/internal/version"
)

// errFindings makes the process exit with status 1 without printing
// anything more; the findings were already reported.
var errFindings = errors.New("findings reported")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phpsniff",
		Short:         "Check and fix PHP coding standard violations",
		Long:          `phpsniff tokenizes PHP sources and runs sniff rules over the token stream, reporting violations and applying automatic fixes.`,
		Version:       version.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	// global flags
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 means unlimited)")
	rootCmd.PersistentFlags().String("config", "", "config file (default: nearest phpsniff.toml or .phpsniff.yaml)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|pass|rule|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
	return rootCmd
}

// main executes the root command. Any error, including reported
// findings, exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "phpsniff: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
