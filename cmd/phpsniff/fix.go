package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [file.php|directory]...",
		Short: "Apply automatic fixes",
		Long:  "Fix runs the rules repeatedly, applying fixes until the file stops changing, and writes the result back. Violations without a fix are reported.",
		RunE:  runFix,
	}
	addRunFlags(cmd)
	cmd.Flags().Bool("diff", false, "print a unified diff instead of writing files")
	cmd.Flags().Bool("dry-run", false, "compute fixes without writing files")
	cmd.Flags().Int("max-passes", driver.DefaultMaxPasses, "give up on a file after this many passes")
	cmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	cmd.Flags().Lookup("ui").NoOptDefVal = "on"
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	paths := targetPaths(args)
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	s, err := loadSettings(cmd, paths, driver.ModeFix)
	if err != nil {
		return err
	}
	s.opts.DryRun = dryRun || showDiff

	var rep *driver.Report
	if shouldUseTUI(mode) {
		files, err := driver.Discover(paths, s.opts.Include, s.opts.Exclude)
		if err != nil {
			return err
		}
		rep, err = runFixWithUI(cmd.Context(), "fixing", files, s.opts)
		if err != nil {
			return err
		}
	} else {
		rep, err = driver.Run(cmd.Context(), paths, s.opts)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if showDiff {
		for _, f := range rep.Files {
			if err := diagfmt.UnifiedDiff(out, f.Path, f.Original, f.Final, diagfmt.DiffOpts{Color: s.color}); err != nil {
				return err
			}
		}
	}
	if err := s.render(out, rep); err != nil {
		return err
	}
	if !s.quiet && s.format != "json" {
		printFixSummary(out, rep, s.opts.DryRun)
	}
	s.printTimings(cmd.ErrOrStderr(), rep)
	return exitStatus(rep)
}

func printFixSummary(out io.Writer, rep *driver.Report, dryRun bool) {
	changed, fixes := 0, 0
	for _, f := range rep.Files {
		if f.Changed() {
			changed++
		}
		fixes += f.Fixes
	}
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(out, "%s %d of %d files (%d fixes)\n", verb, changed, len(rep.Files), fixes)
}
