package main

import (
	"github.com/spf13/cobra"

	"phpsniff/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.php|directory]...",
		Short: "Report coding standard violations",
		Long:  "Check runs every enabled rule once over each file and reports what it finds. Files are never modified.",
		RunE:  runCheck,
	}
	addRunFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := targetPaths(args)
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

	s, err := loadSettings(cmd, paths, driver.ModeCheck)
	if err != nil {
		return err
	}
	rep, err := driver.Run(cmd.Context(), paths, s.opts)
	if err != nil {
		return err
	}
	if err := s.render(cmd.OutOrStdout(), rep); err != nil {
		return err
	}
	s.printTimings(cmd.ErrOrStderr(), rep)
	return exitStatus(rep)
}
