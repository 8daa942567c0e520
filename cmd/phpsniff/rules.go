package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"phpsniff/internal/config"
	"phpsniff/internal/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [directory]",
		Short: "List the available rules",
		Long:  "Rules lists every built-in rule in run order and marks the ones the config enables.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Discover(targetPaths(args)[0], configPath)
	if err != nil {
		return err
	}
	all := rules.Default()
	enabled, err := cfg.SelectRules(all)
	if err != nil {
		return err
	}
	useCol, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	on := color.New(color.FgGreen)
	off := color.New(color.Faint)
	for _, c := range []*color.Color{on, off} {
		if useCol {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	out := cmd.OutOrStdout()
	for _, name := range all.Names() {
		if _, ok := enabled.Lookup(name); ok {
			fmt.Fprintf(out, "%s %s\n", on.Sprint("*"), name)
		} else {
			fmt.Fprintf(out, "%s %s\n", off.Sprint("-"), off.Sprint(name))
		}
	}
	if cfg.Path != "" {
		fmt.Fprintf(out, "\nconfig: %s\n", cfg.Path)
	}
	return nil
}
