package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phpsniff/internal/cache"
	"phpsniff/internal/config"
	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/rules"
	"phpsniff/internal/version"
)

// runSettings merges the config file with command-line flags.
type runSettings struct {
	opts     driver.Options
	config   *config.Config
	format   string
	color    bool
	quiet    bool
	timings  bool
	pathMode diagfmt.PathMode
}

// addRunFlags registers the flags shared by check, fix and watch.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("rules", nil, "rules or categories to run (overrides the config)")
	cmd.Flags().StringSlice("exclude-code", nil, "suppress a Rule.Code or a whole rule (repeatable)")
	cmd.Flags().Int("jobs", 0, "files processed in parallel (default: number of CPUs)")
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().String("paths", "auto", "path display (auto|absolute|relative|basename)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
}

func targetPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func loadSettings(cmd *cobra.Command, paths []string, mode driver.Mode) (*runSettings, error) {
	root := cmd.Root().PersistentFlags()
	flags := cmd.Flags()

	configPath, err := root.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Discover(paths[0], configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(version.Current()); err != nil {
		return nil, err
	}

	if names, _ := flags.GetStringSlice("rules"); len(names) > 0 {
		cfg.Rules = names
	}
	reg, err := cfg.SelectRules(rules.Default())
	if err != nil {
		return nil, err
	}

	s := &runSettings{config: cfg}
	s.opts = driver.Options{
		Mode:           mode,
		Rules:          reg,
		MaxPasses:      cfg.MaxPasses,
		MaxDiagnostics: cfg.MaxDiagnostics,
		ExcludeCodes:   cfg.ExcludeCodes,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		Jobs:           cfg.Jobs,
		Version:        version.Current(),
	}
	if root.Changed("max-diagnostics") {
		if s.opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if codes, _ := flags.GetStringSlice("exclude-code"); len(codes) > 0 {
		s.opts.ExcludeCodes = append(append([]string(nil), s.opts.ExcludeCodes...), codes...)
	}
	if flags.Changed("jobs") {
		if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("max-passes") != nil && flags.Changed("max-passes") {
		if s.opts.MaxPasses, err = flags.GetInt("max-passes"); err != nil {
			return nil, err
		}
	}

	noCache, _ := flags.GetBool("no-cache")
	if mode == driver.ModeCheck && cfg.CacheEnabled() && !noCache {
		c, err := cache.Open(cfg.CachePath())
		if err != nil {
			// the cache is an optimization; run without it
			fmt.Fprintf(cmd.ErrOrStderr(), "phpsniff: cache disabled: %v\n", err)
		} else {
			s.opts.Cache = c
		}
	}

	if s.format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	s.format = strings.ToLower(s.format)
	switch s.format {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("unsupported format %q (must be pretty, short or json)", s.format)
	}
	pathFlag, _ := flags.GetString("paths")
	var ok bool
	if s.pathMode, ok = diagfmt.ParsePathMode(pathFlag); !ok {
		return nil, fmt.Errorf("invalid --paths value %q (expected auto|absolute|relative|basename)", pathFlag)
	}
	if s.color, err = useColor(cmd, os.Stdout); err != nil {
		return nil, err
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, err
	}
	return s, nil
}

// useColor resolves --color for output going to f. NO_COLOR turns auto
// off.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(colorFlag) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}
