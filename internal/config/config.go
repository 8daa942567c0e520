// Package config loads phpsniff.toml or .phpsniff.yaml project settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File names looked up, in order, in every directory on the way to the
// filesystem root.
const (
	TOMLName = "phpsniff.toml"
	YAMLName = ".phpsniff.yaml"
	YMLName  = ".phpsniff.yml"
)

var fileNames = []string{TOMLName, YAMLName, YMLName}

// Settings are the keys a config file may set. Zero values mean "use the
// default".
type Settings struct {
	Rules          []string `toml:"rules" yaml:"rules"`
	ExcludeCodes   []string `toml:"exclude_codes" yaml:"exclude_codes"`
	Include        []string `toml:"include" yaml:"include"`
	Exclude        []string `toml:"exclude" yaml:"exclude"`
	MaxPasses      int      `toml:"max_passes" yaml:"max_passes"`
	MaxDiagnostics int      `toml:"max_diagnostics" yaml:"max_diagnostics"`
	Jobs           int      `toml:"jobs" yaml:"jobs"`
	Cache          *bool    `toml:"cache" yaml:"cache"`
	CacheDir       string   `toml:"cache_dir" yaml:"cache_dir"`
	Requires       string   `toml:"requires" yaml:"requires"`
}

// Config is a loaded config file. Path and Root are empty when no file was
// found.
type Config struct {
	Path string
	Root string
	Settings
}

// Default returns the configuration used when no file exists.
func Default() *Config { return &Config{} }

// CacheEnabled reports whether the check-mode result cache is on. It is on
// unless the file turns it off.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// CachePath resolves cache_dir against the config's directory.
func (c *Config) CachePath() string {
	if c.CacheDir == "" || filepath.IsAbs(c.CacheDir) || c.Root == "" {
		return c.CacheDir
	}
	return filepath.Join(c.Root, c.CacheDir)
}

// UnknownKeyError lists keys a config file set that phpsniff does not know.
type UnknownKeyError struct {
	Path string
	Keys []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: unknown keys: %s", e.Path, strings.Join(e.Keys, ", "))
}

// InvalidValueError reports a key with a value out of range.
type InvalidValueError struct {
	Path   string
	Key    string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Path, e.Key, e.Reason)
}

// Find walks up from startDir to locate a config file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads override when set, otherwise the first config file found
// above startDir. Without a file it returns Default.
func Discover(startDir, override string) (*Config, error) {
	if override != "" {
		return Load(override)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path. The format follows the extension: .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path chosen by the user
	if err != nil {
		return nil, err
	}
	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(path, data, &s)
	case ".yaml", ".yml":
		err = decodeYAML(path, data, &s)
	default:
		err = fmt.Errorf("%s: unsupported config format (want .toml, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, err
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Config{Path: abs, Root: filepath.Dir(abs), Settings: s}, nil
}

func decodeTOML(path string, data []byte, s *Settings) error {
	meta, err := toml.Decode(string(data), s)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return &UnknownKeyError{Path: path, Keys: keys}
	}
	return nil
}

func decodeYAML(path string, data []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return nil
}

func (s *Settings) validate(path string) error {
	switch {
	case s.MaxPasses < 0:
		return &InvalidValueError{Path: path, Key: "max_passes", Reason: "must not be negative"}
	case s.MaxDiagnostics < 0:
		return &InvalidValueError{Path: path, Key: "max_diagnostics", Reason: "must not be negative"}
	case s.Jobs < 0:
		return &InvalidValueError{Path: path, Key: "jobs", Reason: "must not be negative"}
	}
	return nil
}
