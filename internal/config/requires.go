package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionMismatchError is returned when the running tool does not satisfy
// the config's requires constraint.
type VersionMismatchError struct {
	Path       string
	Constraint string
	Version    string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: requires phpsniff %s, running %s", e.Path, e.Constraint, e.Version)
}

// CheckVersion tests the running version against requires. Builds without
// a semantic version (such as "dev") satisfy any constraint. Prerelease
// versions are compared by their release part, so 0.1.0-dev satisfies
// ">= 0.1".
func (c *Config) CheckVersion(running string) error {
	req := strings.TrimSpace(c.Requires)
	if req == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(req)
	if err != nil {
		return fmt.Errorf("%s: invalid requires %q: %w", c.Path, req, err)
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return nil
	}
	release, err := v.SetPrerelease("")
	if err != nil {
		return err
	}
	if !constraint.Check(&release) {
		return &VersionMismatchError{Path: c.Path, Constraint: req, Version: running}
	}
	return nil
}
