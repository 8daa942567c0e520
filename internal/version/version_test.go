package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate are optional
	_ = GitCommit
	_ = BuildDate
}

func TestCurrent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		set  string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"  1.2.3\n", "1.2.3"},
		{"", "dev"},
		{"   ", "dev"},
	}
	for _, tt := range tests {
		Version = tt.set
		if got := Current(); got != tt.want {
			t.Errorf("Current() with Version=%q = %q, want %q", tt.set, got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3+build.7", "dev", "1.2"}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) without color = %q, want input unchanged", v, got)
		}
	}
}

func TestColored_AddsEscapes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := Colored("1.2.3-rc1")
	if got == "1.2.3-rc1" {
		t.Fatal("expected colored output")
	}
	if got[len(got)-4:] != "-rc1" {
		t.Errorf("suffix lost: %q", got)
	}
	if Colored("dev") != "dev" {
		t.Errorf("non-semver input should pass through")
	}
}
