package driver

import (
	"runtime"

	"phpsniff/internal/cache"
	"phpsniff/internal/lexer"
	"phpsniff/internal/rule"
)

// DefaultMaxPasses bounds fix-and-retokenize cycles per file. A pass
// commits at most one changeset, so this is also the most fixes a file can
// take in one run.
const DefaultMaxPasses = 50

// Mode selects between reporting and rewriting.
type Mode uint8

const (
	// ModeCheck runs one pass and never stages edits.
	ModeCheck Mode = iota
	// ModeFix repeats passes until one commits nothing.
	ModeFix
)

func (m Mode) String() string {
	if m == ModeFix {
		return "fix"
	}
	return "check"
}

// Options configure ProcessFile and Run.
type Options struct {
	Mode  Mode
	Rules *rule.Registry

	MaxPasses      int // 0 means DefaultMaxPasses
	MaxDiagnostics int // per file, 0 means unbounded
	ExcludeCodes   []string
	Lexer          lexer.Options

	// DryRun keeps fix results in memory.
	DryRun bool

	// Run only.
	Jobs    int
	Include []string // doublestar patterns, default "**/*.php"
	Exclude []string
	Sink    Sink
	Cache   *cache.Cache
	Version string // part of cache keys
}

func (o Options) withDefaults() Options {
	if o.MaxPasses <= 0 {
		o.MaxPasses = DefaultMaxPasses
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if len(o.Include) == 0 {
		o.Include = []string{DefaultInclude}
	}
	if o.Rules == nil {
		o.Rules, _ = rule.NewRegistry()
	}
	return o
}
