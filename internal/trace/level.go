package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota // no tracing
	LevelError              // failures only
	LevelPass               // run, file and pass boundaries
	LevelRule               // rule spans
	LevelDebug              // everything, including changesets
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPass:
		return "pass"
	case LevelRule:
		return "rule"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "pass":
		return LevelPass, nil
	case "rule":
		return LevelRule, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|pass|rule|debug)", s)
	}
}

// ShouldEmit reports whether ev passes this level. Failure events pass
// every level except off.
func (l Level) ShouldEmit(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Failed {
		return true
	}
	switch l {
	case LevelPass:
		return ev.Scope <= ScopePass
	case LevelRule:
		return ev.Scope <= ScopeRule
	case LevelDebug:
		return true
	}
	return false
}

// Covers reports whether a span at scope would be emitted.
func (l Level) Covers(scope Scope) bool {
	return l.ShouldEmit(&Event{Scope: scope})
}
