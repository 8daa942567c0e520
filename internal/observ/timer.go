// Package observ measures where the time goes while files are checked.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration of one step (lex, index, rules, fix).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases in the order they were begun. It is not safe for
// concurrent use; every file gets its own.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().String()
}

// PhaseReport is the serializable form of a phase. Phases with the same
// name are folded together, Count says how many.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report folds phases by name, keeping first-seen order.
func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.phases {
		r.add(PhaseReport{Name: p.Name, DurationMS: durationToMillis(p.Dur), Count: 1, Note: p.Note})
	}
	return r
}

// Merge adds other's phases into r, folding by name.
func (r *Report) Merge(other Report) {
	for _, p := range other.Phases {
		r.add(p)
	}
}

func (r *Report) add(p PhaseReport) {
	r.TotalMS += p.DurationMS
	for i := range r.Phases {
		if r.Phases[i].Name == p.Name {
			r.Phases[i].DurationMS += p.DurationMS
			r.Phases[i].Count += p.Count
			if p.Note != "" {
				r.Phases[i].Note = p.Note
			}
			return
		}
	}
	r.Phases = append(r.Phases, p)
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d", p.Name, p.DurationMS, p.Count)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
