package diag

import "strings"

// Reporter receives diagnostics from rules.
// Implementations: BagReporter, DedupReporter, SuppressReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, d Diagnostic) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: d}
}

// WithNote appends a note to the diagnostic.
func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(msg)
	return b
}

// Fixable marks the diagnostic as carrying an automatic fix.
func (b *ReportBuilder) Fixable() *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Fixable = true
	return b
}

// Emit sends the diagnostic exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// SuppressReporter drops diagnostics whose full code, rule, or rule-prefixed
// code matches one of the excluded entries.
type SuppressReporter struct {
	next     Reporter
	excluded map[string]struct{}
}

func NewSuppressReporter(next Reporter, excluded []string) *SuppressReporter {
	m := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		if e = strings.TrimSpace(e); e != "" {
			m[e] = struct{}{}
		}
	}
	return &SuppressReporter{next: next, excluded: m}
}

// Suppressed reports whether d would be dropped.
func (r *SuppressReporter) Suppressed(d Diagnostic) bool {
	if len(r.excluded) == 0 {
		return false
	}
	for _, key := range []string{d.FullCode(), d.Rule, d.Code} {
		if _, ok := r.excluded[key]; ok {
			return true
		}
	}
	return false
}

func (r *SuppressReporter) Report(d Diagnostic) {
	if r == nil || r.Suppressed(d) || r.next == nil {
		return
	}
	r.next.Report(d)
}
