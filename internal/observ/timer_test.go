package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFoldsByName(t *testing.T) {
	tm := NewTimer()
	for range 2 {
		i := tm.Begin("lex")
		tm.End(i, "")
	}
	i := tm.Begin("rules")
	tm.End(i, "2 rules")
	tm.End(99, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "lex", r.Phases[0].Name)
	assert.Equal(t, 2, r.Phases[0].Count)
	assert.Equal(t, "2 rules", r.Phases[1].Note)
}

func TestMergeAndString(t *testing.T) {
	a := Report{Phases: []PhaseReport{{Name: "lex", DurationMS: 1, Count: 1}}, TotalMS: 1}
	b := Report{Phases: []PhaseReport{{Name: "lex", DurationMS: 2, Count: 1}, {Name: "fix", DurationMS: 3, Count: 1}}, TotalMS: 5}
	var total Report
	total.Merge(a)
	total.Merge(b)

	require.Len(t, total.Phases, 2)
	assert.InDelta(t, 3.0, total.Phases[0].DurationMS, 1e-9)
	assert.InDelta(t, 6.0, total.TotalMS, 1e-9)

	s := total.String()
	assert.True(t, strings.HasPrefix(s, "timings:\n"))
	assert.Contains(t, s, "x2")
	assert.Contains(t, s, "total")
}

func TestEndRecordsDuration(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("sleep")
	time.Sleep(time.Millisecond)
	tm.End(i, "")
	assert.Greater(t, tm.Report().TotalMS, 0.0)
}
