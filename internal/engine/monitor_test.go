package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingMonitor struct {
	phases  int
	starts  int
	results int
}

func (m *countingMonitor) OnPhaseChange(Phase)    { m.phases++ }
func (m *countingMonitor) OnRoundStart(string)    { m.starts++ }
func (m *countingMonitor) OnRoundComplete(Result) { m.results++ }

func TestNewMultiRoundMonitorCollapses(t *testing.T) {
	assert.Equal(t, NullRoundMonitor{}, NewMultiRoundMonitor())
	assert.Equal(t, NullRoundMonitor{}, NewMultiRoundMonitor(nil, nil))

	single := &countingMonitor{}
	assert.Same(t, single, NewMultiRoundMonitor(nil, single, nil))
}

func TestMultiRoundMonitorFansOut(t *testing.T) {
	first := &countingMonitor{}
	second := &countingMonitor{}
	monitor := NewMultiRoundMonitor(first, second)

	monitor.OnPhaseChange(Dealing)
	monitor.OnRoundStart("round-1")
	monitor.OnRoundComplete(Result{})
	monitor.OnRoundComplete(Result{})

	for _, m := range []*countingMonitor{first, second} {
		assert.Equal(t, 1, m.phases)
		assert.Equal(t, 1, m.starts)
		assert.Equal(t, 2, m.results)
	}
}
