package stats

import (
	"sync"

	"github.com/lox/blackjackmachine/internal/engine"
)

// Recorder tallies engine results behind a lock so the maintenance
// console can read snapshots while rounds are still being played. It
// implements engine.RoundMonitor.
type Recorder struct {
	mu      sync.Mutex
	started int
	stats   Statistics
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnPhaseChange(engine.Phase) {}

func (r *Recorder) OnRoundStart(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *Recorder) OnRoundComplete(result engine.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Add(result)
}

// Snapshot returns a copy of the tallies so far.
func (r *Recorder) Snapshot() Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Started returns how many rounds began dealing, including any that
// were aborted before resolving.
func (r *Recorder) Started() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}
