package engine

// Result is the final accounting for a resolved round.
type Result struct {
	RoundID         string
	Outcome         Outcome
	Reason          Reason
	PlayerTotal     int
	DealerTotal     int
	PlayerCards     int
	DealerCards     int
	PlayerBlackjack bool
	DealerBlackjack bool
}

// RoundMonitor receives lifecycle events from the engine. Callbacks run
// on the engine goroutine, so implementations must not block.
type RoundMonitor interface {
	// OnPhaseChange is called after every phase transition.
	OnPhaseChange(phase Phase)

	// OnRoundStart is called when a new round begins dealing.
	OnRoundStart(roundID string)

	// OnRoundComplete is called with the verdict of a resolved round.
	OnRoundComplete(result Result)
}

// NullRoundMonitor discards all events.
type NullRoundMonitor struct{}

func (NullRoundMonitor) OnPhaseChange(Phase)    {}
func (NullRoundMonitor) OnRoundStart(string)    {}
func (NullRoundMonitor) OnRoundComplete(Result) {}

// MultiRoundMonitor fans each event out to several monitors in order.
type MultiRoundMonitor struct {
	monitors []RoundMonitor
}

// NewMultiRoundMonitor combines monitors, dropping nil entries. With
// none left it returns a NullRoundMonitor, with one it returns that
// monitor directly.
func NewMultiRoundMonitor(monitors ...RoundMonitor) RoundMonitor {
	active := make([]RoundMonitor, 0, len(monitors))
	for _, m := range monitors {
		if m != nil {
			active = append(active, m)
		}
	}
	switch len(active) {
	case 0:
		return NullRoundMonitor{}
	case 1:
		return active[0]
	default:
		return &MultiRoundMonitor{monitors: active}
	}
}

func (m *MultiRoundMonitor) OnPhaseChange(phase Phase) {
	for _, mon := range m.monitors {
		mon.OnPhaseChange(phase)
	}
}

func (m *MultiRoundMonitor) OnRoundStart(roundID string) {
	for _, mon := range m.monitors {
		mon.OnRoundStart(roundID)
	}
}

func (m *MultiRoundMonitor) OnRoundComplete(result Result) {
	for _, mon := range m.monitors {
		mon.OnRoundComplete(result)
	}
}
