package engine

// Phase identifies where the machine is in the round lifecycle. The
// zero value is Idle, so a fresh Engine starts at the attract screen.
type Phase int

const (
	Idle Phase = iota
	Dealing
	PlayerTurn
	DealerTurn
	Resolution
)

// String returns the phase name for logging
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dealing:
		return "dealing"
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case Resolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// AcceptsInput reports whether button presses mean anything in this
// phase. The press queue is drained on entry to an accepting phase so
// presses made while the machine was busy are not replayed later.
func (p Phase) AcceptsInput() bool {
	return p == Idle || p == PlayerTurn
}
