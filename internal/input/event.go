package input

import "time"

// Kind identifies which button produced an event
type Kind int

const (
	Start Kind = iota
	Hit
	Stand
)

// String returns the kind for logging
func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// Event is one debounced button press. Exactly one event is produced per
// physical press; the engine consumes each event at most once and silently
// drops the ones its current phase cannot act on.
type Event struct {
	Kind Kind
	At   time.Time
}
