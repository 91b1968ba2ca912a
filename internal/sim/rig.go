package sim

import (
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/input"
)

// Rig is one cabinet's worth of simulated hardware: the two bus segments,
// the three buttons, and both indicators. The machine assembles against
// it exactly as it would against the devfs backends.
type Rig struct {
	CardBus    *Bus
	MessageBus *Bus
	Start      *Button
	Hit        *Button
	Stand      *Button
	Player     *RGB
	Dealer     *RGB
}

// NewRig creates a rig with every button released and both indicators
// dark. The clock paces button holds; nil uses the real one.
func NewRig(clock quartz.Clock) *Rig {
	return &Rig{
		CardBus:    NewBus(),
		MessageBus: NewBus(),
		Start:      NewButton(clock, 0),
		Hit:        NewButton(clock, 0),
		Stand:      NewButton(clock, 0),
		Player:     NewRGB(),
		Dealer:     NewRGB(),
	}
}

// Press pushes the button wired to a logical input. Unknown kinds are
// ignored, like poking a blank spot on the fascia.
func (r *Rig) Press(kind input.Kind) {
	switch kind {
	case input.Start:
		r.Start.Press()
	case input.Hit:
		r.Hit.Press()
	case input.Stand:
		r.Stand.Press()
	}
}
