package display

import "github.com/lox/blackjackmachine/internal/hardware"

// Device is one display unit. The router passes in the bus it holds under
// the shared-bus guard so a draw can never race another unit's channel
// selection; implementations must not keep their own bus reference.
type Device interface {
	// Init brings the unit out of reset and blanks it
	Init(bus hardware.Bus) error
	// Draw replaces the unit's content
	Draw(bus hardware.Bus, content Content) error
}
