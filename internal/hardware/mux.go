package hardware

import "fmt"

// DefaultMuxAddress is the TCA9548A address with A0-A2 tied to ground
const DefaultMuxAddress = 0x70

// Mux drives a TCA9548A-style I2C channel multiplexer. A channel is selected
// by writing a single byte with the corresponding bit set; the selection
// sticks until the next write, which is why callers must hold the shared-bus
// guard across the select and the transfer that follows it.
type Mux struct {
	addr uint8
}

// NewMux creates a multiplexer driver at the given address
func NewMux(addr uint8) *Mux {
	return &Mux{addr: addr}
}

// Select routes the bus to the given channel (0-7)
func (m *Mux) Select(bus Bus, channel uint8) error {
	if channel > 7 {
		return fmt.Errorf("mux channel must be 0-7, got %d", channel)
	}
	if err := bus.Write(m.addr, []byte{1 << channel}); err != nil {
		return fmt.Errorf("select mux channel %d: %w", channel, err)
	}
	return nil
}
