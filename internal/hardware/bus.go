// Package hardware defines the small device interfaces the machine is wired
// through (byte bus, buttons, tri-color indicators) and their Linux devfs
// implementations. Everything above this package talks to interfaces so the
// whole machine can run against the simulated backends in internal/sim.
package hardware

import "sync"

// Bus is a write-only byte transport to addressed devices. Implementations
// must tolerate concurrent callers or be wrapped in a SharedBus.
type Bus interface {
	Write(addr uint8, p []byte) error
}

// SharedBus serializes access to a bus shared by several devices behind a
// multiplexer. Locked runs fn with exclusive ownership of the bus, so a
// channel select and the draw that follows it can never interleave with
// another caller's pair.
type SharedBus struct {
	mu  sync.Mutex
	bus Bus
}

// NewSharedBus wraps a bus in a mutual-exclusion guard
func NewSharedBus(bus Bus) *SharedBus {
	return &SharedBus{bus: bus}
}

// Locked runs fn with exclusive access to the underlying bus
func (s *SharedBus) Locked(fn func(Bus) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.bus)
}
