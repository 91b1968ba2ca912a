// Package sim provides in-memory stand-ins for the cabinet hardware: a bus
// that decodes multiplexer traffic, buttons pressed from code, and
// indicators that remember their color. The sim command runs the whole
// machine against them, the simulate command soaks the engine over them,
// and tests use them to observe bus traffic and inject device faults.
package sim

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/lox/blackjackmachine/internal/hardware"
)

// NoChannel is the channel recorded for writes made while the multiplexer
// has nothing selected, including every write on a segment with no mux.
const NoChannel = -1

type busKey struct {
	channel int
	addr    uint8
}

// Bus is an in-memory hardware.Bus. It understands the multiplexer's
// select register, so traffic is attributed to the channel that was
// routed when it happened; a select mask with more than one bit set is
// rejected the way a miswired panel would surface it.
type Bus struct {
	mu      sync.Mutex
	muxAddr uint8
	channel int
	writes  map[busKey]int
	bytes   int
	faults  map[uint8][]error
}

// NewBus creates a bus that decodes selects at the standard mux address
func NewBus() *Bus {
	return &Bus{
		muxAddr: hardware.DefaultMuxAddress,
		channel: NoChannel,
		writes:  make(map[busKey]int),
		faults:  make(map[uint8][]error),
	}
}

// Write records the transfer, routing mux writes to the select register
func (b *Bus) Write(addr uint8, p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if q := b.faults[addr]; len(q) > 0 {
		err := q[0]
		b.faults[addr] = q[1:]
		return err
	}
	if len(p) == 0 {
		return fmt.Errorf("sim bus: empty write to 0x%02x", addr)
	}

	if addr == b.muxAddr {
		mask := p[0]
		if mask == 0 {
			b.channel = NoChannel
			return nil
		}
		if mask&(mask-1) != 0 {
			return fmt.Errorf("sim bus: mux mask 0x%02x selects more than one channel", mask)
		}
		b.channel = bits.TrailingZeros8(mask)
		return nil
	}

	b.writes[busKey{b.channel, addr}]++
	b.bytes += len(p)
	return nil
}

// Channel returns the currently selected mux channel, or NoChannel
func (b *Bus) Channel() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel
}

// Writes returns how many transfers reached addr while channel was routed
func (b *Bus) Writes(channel int, addr uint8) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes[busKey{channel, addr}]
}

// Bytes returns the total payload bytes written to non-mux addresses
func (b *Bus) Bytes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bytes
}

// FailNext queues an error for the next write to addr. Queue several to
// defeat the router's single retry.
func (b *Bus) FailNext(addr uint8, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[addr] = append(b.faults[addr], err)
}
