package display

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/hardware"
)

// Tap observes every content change that reached a unit. Taps run outside
// the bus guard and must not block.
type Tap func(slot Slot, content Content)

// Target binds a slot to its display unit and the path to reach it. Card
// slots sit behind the multiplexer on the shared card segment; the message
// slot is direct-wired on its own segment and has a nil Mux.
type Target struct {
	Device  Device
	Segment *hardware.SharedBus
	Mux     *hardware.Mux
	Channel uint8
}

// Router owns slot-to-unit routing and the serialization that makes a
// channel select and its draw atomic on the shared segment. A failed
// operation is retried once; the second failure is returned to the caller,
// who logs it and carries on.
type Router struct {
	targets [NumSlots]Target
	logger  *log.Logger
	tap     Tap
}

// NewRouter creates a router over the nine slot targets
func NewRouter(logger *log.Logger, targets [NumSlots]Target) *Router {
	return &Router{
		targets: targets,
		logger:  logger.WithPrefix("display"),
	}
}

// SetTap installs the frame observer. Call before rendering starts.
func (r *Router) SetTap(tap Tap) {
	r.tap = tap
}

// Init initializes every unit, selecting its channel first where it sits
// behind the multiplexer. Each unit gets the standard one retry; a unit
// that fails twice is logged and skipped so the rest of the panel still
// comes up. The first failure is returned for the caller's records.
func (r *Router) Init() error {
	var firstErr error
	for slot := Slot(0); slot < NumSlots; slot++ {
		if err := r.attemptTwice(slot, func(bus hardware.Bus, t Target) error {
			return t.Device.Init(bus)
		}); err != nil {
			r.logger.Error("display unit failed to initialize", "slot", slot, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("init slot %d: %w", slot, err)
			}
		}
	}
	return firstErr
}

// Render shows content on a slot. The select and draw happen under one
// acquisition of the segment guard; on error the whole pair is retried
// once before the fault is returned.
func (r *Router) Render(slot Slot, content Content) error {
	if slot < 0 || slot >= NumSlots {
		return fmt.Errorf("render: no such slot %d", slot)
	}
	err := r.attemptTwice(slot, func(bus hardware.Bus, t Target) error {
		return t.Device.Draw(bus, content)
	})
	if err != nil {
		return fmt.Errorf("render slot %d (%s): %w", slot, content, err)
	}
	if r.tap != nil {
		r.tap(slot, content)
	}
	return nil
}

// Clear blanks every slot. Faulted slots are skipped, not fatal; the first
// failure is returned after all slots were attempted.
func (r *Router) Clear() error {
	var firstErr error
	for slot := Slot(0); slot < NumSlots; slot++ {
		if err := r.Render(slot, BlankContent()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) attemptTwice(slot Slot, op func(hardware.Bus, Target) error) error {
	t := r.targets[slot]
	attempt := func() error {
		return t.Segment.Locked(func(bus hardware.Bus) error {
			if t.Mux != nil {
				if err := t.Mux.Select(bus, t.Channel); err != nil {
					return err
				}
			}
			return op(bus, t)
		})
	}
	err := attempt()
	if err == nil {
		return nil
	}
	r.logger.Debug("retrying display operation", "slot", slot, "error", err)
	return attempt()
}
