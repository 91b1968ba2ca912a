package sim

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// DefaultHold is how long a simulated press stays down. It comfortably
// outlasts the widest debounce window so the sampling watcher always
// registers exactly one press.
const DefaultHold = 80 * time.Millisecond

// Button is a push button driven from code. Press holds the level down
// for the hold duration, so the watcher sees the same stable edge a
// finger would produce.
type Button struct {
	mu    sync.Mutex
	clock quartz.Clock
	hold  time.Duration
	until time.Time
}

// NewButton creates a button released until the first Press. A nil clock
// uses the real one; hold <= 0 uses DefaultHold.
func NewButton(clock quartz.Clock, hold time.Duration) *Button {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Button{clock: clock, hold: hold}
}

// Press pushes the button down for the hold duration. Pressing again
// before release extends the hold.
func (b *Button) Press() {
	b.mu.Lock()
	b.until = b.clock.Now().Add(b.hold)
	b.mu.Unlock()
}

// Pressed reports whether the button is currently held down
func (b *Button) Pressed() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clock.Now().Before(b.until), nil
}
