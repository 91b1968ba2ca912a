// Package indicator maps semantic game states onto the two tri-color
// indicators. The mapping is a pure function; Controller applies it to the
// hardware, logging device faults instead of propagating them.
package indicator

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/hardware"
)

// State is the semantic indicator state of the machine
type State int

const (
	Idle State = iota
	PlayerTurn
	DealerTurn
	Win  // player wins
	Lose // dealer wins
	Push
)

// String returns the state for logging
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// The palette the cabinet uses
var (
	Off    = hardware.Color{}
	Red    = hardware.Color{R: 255}
	Green  = hardware.Color{G: 255}
	Blue   = hardware.Color{B: 255}
	Yellow = hardware.Color{R: 255, G: 255}
)

// StateColors returns the player and dealer colors for a state. Blue marks
// whose turn it is, green the winner, red the loser, yellow both on a push.
func StateColors(s State) (player, dealer hardware.Color) {
	switch s {
	case PlayerTurn:
		return Blue, Off
	case DealerTurn:
		return Off, Blue
	case Win:
		return Green, Red
	case Lose:
		return Red, Green
	case Push:
		return Yellow, Yellow
	default:
		return Off, Off
	}
}

// Tap observes every color pair the controller applies. Taps must not block.
type Tap func(player, dealer hardware.Color)

// Controller drives the two indicators
type Controller struct {
	player hardware.RGB
	dealer hardware.RGB
	clock  quartz.Clock
	logger *log.Logger
	tap    Tap
}

// NewController creates a controller over the two indicator devices
func NewController(logger *log.Logger, player, dealer hardware.RGB, clock quartz.Clock) *Controller {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Controller{
		player: player,
		dealer: dealer,
		clock:  clock,
		logger: logger.WithPrefix("indicator"),
	}
}

// SetTap installs the color observer. Call before the machine starts.
func (c *Controller) SetTap(tap Tap) {
	c.tap = tap
}

// Apply sets both indicators for a semantic state. Device faults are logged
// and absorbed; a dark indicator never stalls the game.
func (c *Controller) Apply(s State) {
	player, dealer := StateColors(s)
	c.logger.Debug("applying indicator state", "state", s)
	c.Set(player, dealer)
}

// Set drives both indicators with explicit colors
func (c *Controller) Set(player, dealer hardware.Color) {
	if err := c.player.Set(player); err != nil {
		c.logger.Error("player indicator fault", "error", err)
	}
	if err := c.dealer.Set(dealer); err != nil {
		c.logger.Error("dealer indicator fault", "error", err)
	}
	if c.tap != nil {
		c.tap(player, dealer)
	}
}

// Flash blinks both indicators, used by the boot self-test. Leaves both off.
func (c *Controller) Flash(ctx context.Context, color hardware.Color, times int, interval time.Duration) error {
	for i := 0; i < times; i++ {
		c.Set(color, color)
		if err := c.sleep(ctx, interval); err != nil {
			return err
		}
		c.Set(Off, Off)
		if err := c.sleep(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) error {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
