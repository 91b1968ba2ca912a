package sim

import (
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/stats"
)

// Messages the bridge publishes into the front panel program.
type (
	// FrameMsg is one display unit changing what it shows
	FrameMsg struct {
		Slot    display.Slot
		Content display.Content
	}

	// LampsMsg is the indicator pair changing color
	LampsMsg struct {
		Player hardware.Color
		Dealer hardware.Color
	}

	// PhaseMsg announces a phase transition
	PhaseMsg engine.Phase

	// StatsMsg carries the running tallies after a resolved round
	StatsMsg stats.Statistics

	// LogMsg is one formatted machine log line
	LogMsg string
)

// Bridge carries machine events onto the front panel program. Taps and
// monitor callbacks arrive on the engine goroutine and log writes on any
// goroutine; every one becomes a buffered non-blocking send, so a slow
// terminal can never stall the machine.
type Bridge struct {
	updates  chan tea.Msg
	recorder *stats.Recorder
	dropped  atomic.Int64
}

// NewBridge creates a bridge. Wire it into the round monitor after the
// recorder so its stats snapshots include the round that just resolved.
func NewBridge(recorder *stats.Recorder) *Bridge {
	return &Bridge{
		updates:  make(chan tea.Msg, 256),
		recorder: recorder,
	}
}

// Updates is the stream the front panel model consumes
func (b *Bridge) Updates() <-chan tea.Msg {
	return b.updates
}

// Dropped returns how many updates were discarded against a full buffer
func (b *Bridge) Dropped() int64 {
	return b.dropped.Load()
}

func (b *Bridge) publish(msg tea.Msg) {
	select {
	case b.updates <- msg:
	default:
		b.dropped.Add(1)
	}
}

// FrameTap returns the display observer feeding the panel tiles
func (b *Bridge) FrameTap() display.Tap {
	return func(slot display.Slot, content display.Content) {
		b.publish(FrameMsg{Slot: slot, Content: content})
	}
}

// IndicatorTap returns the color observer feeding the panel lamps
func (b *Bridge) IndicatorTap() indicator.Tap {
	return func(player, dealer hardware.Color) {
		b.publish(LampsMsg{Player: player, Dealer: dealer})
	}
}

func (b *Bridge) OnPhaseChange(phase engine.Phase) {
	b.publish(PhaseMsg(phase))
}

func (b *Bridge) OnRoundStart(string) {}

func (b *Bridge) OnRoundComplete(engine.Result) {
	if b.recorder != nil {
		b.publish(StatsMsg(b.recorder.Snapshot()))
	}
}

// Write feeds one log line into the panel's log pane. The machine hands
// the bridge to its logger as the output writer in panel mode.
func (b *Bridge) Write(p []byte) (int, error) {
	b.publish(LogMsg(strings.TrimRight(string(p), "\n")))
	return len(p), nil
}
