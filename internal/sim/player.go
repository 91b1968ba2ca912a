package sim

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/input"
)

// Strategy decides the player's move from what the message display shows:
// the player's total and the dealer's visible total.
type Strategy interface {
	Decide(playerTotal, dealerVisible int) input.Kind
}

// NewStrategy creates a strategy by name. The rng feeds the random
// strategy and is ignored by the deterministic ones.
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "basic":
		return basicStrategy{}, nil
	case "stand":
		return standStrategy{}, nil
	case "mimic":
		return mimicStrategy{}, nil
	case "random":
		return randomStrategy{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// basicStrategy plays hard-total basic strategy against the visible
// dealer total. The display carries no soft flag, so soft hands are
// played as hard ones, the same bet a human at the cabinet reads.
type basicStrategy struct{}

func (basicStrategy) Decide(playerTotal, dealerVisible int) input.Kind {
	switch {
	case playerTotal >= 17:
		return input.Stand
	case playerTotal >= 13:
		if dealerVisible >= 2 && dealerVisible <= 6 {
			return input.Stand
		}
		return input.Hit
	case playerTotal == 12:
		if dealerVisible >= 4 && dealerVisible <= 6 {
			return input.Stand
		}
		return input.Hit
	default:
		return input.Hit
	}
}

// standStrategy stands on anything
type standStrategy struct{}

func (standStrategy) Decide(int, int) input.Kind {
	return input.Stand
}

// mimicStrategy draws to 17 like the dealer does
type mimicStrategy struct{}

func (mimicStrategy) Decide(playerTotal, _ int) input.Kind {
	if playerTotal < 17 {
		return input.Hit
	}
	return input.Stand
}

// randomStrategy flips a coin
type randomStrategy struct {
	rng *rand.Rand
}

func (s randomStrategy) Decide(int, int) input.Kind {
	if s.rng.IntN(2) == 0 {
		return input.Hit
	}
	return input.Stand
}

// AutoPlayer plays the machine the way a bench operator would: it watches
// the message display and presses whatever the strategy calls for. It
// observes the router tap and the round monitor, both of which run on the
// engine goroutine, so it needs no locking.
type AutoPlayer struct {
	queue    *input.Queue
	strategy Strategy
	rounds   int
	done     func()

	phase  engine.Phase
	played int
}

// NewAutoPlayer creates a player that starts rounds until the target is
// reached, then calls done once after the last round resolves.
func NewAutoPlayer(queue *input.Queue, strategy Strategy, rounds int, done func()) *AutoPlayer {
	return &AutoPlayer{
		queue:    queue,
		strategy: strategy,
		rounds:   rounds,
		done:     done,
	}
}

// Tap returns the display observer that drives play. The welcome screen
// prompts a start press, the hit/stand prompt gets a decision; everything
// else is scenery.
func (p *AutoPlayer) Tap() display.Tap {
	return func(slot display.Slot, content display.Content) {
		if slot != display.MessageSlot || content.Kind != display.Message {
			return
		}
		switch p.phase {
		case engine.Idle:
			if p.played < p.rounds {
				p.press(input.Start)
			}
		case engine.PlayerTurn:
			if content.PlayerTotal != display.HiddenTotal {
				p.press(p.strategy.Decide(content.PlayerTotal, content.DealerTotal))
			}
		}
	}
}

func (p *AutoPlayer) press(kind input.Kind) {
	p.queue.Push(input.Event{Kind: kind, At: time.Now()})
}

// Played returns how many rounds have resolved
func (p *AutoPlayer) Played() int {
	return p.played
}

func (p *AutoPlayer) OnPhaseChange(phase engine.Phase) {
	p.phase = phase
}

func (p *AutoPlayer) OnRoundStart(string) {}

func (p *AutoPlayer) OnRoundComplete(engine.Result) {
	p.played++
	if p.played >= p.rounds && p.done != nil {
		p.done()
	}
}
