// Package stats accumulates round tallies for the maintenance console
// and the strategy simulator.
package stats

import (
	"fmt"

	"github.com/lox/blackjackmachine/internal/engine"
)

// Statistics tracks the outcomes of completed rounds. It is plain data
// with no locking; wrap it in a Recorder to feed it from a live engine.
type Statistics struct {
	Rounds           int
	PlayerWins       int
	DealerWins       int
	Pushes           int
	PlayerBlackjacks int
	DealerBlackjacks int
	PlayerBusts      int
	DealerBusts      int
	PlayerCards      int // total cards across all player hands
	DealerCards      int
}

// Add incorporates one resolved round.
func (s *Statistics) Add(result engine.Result) {
	s.Rounds++
	switch result.Outcome {
	case engine.PlayerWins:
		s.PlayerWins++
	case engine.DealerWins:
		s.DealerWins++
	case engine.Push:
		s.Pushes++
	}
	if result.Reason == engine.ReasonPlayerBust {
		s.PlayerBusts++
	}
	if result.Reason == engine.ReasonDealerBust {
		s.DealerBusts++
	}
	if result.PlayerBlackjack {
		s.PlayerBlackjacks++
	}
	if result.DealerBlackjack {
		s.DealerBlackjacks++
	}
	s.PlayerCards += result.PlayerCards
	s.DealerCards += result.DealerCards
}

// WinRate returns the fraction of rounds the player won.
func (s *Statistics) WinRate() float64 {
	return s.rate(s.PlayerWins)
}

// LossRate returns the fraction of rounds the dealer won.
func (s *Statistics) LossRate() float64 {
	return s.rate(s.DealerWins)
}

// PushRate returns the fraction of rounds that tied.
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

// BlackjackRate returns the fraction of rounds opening on a player
// blackjack.
func (s *Statistics) BlackjackRate() float64 {
	return s.rate(s.PlayerBlackjacks)
}

// BustRate returns the fraction of rounds the player busted.
func (s *Statistics) BustRate() float64 {
	return s.rate(s.PlayerBusts)
}

// AveragePlayerCards returns the mean player hand size.
func (s *Statistics) AveragePlayerCards() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.PlayerCards) / float64(s.Rounds)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// Validate checks the internal accounting for consistency.
func (s *Statistics) Validate() error {
	if s.Rounds < 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if got := s.PlayerWins + s.DealerWins + s.Pushes; got != s.Rounds {
		return fmt.Errorf("outcome totals (%d) do not match round count (%d)", got, s.Rounds)
	}
	if s.PlayerBusts > s.DealerWins {
		return fmt.Errorf("player busts (%d) exceed dealer wins (%d)", s.PlayerBusts, s.DealerWins)
	}
	if s.DealerBusts > s.PlayerWins {
		return fmt.Errorf("dealer busts (%d) exceed player wins (%d)", s.DealerBusts, s.PlayerWins)
	}
	if s.PlayerBlackjacks > s.PlayerWins+s.Pushes {
		return fmt.Errorf("player blackjacks (%d) exceed wins and pushes (%d)",
			s.PlayerBlackjacks, s.PlayerWins+s.Pushes)
	}
	return nil
}
