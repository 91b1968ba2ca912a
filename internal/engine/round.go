package engine

import (
	"github.com/google/uuid"
	"github.com/lox/blackjackmachine/internal/blackjack"
)

// Round carries the cards in play for a single hand of blackjack. The
// dealer's first card is the hole card and stays face down until the
// dealer plays.
type Round struct {
	ID         string
	Deck       *blackjack.Deck
	Player     *blackjack.Hand
	Dealer     *blackjack.Hand
	HoleHidden bool
}

// NewRound starts a fresh round from an already-shuffled deck.
func NewRound(deck *blackjack.Deck) *Round {
	return &Round{
		ID:         uuid.New().String(),
		Deck:       deck,
		Player:     blackjack.NewHand(),
		Dealer:     blackjack.NewHand(),
		HoleHidden: true,
	}
}

// VisibleDealerTotal scores only the dealer cards the player can see.
// Once the hole card is revealed it matches Dealer.Value.
func (r *Round) VisibleDealerTotal() int {
	if !r.HoleHidden {
		return r.Dealer.Value()
	}
	visible := blackjack.NewHand()
	for i, c := range r.Dealer.Cards() {
		if i == 0 {
			continue
		}
		visible.Add(c)
	}
	return visible.Value()
}
