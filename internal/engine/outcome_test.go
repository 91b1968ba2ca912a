package engine

import (
	"testing"

	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/stretchr/testify/assert"
)

func c(suit blackjack.Suit, rank blackjack.Rank) blackjack.Card {
	return blackjack.Card{Suit: suit, Rank: rank}
}

func hand(cards ...blackjack.Card) *blackjack.Hand {
	h := blackjack.NewHand()
	for _, card := range cards {
		h.Add(card)
	}
	return h
}

func TestResolve(t *testing.T) {
	spades := func(ranks ...blackjack.Rank) *blackjack.Hand {
		h := blackjack.NewHand()
		for _, r := range ranks {
			h.Add(c(blackjack.Spades, r))
		}
		return h
	}

	tests := []struct {
		name    string
		player  *blackjack.Hand
		dealer  *blackjack.Hand
		outcome Outcome
		reason  Reason
	}{
		{
			name:    "player bust loses",
			player:  spades(blackjack.Ten, blackjack.Nine, blackjack.Five),
			dealer:  spades(blackjack.Ten, blackjack.Seven),
			outcome: DealerWins,
			reason:  ReasonPlayerBust,
		},
		{
			name:    "player bust loses even when dealer busts too",
			player:  spades(blackjack.Ten, blackjack.Nine, blackjack.Five),
			dealer:  spades(blackjack.Ten, blackjack.Six, blackjack.Eight),
			outcome: DealerWins,
			reason:  ReasonPlayerBust,
		},
		{
			name:    "dealer bust pays the player",
			player:  spades(blackjack.Ten, blackjack.Nine),
			dealer:  spades(blackjack.Ten, blackjack.Six, blackjack.Eight),
			outcome: PlayerWins,
			reason:  ReasonDealerBust,
		},
		{
			name:    "lone player blackjack beats a plain 21",
			player:  spades(blackjack.Ace, blackjack.King),
			dealer:  spades(blackjack.Ten, blackjack.Five, blackjack.Six),
			outcome: PlayerWins,
			reason:  ReasonPlayerBlackjack,
		},
		{
			name:    "lone dealer blackjack beats a plain 21",
			player:  spades(blackjack.Ten, blackjack.Five, blackjack.Six),
			dealer:  spades(blackjack.Ace, blackjack.King),
			outcome: DealerWins,
			reason:  ReasonDealerBlackjack,
		},
		{
			name:    "two blackjacks push",
			player:  hand(c(blackjack.Spades, blackjack.Ace), c(blackjack.Spades, blackjack.King)),
			dealer:  hand(c(blackjack.Hearts, blackjack.Ace), c(blackjack.Hearts, blackjack.Queen)),
			outcome: Push,
			reason:  ReasonEqualTotal,
		},
		{
			name:    "higher player total wins",
			player:  spades(blackjack.Ten, blackjack.Nine),
			dealer:  spades(blackjack.Ten, blackjack.Eight),
			outcome: PlayerWins,
			reason:  ReasonHigherTotal,
		},
		{
			name:    "higher dealer total wins",
			player:  spades(blackjack.Ten, blackjack.Eight),
			dealer:  spades(blackjack.Ten, blackjack.Nine),
			outcome: DealerWins,
			reason:  ReasonHigherTotal,
		},
		{
			name:    "equal totals push",
			player:  spades(blackjack.Ten, blackjack.Nine),
			dealer:  spades(blackjack.Nine, blackjack.Ten),
			outcome: Push,
			reason:  ReasonEqualTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, reason := Resolve(tt.player, tt.dealer)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
