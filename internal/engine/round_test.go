package engine

import (
	"testing"

	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundDealsFromItsDeck(t *testing.T) {
	round := NewRound(blackjack.NewStackedDeck(
		c(blackjack.Spades, blackjack.Ten),
		c(blackjack.Hearts, blackjack.Eight),
	))

	require.NotEmpty(t, round.ID)
	assert.True(t, round.HoleHidden)

	card, ok := round.Deck.Draw()
	require.True(t, ok)
	assert.Equal(t, c(blackjack.Spades, blackjack.Ten), card)
}

func TestVisibleDealerTotalHidesTheHoleCard(t *testing.T) {
	round := NewRound(blackjack.NewStackedDeck())
	round.Dealer.Add(c(blackjack.Hearts, blackjack.Eight))
	round.Dealer.Add(c(blackjack.Clubs, blackjack.Six))

	assert.Equal(t, 6, round.VisibleDealerTotal())

	round.HoleHidden = false
	assert.Equal(t, 14, round.VisibleDealerTotal())
}

func TestVisibleDealerTotalScoresAnExposedAce(t *testing.T) {
	round := NewRound(blackjack.NewStackedDeck())
	round.Dealer.Add(c(blackjack.Spades, blackjack.King))
	round.Dealer.Add(c(blackjack.Hearts, blackjack.Ace))

	assert.Equal(t, 11, round.VisibleDealerTotal())

	round.HoleHidden = false
	assert.Equal(t, 21, round.VisibleDealerTotal())
}
