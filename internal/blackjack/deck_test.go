package blackjack

import (
	"testing"

	"github.com/lox/blackjackmachine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckCoversFullSpace(t *testing.T) {
	for _, seed := range []int64{1, 42, 2024} {
		d := NewDeck(randutil.New(seed))
		require.Equal(t, 52, d.Remaining())

		seen := make(map[Card]bool)
		for i := 0; i < 52; i++ {
			card, ok := d.Draw()
			require.True(t, ok, "draw %d from seed %d", i, seed)
			assert.False(t, seen[card], "duplicate %s from seed %d", card, seed)
			seen[card] = true
		}
		assert.Len(t, seen, 52)

		_, ok := d.Draw()
		assert.False(t, ok, "53rd draw should fail")
		assert.Equal(t, 0, d.Remaining())
	}
}

func TestDeckCanonicalOrder(t *testing.T) {
	d := NewDeck(nil)

	first, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Spades, Two}, first)

	second, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Spades, Three}, second)
}

func TestDeckDeterministicForSeed(t *testing.T) {
	a := NewDeck(randutil.New(7))
	b := NewDeck(randutil.New(7))
	for i := 0; i < 52; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		assert.Equal(t, ca, cb, "position %d", i)
	}
}

func TestStackedDeck(t *testing.T) {
	d := NewStackedDeck(Card{Spades, Ace}, Card{Hearts, King})

	c1, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Spades, Ace}, c1)

	c2, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Hearts, King}, c2)

	_, ok = d.Draw()
	assert.False(t, ok)
}
