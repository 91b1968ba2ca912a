package blackjack

import rand "math/rand/v2"

// Deck represents a standard 52-card deck dealt from the front
type Deck struct {
	cards []Card
}

// NewDeck creates a full 52-card deck shuffled by the provided RNG.
// A nil RNG leaves the deck in canonical suit-then-rank order, which is
// the deterministic hook used by tests and the entropy-failure fallback.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	if rng != nil {
		d.shuffle(rng)
	}
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order.
// Test helper for scripted rounds.
func NewStackedDeck(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// shuffle randomizes the deck using Fisher-Yates
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the front card, or false if the deck is empty
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
