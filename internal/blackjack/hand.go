package blackjack

import (
	"fmt"
	"strings"
)

// MaxHandCards is the most cards a hand can hold. The cabinet has four
// display units per side, so a hand that reaches four cards stops drawing.
const MaxHandCards = 4

// Hand represents the ordered cards held by the player or the dealer
type Hand struct {
	cards []Card
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{cards: make([]Card, 0, MaxHandCards)}
}

// Add appends a card to the hand. Returns false when the hand is full.
func (h *Hand) Add(card Card) bool {
	if len(h.cards) >= MaxHandCards {
		return false
	}
	h.cards = append(h.cards, card)
	return true
}

// Cards returns the cards in the order they were dealt
func (h *Hand) Cards() []Card {
	return h.cards
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Full returns true when the hand holds the maximum number of cards
func (h *Hand) Full() bool {
	return len(h.cards) >= MaxHandCards
}

// Score returns the best blackjack total and whether it is soft.
// Aces count 11 and are demoted to 1 one at a time while the total
// exceeds 21. The total is soft while an ace still counts as 11.
func (h *Hand) Score() (int, bool) {
	total := 0
	aces := 0
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// Value returns the best blackjack total
func (h *Hand) Value() int {
	total, _ := h.Score()
	return total
}

// IsBlackjack returns true for a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// Busted returns true when the total exceeds 21
func (h *Hand) Busted() bool {
	return h.Value() > 21
}

// String returns the hand for logging (e.g., "A♠ K♥ (21)")
func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	total, soft := h.Score()
	if soft {
		return fmt.Sprintf("%s (soft %d)", strings.Join(parts, " "), total)
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), total)
}
