package blackjack

import (
	"testing"
)

func TestCardValue(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want int
	}{
		{"two", Card{Spades, Two}, 2},
		{"nine", Card{Hearts, Nine}, 9},
		{"ten", Card{Diamonds, Ten}, 10},
		{"jack", Card{Clubs, Jack}, 10},
		{"queen", Card{Spades, Queen}, 10},
		{"king", Card{Hearts, King}, 10},
		{"ace counts eleven", Card{Spades, Ace}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Spades, Ace}, "A♠"},
		{Card{Hearts, Ten}, "10♥"},
		{Card{Diamonds, Queen}, "Q♦"},
		{Card{Clubs, Two}, "2♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCardColors(t *testing.T) {
	if (Card{Spades, Ace}).IsRed() {
		t.Error("spades should not be red")
	}
	if !(Card{Hearts, Ace}).IsRed() {
		t.Error("hearts should be red")
	}
	if !(Card{Diamonds, Two}).IsRed() {
		t.Error("diamonds should be red")
	}
	if (Card{Clubs, King}).IsRed() {
		t.Error("clubs should not be red")
	}
}
