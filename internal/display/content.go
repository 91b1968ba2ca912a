package display

import (
	"fmt"

	"github.com/lox/blackjackmachine/internal/blackjack"
)

// Slot identifies one of the nine display units. Slots 0-3 show the
// player's cards, 4-7 the dealer's, and slot 8 is the game-state message
// display on its own bus segment.
type Slot int

const (
	// NumSlots is the total number of display units
	NumSlots = 9
	// NumCardSlots is the number of card units behind the multiplexer
	NumCardSlots = 8
	// MessageSlot is the game-state message display
	MessageSlot Slot = 8
)

// PlayerSlot returns the slot for the player's i-th card (0-3)
func PlayerSlot(i int) Slot {
	return Slot(i)
}

// DealerSlot returns the slot for the dealer's i-th card (0-3)
func DealerSlot(i int) Slot {
	return Slot(4 + i)
}

// Kind says what a slot is showing
type Kind int

const (
	Blank Kind = iota
	Face
	Back
	Message
)

// String returns the kind for logging
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Face:
		return "face"
	case Back:
		return "back"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

// HiddenTotal marks a score that must not be shown, such as the dealer's
// while the hole card is face down.
const HiddenTotal = -1

// Content is one renderable unit of display state. Card faces and backs go
// to slots 0-7; messages with optional totals go to the message slot.
type Content struct {
	Kind        Kind
	Card        blackjack.Card
	Text        string
	PlayerTotal int
	DealerTotal int
}

// BlankContent clears a unit
func BlankContent() Content {
	return Content{Kind: Blank, PlayerTotal: HiddenTotal, DealerTotal: HiddenTotal}
}

// FaceContent shows a card face
func FaceContent(card blackjack.Card) Content {
	return Content{Kind: Face, Card: card, PlayerTotal: HiddenTotal, DealerTotal: HiddenTotal}
}

// BackContent shows the hidden-card back
func BackContent() Content {
	return Content{Kind: Back, PlayerTotal: HiddenTotal, DealerTotal: HiddenTotal}
}

// MessageContent shows a status line with optional hand totals. Pass
// HiddenTotal for a score that should stay off the panel.
func MessageContent(text string, playerTotal, dealerTotal int) Content {
	return Content{Kind: Message, Text: text, PlayerTotal: playerTotal, DealerTotal: dealerTotal}
}

// String returns the content for logging
func (c Content) String() string {
	switch c.Kind {
	case Face:
		return fmt.Sprintf("face %s", c.Card)
	case Message:
		return fmt.Sprintf("message %q", c.Text)
	default:
		return c.Kind.String()
	}
}
