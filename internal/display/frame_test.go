package display

import (
	"testing"

	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixelCount(f *frame) int {
	n := 0
	for _, b := range f.buf {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}

func TestRenderContentKinds(t *testing.T) {
	assert.Zero(t, pixelCount(renderContent(BlankContent())), "blank renders no pixels")

	face := renderContent(FaceContent(blackjack.Card{Suit: blackjack.Hearts, Rank: blackjack.Ten}))
	assert.Positive(t, pixelCount(face))

	back := renderContent(BackContent())
	assert.Positive(t, pixelCount(back))
	assert.NotEqual(t, face.buf, back.buf)

	msg := renderContent(MessageContent("YOU WIN!", 20, 18))
	assert.Positive(t, pixelCount(msg))
}

func TestRenderEveryCardFace(t *testing.T) {
	for suit := blackjack.Spades; suit <= blackjack.Clubs; suit++ {
		for rank := blackjack.Two; rank <= blackjack.Ace; rank++ {
			f := renderContent(FaceContent(blackjack.Card{Suit: suit, Rank: rank}))
			require.Positive(t, pixelCount(f), "card %s", blackjack.Card{Suit: suit, Rank: rank})
		}
	}
}

func TestDrawTextClipsOutOfBounds(t *testing.T) {
	f := &frame{}
	// far off the right edge and above the top; must not panic or wrap
	drawText(f, frameWidth+10, 0, 2, "OFFSCREEN")
	drawText(f, 0, -50, 2, "HIGH")
	assert.Zero(t, pixelCount(f))
}

func TestTextScalesDownToFit(t *testing.T) {
	wide := "DEALER WINS"
	assert.Greater(t, textWidth(wide, 2), frameWidth-4)
	assert.LessOrEqual(t, textWidth(wide, 1), frameWidth-4)

	f := renderContent(MessageContent(wide, HiddenTotal, HiddenTotal))
	assert.Positive(t, pixelCount(f))
}

func TestSegDigitsDistinct(t *testing.T) {
	seen := make(map[byte]int)
	for digit, pattern := range segDigits {
		require.NotZero(t, pattern, "digit %d has no segments", digit)
		if prev, dup := seen[pattern]; dup {
			t.Errorf("digits %d and %d share a pattern", prev, digit)
		}
		seen[pattern] = digit
	}
}

func TestSuitArtCoversAllSuits(t *testing.T) {
	for suit := blackjack.Spades; suit <= blackjack.Clubs; suit++ {
		art, ok := suitArt[suit]
		require.True(t, ok, "missing art for %s", suit)
		nonEmpty := false
		for _, row := range art {
			if row != 0 {
				nonEmpty = true
			}
		}
		assert.True(t, nonEmpty, "blank art for %s", suit)
	}
}
