package display

import (
	"strings"

	"github.com/lox/blackjackmachine/internal/blackjack"
)

// textFont is a classic 5x7 column font: five column bytes per glyph, least
// significant bit at the top. Uppercase only; drawText folds its input.
var textFont = map[rune][5]byte{
	' ':  {0x00, 0x00, 0x00, 0x00, 0x00},
	'!':  {0x00, 0x00, 0x5F, 0x00, 0x00},
	'\'': {0x00, 0x05, 0x03, 0x00, 0x00},
	'-':  {0x08, 0x08, 0x08, 0x08, 0x08},
	'.':  {0x00, 0x60, 0x60, 0x00, 0x00},
	'/':  {0x20, 0x10, 0x08, 0x04, 0x02},
	'?':  {0x02, 0x01, 0x51, 0x09, 0x06},

	'0': {0x3E, 0x51, 0x49, 0x45, 0x3E},
	'1': {0x00, 0x42, 0x7F, 0x40, 0x00},
	'2': {0x42, 0x61, 0x51, 0x49, 0x46},
	'3': {0x21, 0x41, 0x45, 0x4B, 0x31},
	'4': {0x18, 0x14, 0x12, 0x7F, 0x10},
	'5': {0x27, 0x45, 0x45, 0x45, 0x39},
	'6': {0x3C, 0x4A, 0x49, 0x49, 0x30},
	'7': {0x01, 0x71, 0x09, 0x05, 0x03},
	'8': {0x36, 0x49, 0x49, 0x49, 0x36},
	'9': {0x06, 0x49, 0x49, 0x29, 0x1E},

	'A': {0x7E, 0x11, 0x11, 0x11, 0x7E},
	'B': {0x7F, 0x49, 0x49, 0x49, 0x36},
	'C': {0x3E, 0x41, 0x41, 0x41, 0x22},
	'D': {0x7F, 0x41, 0x41, 0x22, 0x1C},
	'E': {0x7F, 0x49, 0x49, 0x49, 0x41},
	'F': {0x7F, 0x09, 0x09, 0x09, 0x01},
	'G': {0x3E, 0x41, 0x49, 0x49, 0x7A},
	'H': {0x7F, 0x08, 0x08, 0x08, 0x7F},
	'I': {0x00, 0x41, 0x7F, 0x41, 0x00},
	'J': {0x20, 0x40, 0x41, 0x3F, 0x01},
	'K': {0x7F, 0x08, 0x14, 0x22, 0x41},
	'L': {0x7F, 0x40, 0x40, 0x40, 0x40},
	'M': {0x7F, 0x02, 0x0C, 0x02, 0x7F},
	'N': {0x7F, 0x04, 0x08, 0x10, 0x7F},
	'O': {0x3E, 0x41, 0x41, 0x41, 0x3E},
	'P': {0x7F, 0x09, 0x09, 0x09, 0x06},
	'Q': {0x3E, 0x41, 0x51, 0x21, 0x5E},
	'R': {0x7F, 0x09, 0x19, 0x29, 0x46},
	'S': {0x46, 0x49, 0x49, 0x49, 0x31},
	'T': {0x01, 0x01, 0x7F, 0x01, 0x01},
	'U': {0x3F, 0x40, 0x40, 0x40, 0x3F},
	'V': {0x1F, 0x20, 0x40, 0x20, 0x1F},
	'W': {0x3F, 0x40, 0x38, 0x40, 0x3F},
	'X': {0x63, 0x14, 0x08, 0x14, 0x63},
	'Y': {0x07, 0x08, 0x70, 0x08, 0x07},
	'Z': {0x61, 0x51, 0x49, 0x45, 0x43},
}

// glyph advance in pixels at a given scale (5 columns plus one of spacing)
func advance(scale int) int {
	return 6 * scale
}

func textWidth(s string, scale int) int {
	return len(s) * advance(scale)
}

// drawText draws s at (x, y) scaled up by scale and returns the width drawn.
// Runes missing from the font render as '?'.
func drawText(f *frame, x, y, scale int, s string) int {
	pen := x
	for _, r := range strings.ToUpper(s) {
		cols, ok := textFont[r]
		if !ok {
			cols = textFont['?']
		}
		for cx, col := range cols {
			for cy := 0; cy < 7; cy++ {
				if col&(1<<uint(cy)) == 0 {
					continue
				}
				f.fillRect(pen+cx*scale, y+cy*scale, scale, scale)
			}
		}
		pen += advance(scale)
	}
	return pen - x
}

func drawTextCentered(f *frame, y, scale int, s string) {
	x := (frameWidth - textWidth(s, scale)) / 2
	if x < 0 {
		x = 0
	}
	drawText(f, x, y, scale, s)
}

// Seven-segment patterns for the big score digits. Segments map to bits in
// the usual g-f-e-d-c-b-a order:
//
//	 aaa
//	f   b
//	f   b
//	 ggg
//	e   c
//	e   c
//	 ddd
const (
	segA byte = 1 << 0
	segB byte = 1 << 1
	segC byte = 1 << 2
	segD byte = 1 << 3
	segE byte = 1 << 4
	segF byte = 1 << 5
	segG byte = 1 << 6
)

var segDigits = [10]byte{
	segA | segB | segC | segD | segE | segF,
	segB | segC,
	segA | segB | segG | segE | segD,
	segA | segB | segG | segC | segD,
	segF | segG | segB | segC,
	segA | segF | segG | segC | segD,
	segA | segF | segE | segD | segC | segG,
	segA | segB | segC,
	segA | segB | segC | segD | segE | segF | segG,
	segA | segB | segC | segD | segF | segG,
}

// drawSegDigit rasterizes one seven-segment digit into a w x h box with
// strokes t pixels thick
func drawSegDigit(f *frame, x, y, w, h, t int, pattern byte) {
	half := h / 2
	if pattern&segA != 0 {
		f.fillRect(x+t, y, w-2*t, t)
	}
	if pattern&segB != 0 {
		f.fillRect(x+w-t, y+t, t, half-t)
	}
	if pattern&segC != 0 {
		f.fillRect(x+w-t, y+half, t, half-t)
	}
	if pattern&segD != 0 {
		f.fillRect(x+t, y+h-t, w-2*t, t)
	}
	if pattern&segE != 0 {
		f.fillRect(x, y+half, t, half-t)
	}
	if pattern&segF != 0 {
		f.fillRect(x, y+t, t, half-t)
	}
	if pattern&segG != 0 {
		f.fillRect(x+t, y+half-t/2, w-2*t, t)
	}
}

// drawSegNumber draws n (0-99) as big seven-segment digits
func drawSegNumber(f *frame, x, y, digitW, digitH, t, n int) {
	if n < 0 {
		return
	}
	if n > 99 {
		n = 99
	}
	if n >= 10 {
		drawSegDigit(f, x, y, digitW, digitH, t, segDigits[n/10])
		x += digitW + 4
	}
	drawSegDigit(f, x, y, digitW, digitH, t, segDigits[n%10])
}

// suitArt is 8x8 pixel art per suit, most significant bit leftmost
var suitArt = map[blackjack.Suit][8]byte{
	blackjack.Spades:   {0x18, 0x3C, 0x7E, 0xFF, 0xFF, 0x7E, 0x18, 0x3C},
	blackjack.Hearts:   {0x66, 0xFF, 0xFF, 0xFF, 0x7E, 0x3C, 0x18, 0x00},
	blackjack.Diamonds: {0x18, 0x3C, 0x7E, 0xFF, 0xFF, 0x7E, 0x3C, 0x18},
	blackjack.Clubs:    {0x18, 0x3C, 0x18, 0x7E, 0xFF, 0x7E, 0x18, 0x3C},
}

func drawSuit(f *frame, x, y, scale int, suit blackjack.Suit) {
	art := suitArt[suit]
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if art[row]&(1<<uint(7-col)) == 0 {
				continue
			}
			f.fillRect(x+col*scale, y+row*scale, scale, scale)
		}
	}
}
