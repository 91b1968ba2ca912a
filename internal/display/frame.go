package display

// Panel geometry of the 128x64 units
const (
	frameWidth  = 128
	frameHeight = 64
	framePages  = frameHeight / 8
)

// frame is the page-major pixel buffer the panels accept: eight pages of
// 128 column bytes, least significant bit at the top of each page.
type frame struct {
	buf [framePages * frameWidth]byte
}

func (f *frame) set(x, y int) {
	if x < 0 || x >= frameWidth || y < 0 || y >= frameHeight {
		return
	}
	f.buf[(y/8)*frameWidth+x] |= 1 << uint(y%8)
}

func (f *frame) fillRect(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.set(xx, yy)
		}
	}
}

func (f *frame) strokeRect(x, y, w, h, thickness int) {
	f.fillRect(x, y, w, thickness)
	f.fillRect(x, y+h-thickness, w, thickness)
	f.fillRect(x, y, thickness, h)
	f.fillRect(x+w-thickness, y, thickness, h)
}

// renderContent rasterizes content into a fresh frame
func renderContent(c Content) *frame {
	f := &frame{}
	switch c.Kind {
	case Face:
		renderFace(f, c)
	case Back:
		renderBack(f)
	case Message:
		renderMessage(f, c)
	}
	return f
}

func renderFace(f *frame, c Content) {
	f.strokeRect(0, 0, frameWidth, frameHeight, 2)
	drawText(f, 10, 8, 3, c.Card.Rank.String())
	drawSuit(f, frameWidth-34, frameHeight-34, 3, c.Card.Suit)
}

func renderBack(f *frame) {
	f.strokeRect(0, 0, frameWidth, frameHeight, 2)
	// diagonal crosshatch inside the border
	for y := 6; y < frameHeight-6; y++ {
		for x := 6; x < frameWidth-6; x++ {
			if (x+y)%6 == 0 || (x-y+frameWidth)%6 == 0 {
				f.set(x, y)
			}
		}
	}
}

func renderMessage(f *frame, c Content) {
	scale := 2
	if textWidth(c.Text, scale) > frameWidth-4 {
		scale = 1
	}
	drawTextCentered(f, 6, scale, c.Text)

	if c.PlayerTotal != HiddenTotal {
		drawText(f, 14, 28, 1, "YOU")
		drawSegNumber(f, 14, 38, 10, 22, 3, c.PlayerTotal)
	}
	if c.DealerTotal != HiddenTotal {
		drawText(f, 86, 28, 1, "DLR")
		drawSegNumber(f, 86, 38, 10, 22, 3, c.DealerTotal)
	}
}
