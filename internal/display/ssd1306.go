package display

import (
	"fmt"

	"github.com/lox/blackjackmachine/internal/hardware"
)

// DefaultDisplayAddress is the usual SSD1306 address strap
const DefaultDisplayAddress = 0x3C

// Control byte prefixes: one command byte follows, or a run of GDDRAM data
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// Initialization sequence for a 128x64 panel: clock, multiplex, charge
// pump, horizontal addressing, segment/COM orientation, contrast, then on.
var ssd1306Init = []byte{
	0xAE,
	0xD5, 0x80,
	0xA8, 0x3F,
	0xD3, 0x00,
	0x40,
	0x8D, 0x14,
	0x20, 0x00,
	0xA1,
	0xC8,
	0xDA, 0x12,
	0x81, 0xCF,
	0xD9, 0xF1,
	0xDB, 0x40,
	0xA4,
	0xA6,
	0xAF,
}

// SSD1306 is the write-only driver for one OLED unit. It holds no bus
// reference; the router hands in the bus it holds under the segment guard.
// One driver value can serve every unit at the same address behind the
// multiplexer, since the full frame is rasterized per draw.
type SSD1306 struct {
	addr uint8
}

// NewSSD1306 creates a driver for a unit at the given address
func NewSSD1306(addr uint8) *SSD1306 {
	return &SSD1306{addr: addr}
}

// Init sends the panel initialization sequence and blanks the unit
func (d *SSD1306) Init(bus hardware.Bus) error {
	for _, cmd := range ssd1306Init {
		if err := bus.Write(d.addr, []byte{ctrlCommand, cmd}); err != nil {
			return fmt.Errorf("ssd1306 init command 0x%02x: %w", cmd, err)
		}
	}
	var blank frame
	return d.flush(bus, &blank)
}

// Draw rasterizes the content and streams the full frame to the unit
func (d *SSD1306) Draw(bus hardware.Bus, content Content) error {
	return d.flush(bus, renderContent(content))
}

func (d *SSD1306) flush(bus hardware.Bus, f *frame) error {
	// address the whole 128x64 window
	if err := bus.Write(d.addr, []byte{ctrlCommand, 0x21, 0x00, 0x7F}); err != nil {
		return fmt.Errorf("ssd1306 column window: %w", err)
	}
	if err := bus.Write(d.addr, []byte{ctrlCommand, 0x22, 0x00, 0x07}); err != nil {
		return fmt.Errorf("ssd1306 page window: %w", err)
	}

	chunk := make([]byte, 0, 17)
	for pos := 0; pos < len(f.buf); pos += 16 {
		end := pos + 16
		if end > len(f.buf) {
			end = len(f.buf)
		}
		chunk = append(chunk[:0], ctrlData)
		chunk = append(chunk, f.buf[pos:end]...)
		if err := bus.Write(d.addr, chunk); err != nil {
			return fmt.Errorf("ssd1306 frame data at %d: %w", pos, err)
		}
	}
	return nil
}
