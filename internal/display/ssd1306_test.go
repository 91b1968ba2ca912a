package display

import (
	"testing"

	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type byteRecordingBus struct {
	writes [][]byte
	addrs  []uint8
}

func (b *byteRecordingBus) Write(addr uint8, p []byte) error {
	b.addrs = append(b.addrs, addr)
	b.writes = append(b.writes, append([]byte(nil), p...))
	return nil
}

func TestSSD1306InitProtocol(t *testing.T) {
	bus := &byteRecordingBus{}
	dev := NewSSD1306(DefaultDisplayAddress)

	require.NoError(t, dev.Init(bus))

	// 25 init commands, then a full blank frame (2 window commands + 64
	// sixteen-byte data chunks)
	require.Len(t, bus.writes, 25+2+64)

	for i := 0; i < 25; i++ {
		assert.Equal(t, uint8(DefaultDisplayAddress), bus.addrs[i])
		require.Len(t, bus.writes[i], 2)
		assert.Equal(t, byte(ctrlCommand), bus.writes[i][0])
		assert.Equal(t, ssd1306Init[i], bus.writes[i][1])
	}
	assert.Equal(t, byte(0xAE), bus.writes[0][1], "display off first")
	assert.Equal(t, byte(0xAF), bus.writes[24][1], "display on last")
}

func TestSSD1306DrawStreamsFullFrame(t *testing.T) {
	bus := &byteRecordingBus{}
	dev := NewSSD1306(DefaultDisplayAddress)

	card := blackjack.Card{Suit: blackjack.Spades, Rank: blackjack.Queen}
	require.NoError(t, dev.Draw(bus, FaceContent(card)))

	require.Len(t, bus.writes, 2+64)
	assert.Equal(t, []byte{ctrlCommand, 0x21, 0x00, 0x7F}, bus.writes[0], "column window")
	assert.Equal(t, []byte{ctrlCommand, 0x22, 0x00, 0x07}, bus.writes[1], "page window")

	total := 0
	for _, w := range bus.writes[2:] {
		require.Equal(t, byte(ctrlData), w[0], "data chunks carry the data prefix")
		total += len(w) - 1
	}
	assert.Equal(t, framePages*frameWidth, total, "one full frame of pixel data")
}
