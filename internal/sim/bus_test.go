package sim

import (
	"errors"
	"testing"

	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDecodesMuxSelects(t *testing.T) {
	bus := NewBus()
	assert.Equal(t, NoChannel, bus.Channel())

	require.NoError(t, bus.Write(hardware.DefaultMuxAddress, []byte{1 << 3}))
	assert.Equal(t, 3, bus.Channel())

	require.NoError(t, bus.Write(hardware.DefaultMuxAddress, []byte{1 << 0}))
	assert.Equal(t, 0, bus.Channel())

	// Zero mask deselects everything.
	require.NoError(t, bus.Write(hardware.DefaultMuxAddress, []byte{0x00}))
	assert.Equal(t, NoChannel, bus.Channel())
}

func TestBusRejectsMultiChannelMasks(t *testing.T) {
	bus := NewBus()
	err := bus.Write(hardware.DefaultMuxAddress, []byte{0b00000011})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one channel")
}

func TestBusAttributesWritesToTheRoutedChannel(t *testing.T) {
	bus := NewBus()

	// Before any select, traffic lands on NoChannel.
	require.NoError(t, bus.Write(0x3C, []byte{0x00, 0xAF}))

	require.NoError(t, bus.Write(hardware.DefaultMuxAddress, []byte{1 << 2}))
	require.NoError(t, bus.Write(0x3C, []byte{0x40, 0x01, 0x02}))
	require.NoError(t, bus.Write(0x3C, []byte{0x40, 0x03}))

	assert.Equal(t, 1, bus.Writes(NoChannel, 0x3C))
	assert.Equal(t, 2, bus.Writes(2, 0x3C))
	assert.Equal(t, 0, bus.Writes(1, 0x3C))
	assert.Equal(t, 7, bus.Bytes())
}

func TestBusFaultInjection(t *testing.T) {
	bus := NewBus()
	nack := errors.New("nack")
	bus.FailNext(0x3C, nack)

	require.ErrorIs(t, bus.Write(0x3C, []byte{0x00}), nack)
	// The fault is consumed; the next write goes through.
	require.NoError(t, bus.Write(0x3C, []byte{0x00}))

	// Faults queue up, and other addresses are unaffected.
	bus.FailNext(0x3C, nack)
	bus.FailNext(0x3C, nack)
	require.NoError(t, bus.Write(0x3D, []byte{0x00}))
	require.ErrorIs(t, bus.Write(0x3C, []byte{0x00}), nack)
	require.ErrorIs(t, bus.Write(0x3C, []byte{0x00}), nack)
	require.NoError(t, bus.Write(0x3C, []byte{0x00}))
}

func TestBusRejectsEmptyWrites(t *testing.T) {
	bus := NewBus()
	require.Error(t, bus.Write(0x3C, nil))
}
