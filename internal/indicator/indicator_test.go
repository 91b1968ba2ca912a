package indicator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRGB struct {
	mu     sync.Mutex
	colors []hardware.Color
	err    error
}

func (f *fakeRGB) Set(c hardware.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.colors = append(f.colors, c)
	return nil
}

func (f *fakeRGB) last() hardware.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.colors) == 0 {
		return hardware.Color{}
	}
	return f.colors[len(f.colors)-1]
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestStateColors(t *testing.T) {
	tests := []struct {
		state  State
		player hardware.Color
		dealer hardware.Color
	}{
		{Idle, Off, Off},
		{PlayerTurn, Blue, Off},
		{DealerTurn, Off, Blue},
		{Win, Green, Red},
		{Lose, Red, Green},
		{Push, Yellow, Yellow},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			player, dealer := StateColors(tt.state)
			assert.Equal(t, tt.player, player)
			assert.Equal(t, tt.dealer, dealer)
		})
	}
}

func TestControllerApply(t *testing.T) {
	player := &fakeRGB{}
	dealer := &fakeRGB{}
	c := NewController(testLogger(), player, dealer, quartz.NewReal())

	c.Apply(Win)
	assert.Equal(t, Green, player.last())
	assert.Equal(t, Red, dealer.last())

	c.Apply(Idle)
	assert.Equal(t, Off, player.last())
	assert.Equal(t, Off, dealer.last())
}

func TestControllerAbsorbsDeviceFaults(t *testing.T) {
	player := &fakeRGB{err: errors.New("driver gone")}
	dealer := &fakeRGB{}
	c := NewController(testLogger(), player, dealer, quartz.NewReal())

	// the dealer side must still be driven
	c.Apply(DealerTurn)
	assert.Equal(t, Blue, dealer.last())
}

func TestControllerTapMirrorsColors(t *testing.T) {
	player := &fakeRGB{}
	dealer := &fakeRGB{}
	c := NewController(testLogger(), player, dealer, quartz.NewReal())

	var gotPlayer, gotDealer hardware.Color
	c.SetTap(func(p, d hardware.Color) {
		gotPlayer, gotDealer = p, d
	})

	c.Apply(Push)
	assert.Equal(t, Yellow, gotPlayer)
	assert.Equal(t, Yellow, gotDealer)
}

func TestFlashBlinksAndEndsDark(t *testing.T) {
	player := &fakeRGB{}
	dealer := &fakeRGB{}
	c := NewController(testLogger(), player, dealer, quartz.NewReal())

	ctx := context.Background()
	require.NoError(t, c.Flash(ctx, Green, 2, time.Millisecond))

	player.mu.Lock()
	defer player.mu.Unlock()
	require.Len(t, player.colors, 4)
	assert.Equal(t, []hardware.Color{Green, Off, Green, Off}, player.colors)
}

func TestFlashHonorsContext(t *testing.T) {
	player := &fakeRGB{}
	dealer := &fakeRGB{}
	c := NewController(testLogger(), player, dealer, quartz.NewReal())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Flash(ctx, Green, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
