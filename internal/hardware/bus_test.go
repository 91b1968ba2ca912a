package hardware

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBus captures every write for inspection
type recordingBus struct {
	mu     sync.Mutex
	writes []busWrite
}

type busWrite struct {
	addr uint8
	data []byte
}

func (b *recordingBus) Write(addr uint8, p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, busWrite{addr: addr, data: append([]byte(nil), p...)})
	return nil
}

func (b *recordingBus) all() []busWrite {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]busWrite(nil), b.writes...)
}

func TestMuxSelect(t *testing.T) {
	bus := &recordingBus{}
	mux := NewMux(DefaultMuxAddress)

	for ch := uint8(0); ch < 8; ch++ {
		require.NoError(t, mux.Select(bus, ch))
	}

	writes := bus.all()
	require.Len(t, writes, 8)
	for ch := uint8(0); ch < 8; ch++ {
		assert.Equal(t, uint8(DefaultMuxAddress), writes[ch].addr)
		assert.Equal(t, []byte{1 << ch}, writes[ch].data)
	}
}

func TestMuxSelectRejectsBadChannel(t *testing.T) {
	bus := &recordingBus{}
	mux := NewMux(DefaultMuxAddress)

	assert.Error(t, mux.Select(bus, 8))
	assert.Empty(t, bus.all(), "invalid channel must not touch the bus")
}

func TestSharedBusExcludesConcurrentCallers(t *testing.T) {
	shared := NewSharedBus(&recordingBus{})

	var active int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := shared.Locked(func(bus Bus) error {
				if !atomic.CompareAndSwapInt32(&active, 0, 1) {
					t.Error("two callers inside the guard at once")
				}
				time.Sleep(time.Millisecond)
				atomic.StoreInt32(&active, 0)
				return bus.Write(0x3C, []byte{0x00})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
