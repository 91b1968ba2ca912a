package input

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/hardware"
)

const (
	// DefaultSamplePeriod is how often a button line is sampled
	DefaultSamplePeriod = 5 * time.Millisecond
	// DefaultDebounce is how long a press must hold steady before it fires
	DefaultDebounce = 30 * time.Millisecond
)

// WatcherConfig wires one watcher to its button
type WatcherConfig struct {
	Kind     Kind
	Button   hardware.Button
	Queue    *Queue
	Clock    quartz.Clock
	Sample   time.Duration
	Debounce time.Duration
	Logger   *log.Logger
}

// Watcher samples one button and feeds debounced presses to the queue.
// A press fires once the line has read pressed continuously for the
// debounce interval; any bounce restarts the window, and the watcher
// re-arms only after the line reads released again, so holding a button
// never repeats.
type Watcher struct {
	kind     Kind
	button   hardware.Button
	queue    *Queue
	clock    quartz.Clock
	sample   time.Duration
	debounce time.Duration
	logger   *log.Logger

	armed      bool
	candidate  time.Time
	readFailed bool
}

// NewWatcher creates a watcher; zero Sample/Debounce take the defaults
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Sample <= 0 {
		cfg.Sample = DefaultSamplePeriod
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Watcher{
		kind:     cfg.Kind,
		button:   cfg.Button,
		queue:    cfg.Queue,
		clock:    cfg.Clock,
		sample:   cfg.Sample,
		debounce: cfg.Debounce,
		logger:   cfg.Logger.WithPrefix("input").With("button", cfg.Kind),
		armed:    true,
	}
}

// Run samples the button until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Debug("watching button", "sample", w.sample, "debounce", w.debounce)
	ticker := w.clock.TickerFunc(ctx, w.sample, func() error {
		w.step()
		return nil
	}, "input", w.kind.String())

	err := ticker.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// step processes one sample of the button line
func (w *Watcher) step() {
	pressed, err := w.button.Pressed()
	if err != nil {
		// one warning per failure episode, not one per sample
		if !w.readFailed {
			w.logger.Warn("button read failed", "error", err)
			w.readFailed = true
		}
		return
	}
	w.readFailed = false

	if !pressed {
		w.candidate = time.Time{}
		w.armed = true
		return
	}
	if !w.armed {
		return
	}
	if w.candidate.IsZero() {
		w.candidate = w.clock.Now()
		return
	}
	if w.clock.Since(w.candidate) >= w.debounce {
		w.logger.Debug("debounced press")
		w.queue.Push(Event{Kind: w.kind, At: w.clock.Now()})
		w.armed = false
		w.candidate = time.Time{}
	}
}
