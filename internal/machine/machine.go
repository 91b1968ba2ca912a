// Package machine assembles one cabinet from its parts: the display
// router over the two bus segments, the three button watchers, the
// indicator controller, the engine, and the optional maintenance
// console, all supervised as a unit.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/panel"
	"github.com/lox/blackjackmachine/internal/sim"
	"github.com/lox/blackjackmachine/internal/stats"
	"golang.org/x/sync/errgroup"
)

// The lamp self-test the cabinet runs before the first attract screen
const (
	bootFlashes       = 2
	bootFlashInterval = 150 * time.Millisecond
)

// Options carries the pieces of a machine that vary by caller. Config
// is the only field most callers set; everything else has a working
// zero value.
type Options struct {
	Config *Config
	Logger *log.Logger
	Clock  quartz.Clock

	// Recorder tallies round outcomes; nil makes a fresh one.
	Recorder *stats.Recorder

	// Monitor observes rounds after the recorder has tallied them.
	Monitor engine.RoundMonitor

	// DeckSource overrides the per-round shuffle. Leave nil to shuffle
	// with a fresh seed from the system entropy source.
	DeckSource func() *blackjack.Deck

	// FrameTaps observe every frame the router renders, IndicatorTaps
	// every color pair the lamps take. Taps must not block.
	FrameTaps     []display.Tap
	IndicatorTaps []indicator.Tap
}

// parts is the hardware a machine assembles over, devfs or simulated.
type parts struct {
	card    hardware.Bus
	message hardware.Bus

	start hardware.Button
	hit   hardware.Button
	stand hardware.Button

	player hardware.RGB
	dealer hardware.RGB
}

// Machine is one assembled cabinet ready to Run.
type Machine struct {
	config     *Config
	logger     *log.Logger
	router     *display.Router
	indicators *indicator.Controller
	queue      *input.Queue
	watchers   []*input.Watcher
	engine     *engine.Engine
	console    *panel.Server
	recorder   *stats.Recorder
	closers    []io.Closer
}

// New assembles a machine over the Linux devfs backends named in the
// config: two I2C adapters, three sysfs GPIO buttons, and two GPIO
// indicators.
func New(opts Options) (*Machine, error) {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}
	cfg := opts.Config

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	card, err := hardware.OpenI2C(cfg.Bus.CardPath)
	if err != nil {
		return nil, fmt.Errorf("card bus: %w", err)
	}
	closers = append(closers, card)

	message, err := hardware.OpenI2C(cfg.Bus.MessagePath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("message bus: %w", err)
	}
	closers = append(closers, message)

	start, err := hardware.NewGPIOButton(cfg.Buttons.StartPin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("start button: %w", err)
	}
	closers = append(closers, start)

	hit, err := hardware.NewGPIOButton(cfg.Buttons.HitPin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("hit button: %w", err)
	}
	closers = append(closers, hit)

	stand, err := hardware.NewGPIOButton(cfg.Buttons.StandPin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("stand button: %w", err)
	}
	closers = append(closers, stand)

	pi := cfg.GetIndicator("player")
	player, err := hardware.NewGPIORGB(pi.RedPin, pi.GreenPin, pi.BluePin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("player indicator: %w", err)
	}
	closers = append(closers, player)

	di := cfg.GetIndicator("dealer")
	dealer, err := hardware.NewGPIORGB(di.RedPin, di.GreenPin, di.BluePin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("dealer indicator: %w", err)
	}
	closers = append(closers, dealer)

	m := assemble(opts, parts{
		card:    card,
		message: message,
		start:   start,
		hit:     hit,
		stand:   stand,
		player:  player,
		dealer:  dealer,
	})
	m.closers = closers
	return m, nil
}

// NewSim assembles a machine over a simulated rig. The displays are the
// real SSD1306 drivers writing down simulated wires; only the electrons
// are missing.
func NewSim(opts Options, rig *sim.Rig) (*Machine, error) {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}
	return assemble(opts, parts{
		card:    rig.CardBus,
		message: rig.MessageBus,
		start:   rig.Start,
		hit:     rig.Hit,
		stand:   rig.Stand,
		player:  rig.Player,
		dealer:  rig.Dealer,
	}), nil
}

// assemble wires the common core over whatever hardware it is handed
func assemble(opts Options, p parts) *Machine {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = stats.NewRecorder()
	}

	cardSegment := hardware.NewSharedBus(p.card)
	messageSegment := hardware.NewSharedBus(p.message)
	mux := hardware.NewMux(uint8(cfg.Bus.MuxAddress))
	unit := display.NewSSD1306(uint8(cfg.Bus.DisplayAddress))

	var targets [display.NumSlots]display.Target
	for i := 0; i < display.NumCardSlots; i++ {
		targets[i] = display.Target{Device: unit, Segment: cardSegment, Mux: mux, Channel: uint8(i)}
	}
	targets[display.MessageSlot] = display.Target{Device: unit, Segment: messageSegment}

	router := display.NewRouter(logger, targets)
	indicators := indicator.NewController(logger, p.player, p.dealer, opts.Clock)
	queue := input.NewQueue(logger, 0)

	var console *panel.Server
	if cfg.Console.Enabled {
		console = panel.NewServer(cfg.Console.Address, queue, recorder, logger)
	}

	frameTaps := opts.FrameTaps
	lampTaps := opts.IndicatorTaps
	if console != nil {
		frameTaps = append(frameTaps, console.FrameTap())
		lampTaps = append(lampTaps, console.IndicatorTap())
	}
	if tap := fanOutFrames(frameTaps); tap != nil {
		router.SetTap(tap)
	}
	if tap := fanOutColors(lampTaps); tap != nil {
		indicators.SetTap(tap)
	}

	buttons := []struct {
		kind   input.Kind
		button hardware.Button
	}{
		{input.Start, p.start},
		{input.Hit, p.hit},
		{input.Stand, p.stand},
	}
	watchers := make([]*input.Watcher, 0, len(buttons))
	for _, b := range buttons {
		watchers = append(watchers, input.NewWatcher(input.WatcherConfig{
			Kind:     b.kind,
			Button:   b.button,
			Queue:    queue,
			Clock:    opts.Clock,
			Debounce: cfg.Debounce(),
			Logger:   logger,
		}))
	}

	// The recorder tallies first so anything watching after it, the
	// console included, sees statistics that already contain the round
	// that just ended.
	monitors := []engine.RoundMonitor{recorder}
	if console != nil {
		monitors = append(monitors, console)
	}
	if opts.Monitor != nil {
		monitors = append(monitors, opts.Monitor)
	}

	eng := engine.New(engine.Config{
		Router:      router,
		Indicators:  indicators,
		Queue:       queue,
		DeckSource:  opts.DeckSource,
		ResultDwell: cfg.ResultDwell(),
		DealerPause: cfg.DealerPause(),
		Monitor:     engine.NewMultiRoundMonitor(monitors...),
		Clock:       opts.Clock,
		Logger:      logger,
	})

	return &Machine{
		config:     cfg,
		logger:     logger.WithPrefix("machine"),
		router:     router,
		indicators: indicators,
		queue:      queue,
		watchers:   watchers,
		engine:     eng,
		console:    console,
		recorder:   recorder,
	}
}

// Run brings the cabinet up and plays rounds until ctx is canceled: the
// panel initializes, the lamps run their self-test, then the watchers,
// the engine, and the console run under one supervisor.
func (m *Machine) Run(ctx context.Context) error {
	m.logger.Info("bringing up the cabinet",
		"dwell", m.config.ResultDwell(),
		"dealer_pause", m.config.DealerPause(),
		"debounce", m.config.Debounce(),
		"console", m.config.Console.Enabled,
	)

	// Leave the cabinet dark on the way out, whatever stopped it.
	defer func() {
		if err := m.router.Clear(); err != nil {
			m.logger.Debug("shutdown blank failed", "error", err)
		}
		m.indicators.Set(indicator.Off, indicator.Off)
	}()

	// A unit that fails init twice was already logged and skipped; the
	// cabinet runs degraded rather than not at all.
	if err := m.router.Init(); err != nil {
		m.logger.Warn("panel came up degraded", "error", err)
	}

	if err := m.indicators.Flash(ctx, indicator.Green, bootFlashes, bootFlashInterval); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("lamp self-test: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range m.watchers {
		g.Go(func() error { return w.Run(ctx) })
	}
	g.Go(func() error { return m.engine.Run(ctx) })
	if m.console != nil {
		g.Go(func() error { return m.console.Run(ctx) })
	}
	return g.Wait()
}

// Close releases the devfs handles. A simulated machine holds none and
// Close is a no-op.
func (m *Machine) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Recorder returns the statistics recorder the machine tallies into
func (m *Machine) Recorder() *stats.Recorder {
	return m.recorder
}

// fanOutFrames folds frame taps into one: nil for none, the tap itself
// for one, a fan-out closure otherwise.
func fanOutFrames(taps []display.Tap) display.Tap {
	switch len(taps) {
	case 0:
		return nil
	case 1:
		return taps[0]
	}
	return func(slot display.Slot, content display.Content) {
		for _, tap := range taps {
			tap(slot, content)
		}
	}
}

func fanOutColors(taps []indicator.Tap) indicator.Tap {
	switch len(taps) {
	case 0:
		return nil
	case 1:
		return taps[0]
	}
	return func(player, dealer hardware.Color) {
		for _, tap := range taps {
			tap(player, dealer)
		}
	}
}
