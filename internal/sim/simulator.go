package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/randutil"
	"github.com/lox/blackjackmachine/internal/stats"
)

// DefaultTimeout caps a whole soak run; hitting it means the machine
// wedged somewhere instead of playing.
const DefaultTimeout = time.Minute

// Config holds configuration for running soak simulations
type Config struct {
	Rounds   int
	Strategy string
	Seed     int64

	// DealerPause paces the dealer's draws; zero plays out instantly.
	DealerPause time.Duration

	// Timeout is the stall guard for the whole run
	Timeout time.Duration

	// Monitor optionally observes rounds, e.g. for per-round printing
	Monitor engine.RoundMonitor

	Logger *log.Logger
}

// Simulator soaks the full machine: a real engine over simulated buses
// and indicators, played by an auto player that reads the message
// display and presses buttons like a bench operator.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run executes the simulation and returns the accumulated statistics
func (s *Simulator) Run(ctx context.Context) (*stats.Statistics, error) {
	logger := s.config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rng := randutil.New(s.config.Seed)
	strategy, err := NewStrategy(s.config.Strategy, rng)
	if err != nil {
		return nil, err
	}

	cardSegment := hardware.NewSharedBus(NewBus())
	messageSegment := hardware.NewSharedBus(NewBus())
	mux := hardware.NewMux(hardware.DefaultMuxAddress)
	unit := display.NewSSD1306(display.DefaultDisplayAddress)

	var targets [display.NumSlots]display.Target
	for i := 0; i < display.NumCardSlots; i++ {
		targets[i] = display.Target{Device: unit, Segment: cardSegment, Mux: mux, Channel: uint8(i)}
	}
	targets[display.MessageSlot] = display.Target{Device: unit, Segment: messageSegment}

	router := display.NewRouter(logger, targets)
	if err := router.Init(); err != nil {
		return nil, fmt.Errorf("simulated panel init: %w", err)
	}
	indicators := indicator.NewController(logger, NewRGB(), NewRGB(), nil)
	queue := input.NewQueue(logger, 0)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	player := NewAutoPlayer(queue, strategy, s.config.Rounds, cancel)
	router.SetTap(player.Tap())
	recorder := stats.NewRecorder()

	// Each round shuffles with an independent seed derived from the base,
	// so any single round can be replayed on its own.
	round := 0
	eng := engine.New(engine.Config{
		Router:      router,
		Indicators:  indicators,
		Queue:       queue,
		DealerPause: s.config.DealerPause,
		DeckSource: func() *blackjack.Deck {
			round++
			return blackjack.NewDeck(randutil.New(s.config.Seed + int64(round)))
		},
		Monitor: engine.NewMultiRoundMonitor(recorder, player, s.config.Monitor),
		Logger:  logger,
	})

	if err := eng.Run(runCtx); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	if player.Played() < s.config.Rounds {
		return nil, fmt.Errorf("simulation stalled after %d of %d rounds", player.Played(), s.config.Rounds)
	}

	st := recorder.Snapshot()
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return &st, nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(st *stats.Statistics, strategy string) {
	fmt.Printf("\n=== RESULTS vs %s strategy ===\n", strategy)
	fmt.Printf("Rounds played: %d\n", st.Rounds)
	fmt.Printf("Player wins: %d (%.1f%%)\n", st.PlayerWins, st.WinRate()*100)
	fmt.Printf("Dealer wins: %d (%.1f%%)\n", st.DealerWins, st.LossRate()*100)
	fmt.Printf("Pushes: %d (%.1f%%)\n", st.Pushes, st.PushRate()*100)

	fmt.Printf("\n=== HAND ANALYSIS ===\n")
	fmt.Printf("Player blackjacks: %d (%.1f%%)\n", st.PlayerBlackjacks, st.BlackjackRate()*100)
	fmt.Printf("Dealer blackjacks: %d\n", st.DealerBlackjacks)
	fmt.Printf("Player busts: %d (%.1f%%)\n", st.PlayerBusts, st.BustRate()*100)
	fmt.Printf("Dealer busts: %d\n", st.DealerBusts)
	fmt.Printf("Average player cards: %.2f\n", st.AveragePlayerCards())
}
