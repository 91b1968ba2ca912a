package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/machine"
	"github.com/lox/blackjackmachine/internal/sim"
)

// SimulateCmd soaks the machine headless: an auto player reads the
// message display and plays rounds against simulated hardware
type SimulateCmd struct {
	Rounds   int           `kong:"default='1000',help='Number of rounds to play'"`
	Strategy string        `kong:"default='basic',help='Player strategy: basic, stand, mimic, random'"`
	Seed     int64         `kong:"default='0',help='RNG seed (0 for random)'"`
	Timeout  time.Duration `kong:"default='5m',help='Stall guard for the whole run'"`
	Quiet    bool          `kong:"help='One dot per round instead of a line'"`
	Verbose  bool          `kong:"help='Verbose logging'"`
}

func (c *SimulateCmd) Run() error {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Soaking %d rounds vs %s strategy (seed: %d)\n", c.Rounds, c.Strategy, c.Seed)

	start := time.Now()
	st, err := sim.New(sim.Config{
		Rounds:   c.Rounds,
		Strategy: c.Strategy,
		Seed:     c.Seed,
		Timeout:  c.Timeout,
		Monitor:  machine.NewConsoleMonitor(os.Stdout, c.Quiet),
		Logger:   logger,
	}).Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	sim.PrintSummary(st, c.Strategy)
	fmt.Printf("\nCompleted in %s (%.0f rounds/sec)\n",
		elapsed.Round(time.Millisecond), float64(st.Rounds)/elapsed.Seconds())
	return nil
}
