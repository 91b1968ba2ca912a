package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/machine"
	"github.com/lox/blackjackmachine/internal/sim"
	"github.com/lox/blackjackmachine/internal/stats"
	"golang.org/x/sync/errgroup"
)

// SimCmd runs the full machine against simulated hardware, with a
// terminal front panel standing in for the cabinet
type SimCmd struct {
	Debug   bool   `kong:"help='Mirror debug logs into the panel log pane'"`
	Console string `kong:"env='BJM_CONSOLE',help='Also serve the maintenance console on this address'"`
	DwellMs int    `kong:"default='3000',help='Result dwell in milliseconds'"`
	PauseMs int    `kong:"default='700',help='Dealer draw pause in milliseconds'"`
}

func (c *SimCmd) Run() error {
	cfg := machine.DefaultConfig()
	cfg.Timing.ResultDwellMS = c.DwellMs
	cfg.Timing.DealerPauseMS = c.PauseMs
	if c.Console != "" {
		cfg.Console.Enabled = true
		cfg.Console.Address = c.Console
	}

	recorder := stats.NewRecorder()
	bridge := sim.NewBridge(recorder)

	// The machine's logs land in the panel's log pane instead of
	// scribbling over the alternate screen.
	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(bridge, log.Options{Level: level})

	rig := sim.NewRig(nil)
	m, err := machine.NewSim(machine.Options{
		Config:        cfg,
		Logger:        logger,
		Recorder:      recorder,
		Monitor:       bridge,
		FrameTaps:     []display.Tap{bridge.FrameTap()},
		IndicatorTaps: []indicator.Tap{bridge.IndicatorTap()},
	}, rig)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(setupSignalHandler(logger))
	defer cancel()

	model := sim.NewModel(logger, bridge.Updates(), rig.Press)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Run(ctx)
	})
	g.Go(func() error {
		// Quitting the panel shuts the machine down with it
		defer cancel()
		return sim.RunPanel(ctx, model)
	})
	err = g.Wait()
	if n := bridge.Dropped(); n > 0 {
		// the panel has left the alternate screen by now
		log.New(os.Stderr).Warn("panel fell behind the machine", "dropped_updates", n)
	}
	return err
}
