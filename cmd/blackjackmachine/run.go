package main

import (
	"fmt"

	"github.com/lox/blackjackmachine/internal/machine"
)

// RunCmd runs the machine on the cabinet's real hardware
type RunCmd struct {
	Config  string `kong:"default='blackjackmachine.hcl',env='BJM_CONFIG',help='Path to the machine HCL config'"`
	Debug   bool   `kong:"env='BJM_DEBUG',help='Enable debug logging'"`
	Console string `kong:"env='BJM_CONSOLE',help='Serve the maintenance console on this address, overriding the config'"`
}

func (c *RunCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := machine.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Console != "" {
		cfg.Console.Enabled = true
		cfg.Console.Address = c.Console
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", c.Config, err)
	}

	m, err := machine.New(machine.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	ctx := setupSignalHandler(logger)
	if err := m.Run(ctx); err != nil {
		return err
	}

	st := m.Recorder().Snapshot()
	logger.Info("cabinet stopped",
		"rounds", st.Rounds,
		"player_wins", st.PlayerWins,
		"dealer_wins", st.DealerWins,
		"pushes", st.Pushes,
	)
	return nil
}
