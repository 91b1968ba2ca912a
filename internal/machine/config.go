package machine

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/hardware"
)

// Config represents the complete machine configuration
type Config struct {
	Bus        *BusSettings      `hcl:"bus,block"`
	Buttons    *ButtonSettings   `hcl:"buttons,block"`
	Indicators []IndicatorConfig `hcl:"indicator,block"`
	Timing     *TimingSettings   `hcl:"timing,block"`
	Console    *ConsoleSettings  `hcl:"console,block"`
}

// BusSettings names the two I2C adapter devices and the addresses wired
// on the card segment. HCL has no hex literals, so the addresses are
// written in decimal (112 is 0x70).
type BusSettings struct {
	CardPath       string `hcl:"card_path,optional"`
	MessagePath    string `hcl:"message_path,optional"`
	MuxAddress     int    `hcl:"mux_address,optional"`
	DisplayAddress int    `hcl:"display_address,optional"`
}

// ButtonSettings assigns the GPIO pins of the three panel buttons
type ButtonSettings struct {
	StartPin int `hcl:"start_pin,optional"`
	HitPin   int `hcl:"hit_pin,optional"`
	StandPin int `hcl:"stand_pin,optional"`
}

// IndicatorConfig assigns the GPIO pins of one tri-color indicator
type IndicatorConfig struct {
	Name     string `hcl:"name,label"`
	RedPin   int    `hcl:"red_pin"`
	GreenPin int    `hcl:"green_pin"`
	BluePin  int    `hcl:"blue_pin"`
}

// TimingSettings carries the cabinet timings in milliseconds
type TimingSettings struct {
	ResultDwellMS int `hcl:"result_dwell_ms,optional"`
	DealerPauseMS int `hcl:"dealer_pause_ms,optional"`
	DebounceMS    int `hcl:"debounce_ms,optional"`
}

// ConsoleSettings controls the maintenance console endpoint
type ConsoleSettings struct {
	Enabled bool   `hcl:"enabled,optional"`
	Address string `hcl:"address,optional"`
}

// DefaultConfig returns the stock cabinet configuration: the usual Pi
// adapters and pinout, the stock timings, console off.
func DefaultConfig() *Config {
	return &Config{
		Bus: &BusSettings{
			CardPath:       "/dev/i2c-1",
			MessagePath:    "/dev/i2c-2",
			MuxAddress:     int(hardware.DefaultMuxAddress),
			DisplayAddress: int(display.DefaultDisplayAddress),
		},
		Buttons: &ButtonSettings{
			StartPin: 17,
			HitPin:   27,
			StandPin: 22,
		},
		Indicators: []IndicatorConfig{
			{Name: "player", RedPin: 5, GreenPin: 6, BluePin: 13},
			{Name: "dealer", RedPin: 19, GreenPin: 26, BluePin: 21},
		},
		Timing: &TimingSettings{
			ResultDwellMS: 5000,
			DealerPauseMS: 1000,
			DebounceMS:    30,
		},
		Console: &ConsoleSettings{
			Enabled: false,
			Address: "localhost:8123",
		},
	}
}

// LoadConfig loads machine configuration from an HCL file. A missing
// file yields the defaults so a stock cabinet boots with no file at all;
// a present file only needs the blocks it wants to override.
func LoadConfig(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Bus == nil {
		config.Bus = defaults.Bus
	} else {
		if config.Bus.CardPath == "" {
			config.Bus.CardPath = defaults.Bus.CardPath
		}
		if config.Bus.MessagePath == "" {
			config.Bus.MessagePath = defaults.Bus.MessagePath
		}
		if config.Bus.MuxAddress == 0 {
			config.Bus.MuxAddress = defaults.Bus.MuxAddress
		}
		if config.Bus.DisplayAddress == 0 {
			config.Bus.DisplayAddress = defaults.Bus.DisplayAddress
		}
	}

	if config.Buttons == nil {
		config.Buttons = defaults.Buttons
	} else {
		if config.Buttons.StartPin == 0 {
			config.Buttons.StartPin = defaults.Buttons.StartPin
		}
		if config.Buttons.HitPin == 0 {
			config.Buttons.HitPin = defaults.Buttons.HitPin
		}
		if config.Buttons.StandPin == 0 {
			config.Buttons.StandPin = defaults.Buttons.StandPin
		}
	}

	for _, ind := range defaults.Indicators {
		if config.GetIndicator(ind.Name) == nil {
			config.Indicators = append(config.Indicators, ind)
		}
	}

	if config.Timing == nil {
		config.Timing = defaults.Timing
	} else {
		if config.Timing.ResultDwellMS == 0 {
			config.Timing.ResultDwellMS = defaults.Timing.ResultDwellMS
		}
		if config.Timing.DealerPauseMS == 0 {
			config.Timing.DealerPauseMS = defaults.Timing.DealerPauseMS
		}
		if config.Timing.DebounceMS == 0 {
			config.Timing.DebounceMS = defaults.Timing.DebounceMS
		}
	}

	if config.Console == nil {
		config.Console = defaults.Console
	} else if config.Console.Address == "" {
		config.Console.Address = defaults.Console.Address
	}

	return &config, nil
}

// Validate validates the machine configuration
func (c *Config) Validate() error {
	if c.Bus == nil || c.Buttons == nil || c.Timing == nil || c.Console == nil {
		return fmt.Errorf("incomplete configuration, start from DefaultConfig or LoadConfig")
	}

	if c.Bus.CardPath == "" {
		return fmt.Errorf("card bus path is required")
	}
	if c.Bus.MessagePath == "" {
		return fmt.Errorf("message bus path is required")
	}
	if c.Bus.MuxAddress < 0x08 || c.Bus.MuxAddress > 0x77 {
		return fmt.Errorf("invalid mux address: 0x%02x", c.Bus.MuxAddress)
	}
	if c.Bus.DisplayAddress < 0x08 || c.Bus.DisplayAddress > 0x77 {
		return fmt.Errorf("invalid display address: 0x%02x", c.Bus.DisplayAddress)
	}
	if c.Bus.MuxAddress == c.Bus.DisplayAddress {
		return fmt.Errorf("mux and displays cannot share address 0x%02x", c.Bus.MuxAddress)
	}

	// Every GPIO line gets exactly one job
	pins := map[int]string{}
	claim := func(pin int, name string) error {
		if pin <= 0 {
			return fmt.Errorf("%s: pin must be positive", name)
		}
		if prev, taken := pins[pin]; taken {
			return fmt.Errorf("%s: pin %d already assigned to %s", name, pin, prev)
		}
		pins[pin] = name
		return nil
	}
	if err := claim(c.Buttons.StartPin, "start button"); err != nil {
		return err
	}
	if err := claim(c.Buttons.HitPin, "hit button"); err != nil {
		return err
	}
	if err := claim(c.Buttons.StandPin, "stand button"); err != nil {
		return err
	}

	validIndicators := map[string]bool{
		"player": true,
		"dealer": true,
	}
	seen := map[string]bool{}
	for _, ind := range c.Indicators {
		if !validIndicators[ind.Name] {
			return fmt.Errorf("indicator %s: unknown indicator, want player or dealer", ind.Name)
		}
		if seen[ind.Name] {
			return fmt.Errorf("indicator %s: defined twice", ind.Name)
		}
		seen[ind.Name] = true
		if err := claim(ind.RedPin, fmt.Sprintf("indicator %s red", ind.Name)); err != nil {
			return err
		}
		if err := claim(ind.GreenPin, fmt.Sprintf("indicator %s green", ind.Name)); err != nil {
			return err
		}
		if err := claim(ind.BluePin, fmt.Sprintf("indicator %s blue", ind.Name)); err != nil {
			return err
		}
	}
	if c.GetIndicator("player") == nil {
		return fmt.Errorf("player indicator is required")
	}
	if c.GetIndicator("dealer") == nil {
		return fmt.Errorf("dealer indicator is required")
	}

	if c.Timing.ResultDwellMS < 0 {
		return fmt.Errorf("result dwell cannot be negative")
	}
	if c.Timing.DealerPauseMS < 0 {
		return fmt.Errorf("dealer pause cannot be negative")
	}
	if c.Timing.DebounceMS < 20 || c.Timing.DebounceMS > 50 {
		return fmt.Errorf("debounce must be between 20ms and 50ms, got %dms", c.Timing.DebounceMS)
	}

	if c.Console.Enabled && c.Console.Address == "" {
		return fmt.Errorf("console address is required when the console is enabled")
	}

	return nil
}

// ResultDwell returns how long a verdict stays on the message display
func (c *Config) ResultDwell() time.Duration {
	return time.Duration(c.Timing.ResultDwellMS) * time.Millisecond
}

// DealerPause returns the beat between the dealer's reveal and draws
func (c *Config) DealerPause() time.Duration {
	return time.Duration(c.Timing.DealerPauseMS) * time.Millisecond
}

// Debounce returns how long a press must read steady before it counts
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Timing.DebounceMS) * time.Millisecond
}

// GetIndicator returns an indicator's pin assignment by name
func (c *Config) GetIndicator(name string) *IndicatorConfig {
	for i := range c.Indicators {
		if c.Indicators[i].Name == name {
			return &c.Indicators[i]
		}
	}
	return nil
}
