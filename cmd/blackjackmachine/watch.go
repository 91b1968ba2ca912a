package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/panel"
)

// WatchCmd tails a running machine's maintenance console
type WatchCmd struct {
	URL    string `arg:"" default:"ws://localhost:8123/ws" help:"Console websocket URL"`
	Frames bool   `help:"Also print every card frame, not just the message display"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *WatchCmd) Run() error {
	logger := setupLogger(c.Debug)

	ctx := setupSignalHandler(logger)
	client, err := panel.Dial(ctx, c.URL)
	if err != nil {
		return err
	}
	go func() {
		// Closing the connection is the only way to unblock Next
		<-ctx.Done()
		_ = client.Close()
	}()

	for {
		msg, err := client.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("console stream: %w", err)
		}
		c.printEvent(logger, msg)
	}
}

func (c *WatchCmd) printEvent(logger *log.Logger, msg *panel.Message) {
	switch msg.Type {
	case panel.MessageTypeHello:
		var hello panel.HelloData
		if err := msg.Decode(&hello); err != nil {
			logger.Warn("undecodable hello", "error", err)
			return
		}
		logger.Info("connected",
			"phase", hello.Phase,
			"rounds", hello.Stats.Rounds,
			"win_rate", rate(hello.Stats.WinRate),
		)

	case panel.MessageTypePhase:
		var phase panel.PhaseData
		if err := msg.Decode(&phase); err != nil {
			return
		}
		logger.Info("phase", "phase", phase.Phase)

	case panel.MessageTypeFrame:
		var frame panel.FrameData
		if err := msg.Decode(&frame); err != nil {
			return
		}
		if frame.Slot == int(display.MessageSlot) {
			if frame.PlayerTotal != 0 || frame.DealerTotal != 0 {
				logger.Info("message", "text", frame.Text,
					"you", totalLabel(frame.PlayerTotal),
					"dealer", totalLabel(frame.DealerTotal))
			} else {
				logger.Info("message", "text", frame.Text)
			}
			return
		}
		if c.Frames {
			logger.Info("frame", "slot", frame.Slot, "kind", frame.Kind, "card", frame.Card)
		}

	case panel.MessageTypeIndicators:
		var lamps panel.IndicatorsData
		if err := msg.Decode(&lamps); err != nil {
			return
		}
		logger.Debug("lamps", "player", colorLabel(lamps.Player), "dealer", colorLabel(lamps.Dealer))

	case panel.MessageTypeRoundStart:
		var round panel.RoundStartData
		if err := msg.Decode(&round); err != nil {
			return
		}
		logger.Info("round started", "round", round.RoundID)

	case panel.MessageTypeRoundEnd:
		var end panel.RoundEndData
		if err := msg.Decode(&end); err != nil {
			return
		}
		logger.Info("round resolved",
			"round", end.RoundID,
			"outcome", end.Outcome,
			"reason", end.Reason,
			"you", end.PlayerTotal,
			"dealer", end.DealerTotal,
		)

	case panel.MessageTypeStats:
		var st panel.StatsData
		if err := msg.Decode(&st); err != nil {
			return
		}
		logger.Info("tally",
			"rounds", st.Rounds,
			"wins", st.PlayerWins,
			"losses", st.DealerWins,
			"pushes", st.Pushes,
			"win_rate", rate(st.WinRate),
		)

	case panel.MessageTypeError:
		var conErr panel.ErrorData
		if err := msg.Decode(&conErr); err != nil {
			return
		}
		logger.Warn("console error", "code", conErr.Code, "message", conErr.Message)

	default:
		logger.Debug("unhandled console message", "type", msg.Type)
	}
}

// totalLabel hides the dealer total the way the cabinet does while the
// hole card is down
func totalLabel(total int) string {
	if total == display.HiddenTotal {
		return "?"
	}
	return strconv.Itoa(total)
}

func colorLabel(c panel.ColorData) string {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return "off"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func rate(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}
