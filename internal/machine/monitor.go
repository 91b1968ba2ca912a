package machine

import (
	"fmt"
	"io"

	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/muesli/termenv"
)

// quietRowWidth is how many progress dots fit on one line
const quietRowWidth = 50

// Verdict palette, shared with the sim panel styles
const (
	winColor  = "#04B575"
	loseColor = "#FF6B6B"
	pushColor = "#FFD700"
)

// ConsoleMonitor narrates resolved rounds on a terminal. In quiet mode
// it prints one colored dot per round instead of a line, which keeps
// long soak runs readable.
type ConsoleMonitor struct {
	w     io.Writer
	out   *termenv.Output
	quiet bool
	seen  int
}

// NewConsoleMonitor creates a monitor writing to w. Colors degrade to
// plain text when w is not a terminal.
func NewConsoleMonitor(w io.Writer, quiet bool) *ConsoleMonitor {
	return &ConsoleMonitor{w: w, out: termenv.NewOutput(w), quiet: quiet}
}

// OnPhaseChange implements engine.RoundMonitor
func (m *ConsoleMonitor) OnPhaseChange(engine.Phase) {}

// OnRoundStart implements engine.RoundMonitor
func (m *ConsoleMonitor) OnRoundStart(string) {}

// OnRoundComplete prints one round's verdict
func (m *ConsoleMonitor) OnRoundComplete(res engine.Result) {
	m.seen++
	color := m.out.Color(verdictColor(res.Outcome))

	if m.quiet {
		fmt.Fprint(m.w, m.out.String(".").Foreground(color))
		if m.seen%quietRowWidth == 0 {
			fmt.Fprintln(m.w)
		}
		return
	}

	verdict := m.out.String(fmt.Sprintf("%-11s", verdictWord(res.Outcome))).Foreground(color).Bold()
	detail := m.out.String(fmt.Sprintf("you %2d (%d cards)  dealer %2d (%d cards)",
		res.PlayerTotal, res.PlayerCards, res.DealerTotal, res.DealerCards)).Faint()

	line := fmt.Sprintf("round %-4d %s %s  %s", m.seen, verdict, detail, res.Reason)
	if res.PlayerBlackjack {
		line += "  " + m.out.String("BLACKJACK").Foreground(m.out.Color(pushColor)).Bold().String()
	}
	fmt.Fprintln(m.w, line)
}

func verdictWord(o engine.Outcome) string {
	switch o {
	case engine.PlayerWins:
		return "YOU WIN"
	case engine.DealerWins:
		return "DEALER WINS"
	default:
		return "PUSH"
	}
}

func verdictColor(o engine.Outcome) string {
	switch o {
	case engine.PlayerWins:
		return winColor
	case engine.DealerWins:
		return loseColor
	default:
		return pushColor
	}
}
