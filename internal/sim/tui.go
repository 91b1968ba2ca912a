package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/stats"
)

// maxLogLines bounds the log pane history
const maxLogLines = 200

type keyMap struct {
	Start key.Binding
	Hit   key.Binding
	Stand key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Hit:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stand")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model for the interactive front panel: nine
// display tiles, the two indicator lamps, running tallies, and a log
// tail. Key presses go to the press callback, which pushes the simulated
// hardware buttons so the whole input pipeline runs.
type Model struct {
	logger  *log.Logger
	updates <-chan tea.Msg
	press   func(input.Kind)
	keys    keyMap

	frames     [display.NumSlots]display.Content
	playerLamp hardware.Color
	dealerLamp hardware.Color
	phase      engine.Phase
	tallies    stats.Statistics

	logLines []string
	logView  viewport.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates a front panel fed by the bridge's update stream
func NewModel(logger *log.Logger, updates <-chan tea.Msg, press func(input.Kind)) *Model {
	m := &Model{
		logger:  logger.WithPrefix("panel"),
		updates: updates,
		press:   press,
		keys:    defaultKeyMap(),
		logView: viewport.New(10, 5),
	}
	for slot := range m.frames {
		m.frames[slot] = display.BlankContent()
	}
	return m
}

// Init starts the update pump
func (m *Model) Init() tea.Cmd {
	return m.nextUpdate()
}

// nextUpdate returns a command that delivers the next machine event
func (m *Model) nextUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

// Update handles panel events and key presses
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("panel resized", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case key.Matches(msg, m.keys.Start):
			m.press(input.Start)
		case key.Matches(msg, m.keys.Hit):
			m.press(input.Hit)
		case key.Matches(msg, m.keys.Stand):
			m.press(input.Stand)
		}

	case FrameMsg:
		if msg.Slot >= 0 && msg.Slot < display.NumSlots {
			m.frames[msg.Slot] = msg.Content
		}
		return m, m.nextUpdate()

	case LampsMsg:
		m.playerLamp = msg.Player
		m.dealerLamp = msg.Dealer
		return m, m.nextUpdate()

	case PhaseMsg:
		m.phase = engine.Phase(msg)
		return m, m.nextUpdate()

	case StatsMsg:
		m.tallies = stats.Statistics(msg)
		return m, m.nextUpdate()

	case LogMsg:
		m.appendLog(string(msg))
		return m, m.nextUpdate()
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.logView.SetContent(strings.Join(m.logLines, "\n"))
	if m.logView.Height > 0 && m.logView.Width > 0 {
		m.logView.GotoBottom()
	}
}

// View renders the front panel
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render(" BLACKJACK MACHINE "),
		"  ",
		PhaseStyle.Render(m.phase.String()),
	)

	dealerRow := m.renderRow("DEALER", display.DealerSlot(0), m.dealerLamp)
	playerRow := m.renderRow("PLAYER", display.PlayerSlot(0), m.playerLamp)
	message := MessageStyle.Render(m.renderMessage())
	tallies := TallyStyle.Render(fmt.Sprintf("rounds %d • wins %d • losses %d • pushes %d",
		m.tallies.Rounds, m.tallies.PlayerWins, m.tallies.DealerWins, m.tallies.Pushes))
	help := HelpStyle.Render(m.renderHelp())

	top := lipgloss.JoinVertical(lipgloss.Left,
		header, "", dealerRow, playerRow, message, tallies)

	logWidth := m.width - 4
	logHeight := m.height - lipgloss.Height(top) - 4
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logView.Width = logWidth
	m.logView.Height = logHeight
	logPane := LogStyle.Width(logWidth).Height(logHeight).Render(m.logView.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, logPane, help)
}

func (m *Model) renderRow(label string, first display.Slot, lamp hardware.Color) string {
	tiles := make([]string, 0, blackjack.MaxHandCards)
	for i := 0; i < blackjack.MaxHandCards; i++ {
		tiles = append(tiles, m.renderTile(m.frames[first+display.Slot(i)]))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		RowLabelStyle.Render(label), row, " ", lampGlyph(lamp))
}

func (m *Model) renderTile(content display.Content) string {
	switch content.Kind {
	case display.Face:
		style := BlackCardStyle
		if content.Card.IsRed() {
			style = RedCardStyle
		}
		return TileStyle.Render(style.Render(content.Card.String()))
	case display.Back:
		return TileStyle.Render(CardBackStyle.Render("▒▒"))
	default:
		return TileStyle.Render(" ")
	}
}

func (m *Model) renderMessage() string {
	c := m.frames[display.MessageSlot]
	if c.Kind != display.Message {
		return " "
	}
	parts := []string{c.Text}
	if c.PlayerTotal != display.HiddenTotal {
		parts = append(parts, fmt.Sprintf("YOU %d", c.PlayerTotal))
	}
	if c.DealerTotal != display.HiddenTotal {
		parts = append(parts, fmt.Sprintf("DEALER %d", c.DealerTotal))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderHelp() string {
	bindings := []key.Binding{m.keys.Start, m.keys.Hit, m.keys.Stand, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return strings.Join(parts, " • ")
}

func lampGlyph(c hardware.Color) string {
	if c == (hardware.Color{}) {
		return LampOffStyle.Render("○")
	}
	hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render("●")
}

// RunPanel runs the front panel until the user quits or ctx is canceled.
// Cancellation is a normal shutdown and returns nil.
func RunPanel(ctx context.Context, model *Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("front panel: %w", err)
	}
	return nil
}
