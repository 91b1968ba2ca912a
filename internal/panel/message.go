// Package panel is the maintenance console: a WebSocket endpoint that
// mirrors the machine's displays, indicators and round events to
// connected clients, and lets them inject button presses.
package panel

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/stats"
)

// MessageType identifies a console message with type safety
type MessageType string

const (
	// Client → Server
	MessageTypePress  MessageType = "press"
	MessageTypeStatus MessageType = "status"

	// Server → Client
	MessageTypeHello      MessageType = "hello"
	MessageTypePhase      MessageType = "phase"
	MessageTypeFrame      MessageType = "frame"
	MessageTypeIndicators MessageType = "indicators"
	MessageTypeRoundStart MessageType = "round_start"
	MessageTypeRoundEnd   MessageType = "round_end"
	MessageTypeStats      MessageType = "stats"
	MessageTypeError      MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message is the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Decode unmarshals the message payload into v.
func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// Client → Server Messages

type PressData struct {
	Button string `json:"button"` // start, hit or stand
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PhaseData struct {
	Phase string `json:"phase"`
}

type FrameData struct {
	Slot        int    `json:"slot"`
	Kind        string `json:"kind"`
	Card        string `json:"card,omitempty"`
	Text        string `json:"text,omitempty"`
	PlayerTotal int    `json:"playerTotal,omitempty"`
	DealerTotal int    `json:"dealerTotal,omitempty"`
}

type ColorData struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

type IndicatorsData struct {
	Player ColorData `json:"player"`
	Dealer ColorData `json:"dealer"`
}

type RoundStartData struct {
	RoundID string `json:"roundId"`
}

type RoundEndData struct {
	RoundID         string `json:"roundId"`
	Outcome         string `json:"outcome"`
	Reason          string `json:"reason"`
	PlayerTotal     int    `json:"playerTotal"`
	DealerTotal     int    `json:"dealerTotal"`
	PlayerCards     int    `json:"playerCards"`
	DealerCards     int    `json:"dealerCards"`
	PlayerBlackjack bool   `json:"playerBlackjack,omitempty"`
	DealerBlackjack bool   `json:"dealerBlackjack,omitempty"`
}

type StatsData struct {
	Rounds      int     `json:"rounds"`
	PlayerWins  int     `json:"playerWins"`
	DealerWins  int     `json:"dealerWins"`
	Pushes      int     `json:"pushes"`
	Blackjacks  int     `json:"blackjacks"`
	PlayerBusts int     `json:"playerBusts"`
	WinRate     float64 `json:"winRate"`
}

type HelloData struct {
	Phase      string         `json:"phase"`
	Frames     []FrameData    `json:"frames"`
	Indicators IndicatorsData `json:"indicators"`
	Stats      StatsData      `json:"stats"`
}

// Helper functions to convert between internal types and message types

func frameFromContent(slot display.Slot, content display.Content) FrameData {
	frame := FrameData{
		Slot: int(slot),
		Kind: content.Kind.String(),
	}
	switch content.Kind {
	case display.Face:
		frame.Card = content.Card.String()
	case display.Message:
		frame.Text = content.Text
		frame.PlayerTotal = content.PlayerTotal
		frame.DealerTotal = content.DealerTotal
	}
	return frame
}

func colorData(c hardware.Color) ColorData {
	return ColorData{R: c.R, G: c.G, B: c.B}
}

func resultData(r engine.Result) RoundEndData {
	return RoundEndData{
		RoundID:         r.RoundID,
		Outcome:         r.Outcome.String(),
		Reason:          r.Reason.String(),
		PlayerTotal:     r.PlayerTotal,
		DealerTotal:     r.DealerTotal,
		PlayerCards:     r.PlayerCards,
		DealerCards:     r.DealerCards,
		PlayerBlackjack: r.PlayerBlackjack,
		DealerBlackjack: r.DealerBlackjack,
	}
}

func statsData(s stats.Statistics) StatsData {
	return StatsData{
		Rounds:      s.Rounds,
		PlayerWins:  s.PlayerWins,
		DealerWins:  s.DealerWins,
		Pushes:      s.Pushes,
		Blackjacks:  s.PlayerBlackjacks,
		PlayerBusts: s.PlayerBusts,
		WinRate:     s.WinRate(),
	}
}

// pressKind maps a console button name onto an input event kind.
func pressKind(button string) (input.Kind, bool) {
	switch button {
	case "start":
		return input.Start, true
	case "hit":
		return input.Hit, true
	case "stand":
		return input.Stand, true
	default:
		return 0, false
	}
}
