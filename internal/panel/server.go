package panel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/engine"
	"github.com/lox/blackjackmachine/internal/hardware"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/stats"
)

// Server is the maintenance console endpoint. It keeps the latest table
// state so new clients get a full snapshot, broadcasts every change, and
// feeds injected presses into the machine's input queue.
//
// It implements engine.RoundMonitor; wire it after the stats recorder so
// stats broadcasts include the round that just resolved.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	queue       *input.Queue
	recorder    *stats.Recorder

	stateMu    sync.RWMutex
	phase      engine.Phase
	frames     [display.NumSlots]FrameData
	indicators IndicatorsData
}

// NewServer creates a console server. recorder may be nil when stats
// are not collected.
func NewServer(addr string, queue *input.Queue, recorder *stats.Recorder, logger *log.Logger) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The console binds to the maintenance network, any
				// origin that can reach it is trusted
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("console"),
		queue:       queue,
		recorder:    recorder,
	}
	for i := range s.frames {
		s.frames[i] = FrameData{Slot: i, Kind: display.Blank.String()}
	}
	return s
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("console listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts console clients on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("console listening", "addr", ln.Addr())
	if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// run handles connection lifecycle
func (s *Server) run(ctx context.Context) {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("console client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("console client disconnected", "total", total)

		case <-ctx.Done():
			s.mu.Lock()
			for conn := range s.connections {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			s.mu.Unlock()
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	// Every new client starts from a full snapshot.
	if msg, err := s.hello(); err == nil {
		_ = client.SendMessage(msg)
	}

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// hello builds the full-state snapshot sent to new clients.
func (s *Server) hello() (*Message, error) {
	s.stateMu.RLock()
	data := HelloData{
		Phase:      s.phase.String(),
		Frames:     append([]FrameData(nil), s.frames[:]...),
		Indicators: s.indicators,
	}
	s.stateMu.RUnlock()
	if s.recorder != nil {
		data.Stats = statsData(s.recorder.Snapshot())
	}
	return NewMessage(MessageTypeHello, data)
}

// broadcast sends a message to every connected client
func (s *Server) broadcast(msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Debug("dropping console client", "error", err)
		}
	}
}

func (s *Server) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("failed to encode console message", "type", messageType, "error", err)
		return
	}
	s.broadcast(msg)
}

// OnPhaseChange implements engine.RoundMonitor.
func (s *Server) OnPhaseChange(phase engine.Phase) {
	s.stateMu.Lock()
	s.phase = phase
	s.stateMu.Unlock()
	s.send(MessageTypePhase, PhaseData{Phase: phase.String()})
}

// OnRoundStart implements engine.RoundMonitor.
func (s *Server) OnRoundStart(roundID string) {
	s.send(MessageTypeRoundStart, RoundStartData{RoundID: roundID})
}

// OnRoundComplete implements engine.RoundMonitor.
func (s *Server) OnRoundComplete(result engine.Result) {
	s.send(MessageTypeRoundEnd, resultData(result))
	if s.recorder != nil {
		s.send(MessageTypeStats, statsData(s.recorder.Snapshot()))
	}
}

// FrameTap returns a display tap that mirrors rendered frames to the
// console. Sends never block the render path.
func (s *Server) FrameTap() display.Tap {
	return func(slot display.Slot, content display.Content) {
		frame := frameFromContent(slot, content)
		s.stateMu.Lock()
		s.frames[slot] = frame
		s.stateMu.Unlock()
		s.send(MessageTypeFrame, frame)
	}
}

// IndicatorTap returns an indicator tap that mirrors lamp colors to the
// console.
func (s *Server) IndicatorTap() indicator.Tap {
	return func(player, dealer hardware.Color) {
		data := IndicatorsData{Player: colorData(player), Dealer: colorData(dealer)}
		s.stateMu.Lock()
		s.indicators = data
		s.stateMu.Unlock()
		s.send(MessageTypeIndicators, data)
	}
}
