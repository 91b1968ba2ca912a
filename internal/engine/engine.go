// Package engine drives a single-player blackjack machine through its
// round lifecycle. One goroutine owns the whole table: it pops button
// presses from the input queue, mutates the round, and pushes every
// card and message out to the displays and indicators as it goes.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackmachine/internal/blackjack"
	"github.com/lox/blackjackmachine/internal/display"
	"github.com/lox/blackjackmachine/internal/indicator"
	"github.com/lox/blackjackmachine/internal/input"
	"github.com/lox/blackjackmachine/internal/randutil"
)

// Message screen wording per phase.
const (
	msgWelcome    = "PRESS START"
	msgDealing    = "DEALING CARDS"
	msgPlayerTurn = "HIT/STAND"
	msgBlackjack  = "BLACKJACK!"
	msgDealerTurn = "DEALER'S TURN"
	msgPlayerBust = "BUST! YOU LOSE."
	msgPlayerWins = "YOU WIN!"
	msgDealerWins = "DEALER WINS!"
	msgPush       = "IT'S A TIE."
)

// Config wires an Engine to its table surfaces.
type Config struct {
	Router     *display.Router
	Indicators *indicator.Controller
	Queue      *input.Queue

	// DeckSource produces the shuffled deck for each round. Leave nil
	// to shuffle with a fresh seed from the system entropy source.
	DeckSource func() *blackjack.Deck

	// ResultDwell is how long the verdict stays up before the next
	// round can start. Zero means no dwell.
	ResultDwell time.Duration

	// DealerPause is the beat between the dealer's reveal and each of
	// its draws. Zero means the dealer plays out instantly.
	DealerPause time.Duration

	Monitor RoundMonitor
	Clock   quartz.Clock
	Logger  *log.Logger
}

// Engine is the round state machine. Run is the only goroutine that
// touches the phase, the round, or the output devices.
type Engine struct {
	router     *display.Router
	indicators *indicator.Controller
	queue      *input.Queue
	newDeck    func() *blackjack.Deck
	dwell      time.Duration
	dealerBeat time.Duration
	monitor    RoundMonitor
	clock      quartz.Clock
	logger     *log.Logger

	phase Phase
	round *Round
}

// New creates an engine. Router, Indicators and Queue are required.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = quartz.NewReal()
	}
	monitor := cfg.Monitor
	if monitor == nil {
		monitor = NullRoundMonitor{}
	}
	newDeck := cfg.DeckSource
	if newDeck == nil {
		newDeck = func() *blackjack.Deck {
			return blackjack.NewDeck(randutil.NewEntropy())
		}
	}
	return &Engine{
		router:     cfg.Router,
		indicators: cfg.Indicators,
		queue:      cfg.Queue,
		newDeck:    newDeck,
		dwell:      cfg.ResultDwell,
		dealerBeat: cfg.DealerPause,
		monitor:    monitor,
		clock:      clk,
		logger:     logger.WithPrefix("engine"),
	}
}

// Run drives the machine until ctx is canceled. Cancellation is a
// normal shutdown and returns nil.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("machine ready")
	for {
		var err error
		switch e.phase {
		case Idle:
			err = e.runIdle(ctx)
		case Dealing:
			err = e.runDealing()
		case PlayerTurn:
			err = e.runPlayerTurn(ctx)
		case DealerTurn:
			err = e.runDealerTurn(ctx)
		case Resolution:
			err = e.runResolution(ctx)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				e.logger.Info("machine stopped")
				return nil
			}
			return err
		}
	}
}

// transition is the single place the phase changes. Entering an
// accepting phase from a non-accepting one drops any presses queued
// while the machine was busy.
func (e *Engine) transition(to Phase) {
	from := e.phase
	e.phase = to
	e.logger.Debug("phase change", "from", from, "to", to)
	if to.AcceptsInput() && !from.AcceptsInput() {
		if n := e.queue.Drain(); n > 0 {
			e.logger.Debug("dropped stale presses", "count", n)
		}
	}
	e.monitor.OnPhaseChange(to)
}

func (e *Engine) runIdle(ctx context.Context) error {
	e.indicators.Apply(indicator.Idle)
	e.clearTable()
	e.showMessage(msgWelcome, display.HiddenTotal, display.HiddenTotal)
	for {
		ev, err := e.queue.Pop(ctx)
		if err != nil {
			return err
		}
		if ev.Kind != input.Start {
			e.logger.Debug("press has no effect", "button", ev.Kind, "phase", e.phase)
			continue
		}
		e.logger.Info("start pressed")
		e.transition(Dealing)
		return nil
	}
}

func (e *Engine) runDealing() error {
	e.round = NewRound(e.newDeck())
	e.monitor.OnRoundStart(e.round.ID)
	e.logger.Info("dealing", "round", e.round.ID)
	e.showMessage(msgDealing, display.HiddenTotal, display.HiddenTotal)

	// Player, hole, player, up card. The hole card renders face down.
	for i := 0; i < 2; i++ {
		if !e.dealTo(e.round.Player, display.PlayerSlot(i), false) ||
			!e.dealTo(e.round.Dealer, display.DealerSlot(i), i == 0) {
			e.abortRound("deck exhausted during deal")
			return nil
		}
	}

	e.logger.Info("cards dealt",
		"player", e.round.Player,
		"dealer", e.round.Dealer,
		"showing", e.round.VisibleDealerTotal())

	if e.round.Player.IsBlackjack() {
		e.logger.Info("player blackjack")
		e.showMessage(msgBlackjack, e.round.Player.Value(), e.round.VisibleDealerTotal())
		e.transition(DealerTurn)
		return nil
	}
	e.transition(PlayerTurn)
	return nil
}

// dealTo draws the next card into hand and renders it at slot, face
// down when hole is set. It reports false once the deck runs dry.
func (e *Engine) dealTo(hand *blackjack.Hand, slot display.Slot, hole bool) bool {
	card, ok := e.round.Deck.Draw()
	if !ok {
		return false
	}
	hand.Add(card)
	if hole {
		e.show(slot, display.BackContent())
	} else {
		e.show(slot, display.FaceContent(card))
	}
	return true
}

func (e *Engine) runPlayerTurn(ctx context.Context) error {
	e.indicators.Apply(indicator.PlayerTurn)
	e.showMessage(msgPlayerTurn, e.round.Player.Value(), e.round.VisibleDealerTotal())
	for e.phase == PlayerTurn {
		ev, err := e.queue.Pop(ctx)
		if err != nil {
			return err
		}
		switch ev.Kind {
		case input.Hit:
			e.playerHit()
		case input.Stand:
			e.logger.Info("player stands", "hand", e.round.Player)
			e.transition(DealerTurn)
		default:
			e.logger.Debug("press has no effect", "button", ev.Kind, "phase", e.phase)
		}
	}
	return nil
}

func (e *Engine) playerHit() {
	card, ok := e.round.Deck.Draw()
	if !ok {
		e.abortRound("deck exhausted on hit")
		return
	}
	e.round.Player.Add(card)
	e.show(display.PlayerSlot(e.round.Player.Len()-1), display.FaceContent(card))
	e.logger.Info("player hits", "card", card, "hand", e.round.Player)

	switch {
	case e.round.Player.Busted():
		e.transition(Resolution)
	case e.round.Player.Value() == 21, e.round.Player.Full():
		// Nothing left to decide, stand automatically.
		e.logger.Info("player stands", "hand", e.round.Player, "auto", true)
		e.transition(DealerTurn)
	default:
		e.showMessage(msgPlayerTurn, e.round.Player.Value(), e.round.VisibleDealerTotal())
	}
}

func (e *Engine) runDealerTurn(ctx context.Context) error {
	e.indicators.Apply(indicator.DealerTurn)
	e.showMessage(msgDealerTurn, e.round.Player.Value(), e.round.VisibleDealerTotal())
	if err := e.pause(ctx, e.dealerBeat); err != nil {
		return err
	}
	e.revealHole()
	e.showMessage(msgDealerTurn, e.round.Player.Value(), e.round.Dealer.Value())

	// Against an opening blackjack the dealer reveals but never draws.
	if e.round.Player.IsBlackjack() {
		e.transition(Resolution)
		return nil
	}

	// Draw to 17, standing on soft 17, until the hand fills up.
	for e.round.Dealer.Value() < 17 && !e.round.Dealer.Full() {
		if err := e.pause(ctx, e.dealerBeat); err != nil {
			return err
		}
		card, ok := e.round.Deck.Draw()
		if !ok {
			e.abortRound("deck exhausted on dealer draw")
			return nil
		}
		e.round.Dealer.Add(card)
		e.show(display.DealerSlot(e.round.Dealer.Len()-1), display.FaceContent(card))
		e.logger.Info("dealer draws", "card", card, "hand", e.round.Dealer)
		e.showMessage(msgDealerTurn, e.round.Player.Value(), e.round.Dealer.Value())
	}
	e.logger.Info("dealer stands", "hand", e.round.Dealer)
	e.transition(Resolution)
	return nil
}

func (e *Engine) revealHole() {
	if !e.round.HoleHidden {
		return
	}
	e.round.HoleHidden = false
	hole := e.round.Dealer.Cards()[0]
	e.show(display.DealerSlot(0), display.FaceContent(hole))
	e.logger.Info("hole card revealed", "card", hole, "total", e.round.Dealer.Value())
}

func (e *Engine) runResolution(ctx context.Context) error {
	outcome, reason := Resolve(e.round.Player, e.round.Dealer)
	e.indicators.Apply(outcomeState(outcome))

	if reason == ReasonPlayerBust {
		// The dealer never played, so the hole card stays a secret and
		// no totals are shown.
		e.showMessage(msgPlayerBust, display.HiddenTotal, display.HiddenTotal)
	} else {
		e.showMessage(resolutionText(outcome, reason), e.round.Player.Value(), e.round.Dealer.Value())
	}

	e.logger.Info("round resolved",
		"round", e.round.ID,
		"outcome", outcome,
		"reason", reason,
		"player", e.round.Player,
		"dealer", e.round.Dealer)
	e.monitor.OnRoundComplete(Result{
		RoundID:         e.round.ID,
		Outcome:         outcome,
		Reason:          reason,
		PlayerTotal:     e.round.Player.Value(),
		DealerTotal:     e.round.Dealer.Value(),
		PlayerCards:     e.round.Player.Len(),
		DealerCards:     e.round.Dealer.Len(),
		PlayerBlackjack: e.round.Player.IsBlackjack(),
		DealerBlackjack: e.round.Dealer.IsBlackjack(),
	})

	if err := e.pause(ctx, e.dwell); err != nil {
		return err
	}
	e.round = nil
	e.transition(Idle)
	return nil
}

func outcomeState(o Outcome) indicator.State {
	switch o {
	case PlayerWins:
		return indicator.Win
	case DealerWins:
		return indicator.Lose
	default:
		return indicator.Push
	}
}

func resolutionText(outcome Outcome, reason Reason) string {
	switch {
	case reason == ReasonPlayerBust:
		return msgPlayerBust
	case reason == ReasonPlayerBlackjack:
		return msgBlackjack
	case outcome == PlayerWins:
		return msgPlayerWins
	case outcome == DealerWins:
		return msgDealerWins
	default:
		return msgPush
	}
}

// abortRound bails out of a round that cannot continue. The table
// resets on re-entry to the idle phase.
func (e *Engine) abortRound(why string) {
	e.logger.Error("round aborted", "round", e.round.ID, "reason", why)
	e.round = nil
	e.transition(Idle)
}

func (e *Engine) clearTable() {
	for i := 0; i < blackjack.MaxHandCards; i++ {
		e.show(display.PlayerSlot(i), display.BlankContent())
		e.show(display.DealerSlot(i), display.BlankContent())
	}
}

// show renders one slot, logging and absorbing display faults so a
// dark panel never stalls the game.
func (e *Engine) show(slot display.Slot, content display.Content) {
	if err := e.router.Render(slot, content); err != nil {
		e.logger.Error("display fault, continuing", "error", err)
	}
}

func (e *Engine) showMessage(text string, playerTotal, dealerTotal int) {
	e.show(display.MessageSlot, display.MessageContent(text, playerTotal, dealerTotal))
}

// pause waits d on the engine clock, cut short only by ctx.
func (e *Engine) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := e.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
