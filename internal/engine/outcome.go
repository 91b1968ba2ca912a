package engine

import "github.com/lox/blackjackmachine/internal/blackjack"

// Outcome is the verdict of a completed round.
type Outcome int

const (
	PlayerWins Outcome = iota
	DealerWins
	Push
)

// String returns the outcome for logging
func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player-wins"
	case DealerWins:
		return "dealer-wins"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Reason records which rule decided the outcome.
type Reason int

const (
	ReasonPlayerBust Reason = iota
	ReasonDealerBust
	ReasonPlayerBlackjack
	ReasonDealerBlackjack
	ReasonHigherTotal
	ReasonEqualTotal
)

// String returns the reason for logging
func (r Reason) String() string {
	switch r {
	case ReasonPlayerBust:
		return "player-bust"
	case ReasonDealerBust:
		return "dealer-bust"
	case ReasonPlayerBlackjack:
		return "player-blackjack"
	case ReasonDealerBlackjack:
		return "dealer-blackjack"
	case ReasonHigherTotal:
		return "higher-total"
	case ReasonEqualTotal:
		return "equal-total"
	default:
		return "unknown"
	}
}

// Resolve applies the house rules to two finished hands. The checks are
// ordered: a busted player loses even if the dealer would also bust, a
// lone blackjack beats any plain 21, and two blackjacks tie like any
// other equal total.
func Resolve(player, dealer *blackjack.Hand) (Outcome, Reason) {
	switch {
	case player.Busted():
		return DealerWins, ReasonPlayerBust
	case dealer.Busted():
		return PlayerWins, ReasonDealerBust
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return PlayerWins, ReasonPlayerBlackjack
	case dealer.IsBlackjack() && !player.IsBlackjack():
		return DealerWins, ReasonDealerBlackjack
	}

	pv, dv := player.Value(), dealer.Value()
	switch {
	case pv > dv:
		return PlayerWins, ReasonHigherTotal
	case dv > pv:
		return DealerWins, ReasonHigherTotal
	default:
		return Push, ReasonEqualTotal
	}
}
