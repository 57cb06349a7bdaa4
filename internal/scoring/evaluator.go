// Package scoring classifies five card draw hands and pays them against the
// fixed Jacks or Better paytable.
package scoring

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/videopoker/internal/deck"
)

// HandSize is the number of cards in a scored hand
const HandSize = 5

var (
	// ErrInvalidHand is returned when a hand does not hold exactly five valid cards
	ErrInvalidHand = errors.New("invalid hand")
	// ErrInvalidBet is returned for bets outside MinBet..MaxBet
	ErrInvalidBet = errors.New("invalid bet")
)

// RoyalMode selects which suits may form a royal flush.
type RoyalMode uint8

const (
	// RoyalHeartsOnly only pays the royal flush in hearts. This matches the
	// behaviour of the cabinet this engine reproduces.
	RoyalHeartsOnly RoyalMode = iota
	// RoyalAnySuit pays a royal flush in any suit.
	RoyalAnySuit
)

// String returns the config spelling of the mode
func (m RoyalMode) String() string {
	switch m {
	case RoyalHeartsOnly:
		return "hearts"
	case RoyalAnySuit:
		return "any"
	default:
		return "unknown"
	}
}

// ParseRoyalMode parses "hearts" or "any"
func ParseRoyalMode(s string) (RoyalMode, error) {
	switch s {
	case "hearts", "":
		return RoyalHeartsOnly, nil
	case "any":
		return RoyalAnySuit, nil
	default:
		return 0, fmt.Errorf("unknown royal flush mode %q", s)
	}
}

// Result is the outcome of scoring one hand
type Result struct {
	Score    int
	Hand     string
	Category Category
}

// NoWinResult is the result of an unscored or losing hand
func NoWinResult() Result {
	return Result{Score: 0, Hand: NoWin.String(), Category: NoWin}
}

// String formats the result as "<score> - <hand>"
func (r Result) String() string {
	return fmt.Sprintf("%d - %s", r.Score, r.Hand)
}

// Evaluator scores hands. It holds no per-hand state and is safe for
// concurrent use.
type Evaluator struct {
	royalMode RoyalMode
	logger    *log.Logger
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithRoyalMode selects the royal flush suit rule
func WithRoyalMode(mode RoyalMode) Option {
	return func(e *Evaluator) {
		e.royalMode = mode
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger.WithPrefix("scoring")
	}
}

// NewEvaluator creates an evaluator. The default royal mode is RoyalHeartsOnly.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		royalMode: RoyalHeartsOnly,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RoyalMode returns the configured royal flush rule
func (e *Evaluator) RoyalMode() RoyalMode {
	return e.royalMode
}

// CalculateScore classifies hand and returns the credits it pays at bet.
// Card order does not matter.
func (e *Evaluator) CalculateScore(hand []deck.Card, bet int) (Result, error) {
	if len(hand) != HandSize {
		return Result{}, fmt.Errorf("%w: want %d cards, got %d", ErrInvalidHand, HandSize, len(hand))
	}
	for _, c := range hand {
		if !c.Rank.Valid() || c.Suit < deck.Spades || c.Suit > deck.Hearts {
			return Result{}, fmt.Errorf("%w: bad card %v", ErrInvalidHand, c)
		}
	}
	if bet < MinBet || bet > MaxBet {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidBet, bet)
	}

	category := e.Classify(hand)
	result := Result{
		Score:    category.Payout(bet),
		Hand:     category.String(),
		Category: category,
	}

	e.logger.Debug("Scored hand", "hand", hand, "bet", bet, "result", result.String())
	return result, nil
}

// Classify returns the paytable category of a five card hand without paying it.
// The caller must pass exactly five valid cards.
func (e *Evaluator) Classify(hand []deck.Card) Category {
	p := newProfile(hand)

	// Strongest to weakest; the first match wins
	switch {
	case p.sequential() && p.unique() && p.sameSuit && e.royalCards(hand):
		return RoyalFlush
	case p.sequential() && p.unique() && p.sameSuit:
		return StraightFlush
	case p.hasCount(4):
		return FourOfAKind
	case p.hasCount(3) && p.hasCount(2):
		return FullHouse
	case p.sameSuit:
		return Flush
	case p.sequential() && p.unique():
		return Straight
	case p.hasCount(3):
		return ThreeOfAKind
	case p.pairs() >= 2:
		return TwoPair
	case p.jacksOrBetter():
		return JacksOrBetter
	default:
		return NoWin
	}
}

// royalCards reports whether every card is ten or higher and, in strict mode, a heart
func (e *Evaluator) royalCards(hand []deck.Card) bool {
	for _, c := range hand {
		if c.Rank < deck.Ten {
			return false
		}
		if e.royalMode == RoyalHeartsOnly && c.Suit != deck.Hearts {
			return false
		}
	}
	return true
}

// profile is the rank/suit summary every category check works from
type profile struct {
	counts   [deck.Ace + 1]int // indexed by rank
	distinct []deck.Rank       // ascending
	sameSuit bool
}

func newProfile(hand []deck.Card) profile {
	var p profile
	p.sameSuit = true
	for i, c := range hand {
		if p.counts[c.Rank] == 0 {
			p.distinct = append(p.distinct, c.Rank)
		}
		p.counts[c.Rank]++
		if i > 0 && c.Suit != hand[0].Suit {
			p.sameSuit = false
		}
	}
	slices.Sort(p.distinct)
	return p
}

// unique reports whether all five ranks differ
func (p profile) unique() bool {
	return len(p.distinct) == HandSize
}

// sequential reports whether the five distinct ranks form a run. Hands with
// repeated ranks are never sequential.
func (p profile) sequential() bool {
	if len(p.distinct) != HandSize {
		return false
	}
	for i := 1; i < len(p.distinct); i++ {
		if p.distinct[i] != p.distinct[i-1]+1 {
			return false
		}
	}
	return true
}

func (p profile) hasCount(n int) bool {
	for _, r := range p.distinct {
		if p.counts[r] == n {
			return true
		}
	}
	return false
}

func (p profile) pairs() int {
	n := 0
	for _, r := range p.distinct {
		if p.counts[r] == 2 {
			n++
		}
	}
	return n
}

func (p profile) jacksOrBetter() bool {
	for _, r := range p.distinct {
		if r >= deck.Jack && p.counts[r] >= 2 {
			return true
		}
	}
	return false
}
