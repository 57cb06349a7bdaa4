// Package round runs a single-player five card draw session: it owns the
// state machine, the deck, the hand and the credit balance, and reports every
// change to a Display.
package round

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/randutil"
	"github.com/lox/videopoker/internal/scoring"
)

const (
	// StartingCredits is the balance granted when a session starts
	StartingCredits = 500
	// HandSize is the number of card slots
	HandSize = scoring.HandSize
)

// ErrSlotOutOfRange is returned for hold toggles outside 0..HandSize-1
var ErrSlotOutOfRange = errors.New("card slot out of range")

// Controller drives one session. All methods are safe for concurrent use;
// a single mutex guards the whole session.
type Controller struct {
	mu sync.Mutex

	state     State
	deck      *deck.Deck
	evaluator *scoring.Evaluator
	display   Display
	logger    *log.Logger
	clock     quartz.Clock

	credits int
	bet     int
	hand    []deck.Card
	holds   [HandSize]bool
	last    scoring.Result

	dealt   [HandSize]deck.Card
	dealtAt time.Time
	rounds  int
	history History
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller's logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.WithPrefix("round")
	}
}

// WithClock sets the clock used to timestamp history records
func WithClock(clock quartz.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// New creates a controller in the Init state. A nil deck gets a
// wall-clock seeded deck, a nil evaluator gets the default evaluator, and a
// nil display is replaced by a no-op display after logging a warning.
func New(d *deck.Deck, evaluator *scoring.Evaluator, display Display, opts ...Option) *Controller {
	c := &Controller{
		state:     Init,
		deck:      d,
		evaluator: evaluator,
		display:   display,
		logger:    log.New(io.Discard),
		clock:     quartz.NewReal(),
		bet:       scoring.MinBet,
		last:      scoring.NoWinResult(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.deck == nil {
		c.deck = deck.New(randutil.New(randutil.Seed(0)))
	}
	if c.evaluator == nil {
		c.evaluator = scoring.NewEvaluator()
	}
	if c.display == nil {
		c.logger.Warn("No display connected, display updates will be dropped")
		c.display = NopDisplay{}
	}

	return c
}

// Tick runs one state machine step. Idle states ignore ticks.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.step(Tick())
	return err
}

// Advance ticks until the controller reaches a state that waits for input.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.state.Idle() {
		if _, err := c.step(Tick()); err != nil {
			return err
		}
	}
	return nil
}

// OnStartPressed starts or restarts the session. It reports whether the
// current state accepted the event.
func (c *Controller) OnStartPressed() bool {
	return c.press(StartPressed())
}

// OnDrawPressed deals a new hand from SetBets or draws replacements from
// WaitingToDraw.
func (c *Controller) OnDrawPressed() bool {
	return c.press(DrawPressed())
}

// OnBetAdjustPressed cycles the bet while bets may be changed.
func (c *Controller) OnBetAdjustPressed() bool {
	return c.press(BetPressed())
}

// OnHoldToggled flips the hold flag of a card slot while waiting to draw.
// An out of range slot is a caller bug and returns ErrSlotOutOfRange
// regardless of state.
func (c *Controller) OnHoldToggled(slot int) (bool, error) {
	if slot < 0 || slot >= HandSize {
		return false, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	return c.press(HoldToggled(slot)), nil
}

func (c *Controller) press(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.step(ev)
	if err != nil {
		// Button effects never touch the deck, so this is unreachable
		c.logger.Error("Event failed", "event", ev.Kind, "error", err)
	}
	return ok
}

// step applies one transition. The state only changes once every effect has
// been applied.
func (c *Controller) step(ev Event) (bool, error) {
	next, effects, ok := Transition(c.state, ev)
	if !ok {
		if ev.Kind != EventTick {
			c.logger.Debug("Ignoring event", "event", ev.Kind, "state", c.state)
		}
		return false, nil
	}

	for _, eff := range effects {
		if err := c.apply(eff); err != nil {
			return false, fmt.Errorf("%s in state %s: %w", eff.Kind, c.state, err)
		}
	}

	c.logger.Debug("State transition", "from", c.state, "to", next, "event", ev.Kind)
	c.state = next
	return true, nil
}

func (c *Controller) apply(eff Effect) error {
	switch eff.Kind {
	case EffectResetDisplay:
		c.resetTable()
	case EffectBeginSession:
		c.beginSession()
	case EffectCycleBet:
		c.cycleBet()
	case EffectDealHand:
		return c.dealHand()
	case EffectToggleHold:
		c.toggleHold(eff.Slot)
	case EffectDrawReplacements:
		return c.drawReplacements()
	case EffectScoreHand:
		return c.scoreHand()
	default:
		return fmt.Errorf("unknown effect %d", eff.Kind)
	}
	return nil
}

func (c *Controller) resetTable() {
	c.bet = scoring.MinBet
	c.hand = nil
	c.holds = [HandSize]bool{}
	c.last = scoring.NoWinResult()

	c.display.Reset()
	for i := range HandSize {
		c.display.SetCard(i, nil)
		c.display.SetHold(i, false)
	}
	c.display.SetButtonEnabled(StartButton, true)
	c.display.SetButtonEnabled(DrawButton, false)
	c.display.SetButtonEnabled(BetButton, false)
	c.display.SetButtonLabel(DrawButton, LabelDeal)
	c.display.SetButtonLabel(BetButton, BetLabel(c.bet))
	c.display.ResetWinnings()
}

func (c *Controller) beginSession() {
	c.credits = StartingCredits
	c.rounds = 0
	c.history.Clear()

	c.display.SetCredits(c.credits)
	c.display.ResetWinnings()
	c.display.SetButtonEnabled(StartButton, true)
	c.display.SetButtonEnabled(DrawButton, true)
	c.display.SetButtonEnabled(BetButton, true)
	c.display.SetButtonLabel(StartButton, LabelRestart)
	c.display.SetButtonLabel(DrawButton, LabelDeal)

	c.logger.Info("Session started", "credits", c.credits)
}

func (c *Controller) cycleBet() {
	c.bet = c.bet%scoring.MaxBet + 1
	c.display.SetButtonLabel(BetButton, BetLabel(c.bet))
}

func (c *Controller) dealHand() error {
	c.display.SetButtonEnabled(BetButton, false)
	c.display.SetButtonLabel(DrawButton, LabelDraw)

	c.deck.Populate()
	cards, err := c.deck.DrawRandom(HandSize)
	if err != nil {
		return err
	}

	c.hand = cards
	c.holds = [HandSize]bool{}
	copy(c.dealt[:], cards)
	c.dealtAt = c.clock.Now()
	c.credits -= c.bet

	for i, card := range c.hand {
		c.display.SetCard(i, &card)
		c.display.SetHold(i, false)
	}
	c.display.SetCredits(c.credits)

	c.logger.Debug("Dealt hand", "hand", c.hand, "bet", c.bet, "credits", c.credits)
	return nil
}

func (c *Controller) toggleHold(slot int) {
	if len(c.hand) != HandSize {
		return
	}
	c.holds[slot] = !c.holds[slot]
	c.display.SetHold(slot, c.holds[slot])
}

func (c *Controller) drawReplacements() error {
	if len(c.hand) != HandSize {
		return errors.New("no hand dealt")
	}

	for i := range c.hand {
		if c.holds[i] {
			continue
		}
		card, err := c.deck.DrawOne()
		if err != nil {
			return err
		}
		c.hand[i] = card
	}

	for i, card := range c.hand {
		c.display.SetCard(i, &card)
	}
	return nil
}

func (c *Controller) scoreHand() error {
	result, err := c.evaluator.CalculateScore(c.hand, c.bet)
	if err != nil {
		return err
	}

	c.credits += result.Score
	c.last = result
	c.rounds++

	c.display.SetCredits(c.credits)
	c.display.SetWinnings(result.Score, result.Hand)
	c.display.SetButtonEnabled(DrawButton, true)
	c.display.SetButtonEnabled(BetButton, true)
	c.display.SetButtonLabel(DrawButton, LabelDeal)

	rec := Record{
		Number:       c.rounds,
		Bet:          c.bet,
		Dealt:        c.dealt,
		Held:         c.holds,
		Result:       result,
		CreditsAfter: c.credits,
		DealtAt:      c.dealtAt,
		CompletedAt:  c.clock.Now(),
	}
	copy(rec.Final[:], c.hand)
	c.history.Add(rec)

	c.logger.Info("Round complete",
		"round", c.rounds,
		"hand", result.Hand,
		"score", result.Score,
		"bet", c.bet,
		"credits", c.credits)
	return nil
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Hand returns a copy of the current hand; empty before the first deal
func (c *Controller) Hand() []deck.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]deck.Card, len(c.hand))
	copy(out, c.hand)
	return out
}

// Holds returns the hold flags of the current hand
func (c *Controller) Holds() [HandSize]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holds
}

// Credits returns the balance. It may be negative.
func (c *Controller) Credits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credits
}

// Bet returns the current bet
func (c *Controller) Bet() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bet
}

// LastResult returns the result of the most recent draw
func (c *Controller) LastResult() scoring.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Rounds returns how many rounds have completed this session
func (c *Controller) Rounds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rounds
}

// History returns the session's completed rounds, oldest first
func (c *Controller) History() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Records()
}
