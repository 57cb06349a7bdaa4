package tui

import (
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
)

// ButtonState is what the panel shows for one button
type ButtonState struct {
	Label   string
	Enabled bool
}

// Panel is the cabinet's face. The controller writes to it through the
// round.Display interface and the model renders it. It is only touched from
// the bubbletea update loop, so it needs no locking.
type Panel struct {
	cards    [round.HandSize]*deck.Card
	holds    [round.HandSize]bool
	credits  int
	winnings string
	buttons  [3]ButtonState
}

var _ round.Display = (*Panel)(nil)

// NewPanel returns a panel in its clean slate
func NewPanel() *Panel {
	p := &Panel{}
	p.Reset()
	return p
}

// Reset shows card backs, clears holds and restores the initial labels
func (p *Panel) Reset() {
	p.cards = [round.HandSize]*deck.Card{}
	p.holds = [round.HandSize]bool{}
	p.winnings = round.WelcomeText
	p.buttons[round.StartButton] = ButtonState{Label: round.LabelStart, Enabled: true}
	p.buttons[round.DrawButton] = ButtonState{Label: round.LabelDeal}
	p.buttons[round.BetButton] = ButtonState{Label: round.BetLabel(scoring.MinBet)}
}

func (p *Panel) SetCard(slot int, card *deck.Card) {
	if slot < 0 || slot >= round.HandSize {
		return
	}
	if card == nil {
		p.cards[slot] = nil
		return
	}
	c := *card
	p.cards[slot] = &c
}

func (p *Panel) SetHold(slot int, held bool) {
	if slot < 0 || slot >= round.HandSize {
		return
	}
	p.holds[slot] = held
}

func (p *Panel) SetCredits(credits int) {
	p.credits = credits
}

func (p *Panel) SetWinnings(score int, hand string) {
	p.winnings = round.WinningsText(score, hand)
}

func (p *Panel) ResetWinnings() {
	p.winnings = round.WelcomeText
}

func (p *Panel) SetButtonEnabled(button round.Button, enabled bool) {
	if int(button) < len(p.buttons) {
		p.buttons[button].Enabled = enabled
	}
}

func (p *Panel) SetButtonLabel(button round.Button, label string) {
	if int(button) < len(p.buttons) {
		p.buttons[button].Label = label
	}
}

// Card returns the card shown in slot, or nil for a card back
func (p *Panel) Card(slot int) *deck.Card {
	return p.cards[slot]
}

// Held reports whether slot shows the hold marker
func (p *Panel) Held(slot int) bool {
	return p.holds[slot]
}

// Credits returns the displayed balance
func (p *Panel) Credits() int {
	return p.credits
}

// Winnings returns the displayed winnings line
func (p *Panel) Winnings() string {
	return p.winnings
}

// Button returns the displayed state of a button
func (p *Panel) Button(button round.Button) ButtonState {
	return p.buttons[button]
}
