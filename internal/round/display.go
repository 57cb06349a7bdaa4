package round

import (
	"fmt"

	"github.com/lox/videopoker/internal/deck"
)

// Button identifies one of the cabinet's three buttons
type Button uint8

const (
	StartButton Button = iota
	DrawButton
	BetButton
)

// String returns the string representation of the button
func (b Button) String() string {
	switch b {
	case StartButton:
		return "start"
	case DrawButton:
		return "draw"
	case BetButton:
		return "bet"
	default:
		return "unknown"
	}
}

// Button labels
const (
	LabelStart   = "START"
	LabelRestart = "RESTART"
	LabelDeal    = "DEAL"
	LabelDraw    = "DRAW"
)

// Display receives one-way notifications from the controller. Calls arrive
// synchronously while the controller holds its lock, so implementations must
// not call back into the controller.
type Display interface {
	// Reset returns the display to its clean slate
	Reset()
	// SetCard shows card in slot, or the card back when card is nil
	SetCard(slot int, card *deck.Card)
	// SetHold shows or hides the hold marker of a slot
	SetHold(slot int, held bool)
	SetCredits(credits int)
	SetWinnings(score int, hand string)
	ResetWinnings()
	SetButtonEnabled(button Button, enabled bool)
	SetButtonLabel(button Button, label string)
}

// NopDisplay discards every update. Headless sessions such as the simulator use it.
type NopDisplay struct{}

func (NopDisplay) Reset() {}
func (NopDisplay) SetCard(int, *deck.Card) {}
func (NopDisplay) SetHold(int, bool) {}
func (NopDisplay) SetCredits(int) {}
func (NopDisplay) SetWinnings(int, string) {}
func (NopDisplay) ResetWinnings() {}
func (NopDisplay) SetButtonEnabled(Button, bool) {}
func (NopDisplay) SetButtonLabel(Button, string) {}

// WelcomeText is shown in the winnings area before a round is scored
const WelcomeText = "Let's Play!"

// BetLabel returns the bet button label for a bet
func BetLabel(bet int) string {
	return fmt.Sprintf("BET %d", bet)
}

// CreditsText formats the balance line
func CreditsText(credits int) string {
	return fmt.Sprintf("Balance: %d Credits", credits)
}

// WinningsText formats the winnings line after a round
func WinningsText(score int, hand string) string {
	return fmt.Sprintf("%s You Won %d Credits!", hand, score)
}
