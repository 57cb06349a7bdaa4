package round

import (
	"github.com/lox/videopoker/internal/deck"
)

// recordingDisplay keeps the last value pushed to each widget and counts calls
type recordingDisplay struct {
	resets   int
	cards    [HandSize]*deck.Card
	holds    [HandSize]bool
	credits  int
	winnings string
	enabled  map[Button]bool
	labels   map[Button]string
	calls    []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{
		enabled: make(map[Button]bool),
		labels:  make(map[Button]string),
	}
}

func (d *recordingDisplay) Reset() {
	d.resets++
	d.calls = append(d.calls, "reset")
}

func (d *recordingDisplay) SetCard(slot int, card *deck.Card) {
	d.cards[slot] = card
	d.calls = append(d.calls, "card")
}

func (d *recordingDisplay) SetHold(slot int, held bool) {
	d.holds[slot] = held
}

func (d *recordingDisplay) SetCredits(credits int) {
	d.credits = credits
	d.calls = append(d.calls, "credits")
}

func (d *recordingDisplay) SetWinnings(score int, hand string) {
	d.winnings = WinningsText(score, hand)
	d.calls = append(d.calls, "winnings")
}

func (d *recordingDisplay) ResetWinnings() {
	d.winnings = WelcomeText
}

func (d *recordingDisplay) SetButtonEnabled(button Button, enabled bool) {
	d.enabled[button] = enabled
}

func (d *recordingDisplay) SetButtonLabel(button Button, label string) {
	d.labels[button] = label
}
