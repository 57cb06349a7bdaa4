package round

import "fmt"

// State is the game state of a session
type State uint8

const (
	Init State = iota
	WaitingToStart
	Start
	SetBets
	Deal
	WaitingToDraw
	Draw
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case WaitingToStart:
		return "WaitingToStart"
	case Start:
		return "Start"
	case SetBets:
		return "SetBets"
	case Deal:
		return "Deal"
	case WaitingToDraw:
		return "WaitingToDraw"
	case Draw:
		return "Draw"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Idle reports whether the state waits for player input. Non-idle states run
// their entry work on the next Tick and move on by themselves.
func (s State) Idle() bool {
	switch s {
	case WaitingToStart, SetBets, WaitingToDraw:
		return true
	default:
		return false
	}
}

// EventKind identifies an input to the state machine
type EventKind uint8

const (
	// EventTick advances a transient state after running its entry work
	EventTick EventKind = iota
	EventStartPressed
	EventDrawPressed
	EventBetPressed
	EventHoldToggled
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventStartPressed:
		return "start"
	case EventDrawPressed:
		return "draw"
	case EventBetPressed:
		return "bet"
	case EventHoldToggled:
		return "hold"
	default:
		return "unknown"
	}
}

// Event is an input to the state machine. Slot is only meaningful for
// EventHoldToggled.
type Event struct {
	Kind EventKind
	Slot int
}

// Tick returns the tick event
func Tick() Event { return Event{Kind: EventTick} }

// StartPressed returns the start button event
func StartPressed() Event { return Event{Kind: EventStartPressed} }

// DrawPressed returns the deal/draw button event
func DrawPressed() Event { return Event{Kind: EventDrawPressed} }

// BetPressed returns the bet button event
func BetPressed() Event { return Event{Kind: EventBetPressed} }

// HoldToggled returns the hold event for a card slot
func HoldToggled(slot int) Event { return Event{Kind: EventHoldToggled, Slot: slot} }

// EffectKind identifies work the controller performs for a transition
type EffectKind uint8

const (
	// EffectResetDisplay clears the table: card backs, bet back to 1, only start enabled
	EffectResetDisplay EffectKind = iota
	// EffectBeginSession grants starting credits and enables the controls
	EffectBeginSession
	// EffectCycleBet moves the bet 1→2→3→4→5→1
	EffectCycleBet
	// EffectDealHand repopulates the deck, deals five cards and debits the bet
	EffectDealHand
	// EffectToggleHold flips the hold flag of Effect.Slot
	EffectToggleHold
	// EffectDrawReplacements replaces every unheld card
	EffectDrawReplacements
	// EffectScoreHand evaluates the hand and credits the payout
	EffectScoreHand
)

// String returns the string representation of the effect kind
func (k EffectKind) String() string {
	switch k {
	case EffectResetDisplay:
		return "reset_display"
	case EffectBeginSession:
		return "begin_session"
	case EffectCycleBet:
		return "cycle_bet"
	case EffectDealHand:
		return "deal_hand"
	case EffectToggleHold:
		return "toggle_hold"
	case EffectDrawReplacements:
		return "draw_replacements"
	case EffectScoreHand:
		return "score_hand"
	default:
		return "unknown"
	}
}

// Effect is a unit of work produced by Transition
type Effect struct {
	Kind EffectKind
	Slot int
}

// Transition is the pure state machine. It returns the next state and the
// effects to apply in order. ok is false when the state does not accept the
// event, in which case the state is returned unchanged with no effects.
func Transition(s State, ev Event) (next State, effects []Effect, ok bool) {
	switch s {
	case Init:
		if ev.Kind == EventTick {
			return WaitingToStart, []Effect{{Kind: EffectResetDisplay}}, true
		}

	case WaitingToStart:
		if ev.Kind == EventStartPressed {
			return Start, []Effect{{Kind: EffectResetDisplay}}, true
		}

	case Start:
		if ev.Kind == EventTick {
			return SetBets, []Effect{{Kind: EffectBeginSession}}, true
		}

	case SetBets:
		switch ev.Kind {
		case EventStartPressed:
			return Start, []Effect{{Kind: EffectResetDisplay}}, true
		case EventBetPressed:
			return SetBets, []Effect{{Kind: EffectCycleBet}}, true
		case EventDrawPressed:
			return Deal, nil, true
		}

	case Deal:
		if ev.Kind == EventTick {
			return WaitingToDraw, []Effect{{Kind: EffectDealHand}}, true
		}

	case WaitingToDraw:
		switch ev.Kind {
		case EventHoldToggled:
			return WaitingToDraw, []Effect{{Kind: EffectToggleHold, Slot: ev.Slot}}, true
		case EventDrawPressed:
			return Draw, nil, true
		}

	case Draw:
		if ev.Kind == EventTick {
			return SetBets, []Effect{{Kind: EffectDrawReplacements}, {Kind: EffectScoreHand}}, true
		}
	}

	return s, nil, false
}
