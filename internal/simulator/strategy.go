package simulator

import (
	"fmt"
	"strings"

	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
)

// Strategy decides which dealt cards to hold before the draw
type Strategy interface {
	Name() string
	Holds(hand []deck.Card) [round.HandSize]bool
}

// StrategyNames lists the strategies accepted by NewStrategy
var StrategyNames = []string{"none", "pairs"}

// NewStrategy returns the named strategy. The evaluator is used by
// strategies that need to recognise made hands.
func NewStrategy(name string, evaluator *scoring.Evaluator) (Strategy, error) {
	switch strings.ToLower(name) {
	case "none":
		return holdNothing{}, nil
	case "pairs":
		if evaluator == nil {
			evaluator = scoring.NewEvaluator()
		}
		return holdPairs{evaluator: evaluator}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(StrategyNames, ", "))
	}
}

// holdNothing redraws all five cards every round
type holdNothing struct{}

func (holdNothing) Name() string { return "none" }

func (holdNothing) Holds([]deck.Card) [round.HandSize]bool {
	return [round.HandSize]bool{}
}

// holdPairs keeps made hands of a straight or better, otherwise any cards
// sharing a rank, otherwise four cards to a flush.
type holdPairs struct {
	evaluator *scoring.Evaluator
}

func (holdPairs) Name() string { return "pairs" }

func (s holdPairs) Holds(hand []deck.Card) [round.HandSize]bool {
	var holds [round.HandSize]bool
	if len(hand) != round.HandSize {
		return holds
	}

	if s.evaluator.Classify(hand) >= scoring.Straight {
		for i := range holds {
			holds[i] = true
		}
		return holds
	}

	var ranks [deck.Ace + 1]int
	for _, c := range hand {
		ranks[c.Rank]++
	}
	paired := false
	for i, c := range hand {
		if ranks[c.Rank] >= 2 {
			holds[i] = true
			paired = true
		}
	}
	if paired {
		return holds
	}

	var suits [deck.NumSuits]int
	for _, c := range hand {
		suits[c.Suit]++
	}
	for suit, n := range suits {
		if n != 4 {
			continue
		}
		for i, c := range hand {
			holds[i] = c.Suit == deck.Suit(suit)
		}
	}
	return holds
}
