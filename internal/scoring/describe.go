package scoring

import (
	"fmt"

	"github.com/lox/videopoker/internal/deck"
	"github.com/paulhankin/poker"
)

// Describe returns the conventional poker ranking of a five card hand (for
// example "pair of jacks" or "ace-high straight"), independent of the paytable.
func Describe(hand []deck.Card) (string, error) {
	if len(hand) != HandSize {
		return "", fmt.Errorf("%w: want %d cards, got %d", ErrInvalidHand, HandSize, len(hand))
	}

	cards := make([]poker.Card, 0, HandSize)
	for _, c := range hand {
		pc, err := toReference(c)
		if err != nil {
			return "", err
		}
		cards = append(cards, pc)
	}

	desc, err := poker.Describe(cards)
	if err != nil {
		return "", fmt.Errorf("describe %v: %w", hand, err)
	}
	return desc, nil
}

// toReference converts to the reference library's card model, which numbers
// ranks 1 (ace) to 13 (king).
func toReference(c deck.Card) (poker.Card, error) {
	rank := int(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}

	var (
		suit poker.Suit
		zero poker.Card
	)
	switch c.Suit {
	case deck.Spades:
		suit = poker.Spade
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	default:
		return zero, fmt.Errorf("%w: bad suit %d", ErrInvalidHand, c.Suit)
	}

	pc, err := poker.MakeCard(suit, poker.Rank(rank))
	if err != nil {
		return pc, fmt.Errorf("%w: %v", ErrInvalidHand, err)
	}
	return pc, nil
}
