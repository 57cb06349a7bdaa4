package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card string cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	default:
		return "?"
	}
}

// Letter returns the single lowercase letter used in short card notation
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are always high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of Two..Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the short notation of a card (e.g., "As", "Th")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Pretty returns the card with its suit symbol (e.g., "A♠")
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value of the card (2..14)
func (c Card) Value() int {
	return int(c.Rank)
}

// ParseCard parses short notation such as "As", "td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankPart[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch strings.ToLower(suitPart) {
	case "s":
		suit = Spades
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	default:
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a list of cards. Cards may be separated by spaces or
// commas ("Th Jh Qh") or run together ("ThJhQh").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})

	cards := []Card{}
	for _, field := range fields {
		if len(field) == 3 && strings.HasPrefix(field, "10") {
			card, err := ParseCard(field)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			continue
		}

		if len(field)%2 != 0 {
			return nil, fmt.Errorf("%w: odd length %q", ErrInvalidCard, field)
		}
		for i := 0; i < len(field); i += 2 {
			card, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
