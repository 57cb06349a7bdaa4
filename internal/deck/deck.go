package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

var (
	// ErrNotEnoughCards is returned when a draw asks for more cards than remain
	ErrNotEnoughCards = errors.New("not enough cards in deck")
	// ErrInvalidCount is returned for negative draw counts
	ErrInvalidCount = errors.New("invalid draw count")
)

// Deck is a set of cards drawn at random without replacement.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates an empty deck drawing from rng. Call Populate before drawing.
func New(rng *rand.Rand) *Deck {
	return &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
}

// NewFull creates a deck that is already populated with all 52 cards
func NewFull(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Populate()
	return d
}

// Populate resets the deck to all 52 unique cards, discarding whatever it held.
func (d *Deck) Populate() {
	d.cards = d.cards[:0] // Clear the slice but keep capacity

	for suit := Spades; suit <= Hearts; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// DrawRandom removes count cards chosen uniformly at random and returns them
// in the order they were drawn. The deck is unchanged on error.
func (d *Deck) DrawRandom(count int) ([]Card, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughCards, count, len(d.cards))
	}

	drawn := make([]Card, 0, count)
	for range count {
		i := d.rng.IntN(len(d.cards))
		drawn = append(drawn, d.cards[i])

		// Swap-remove; order of the remaining cards is irrelevant
		last := len(d.cards) - 1
		d.cards[i] = d.cards[last]
		d.cards = d.cards[:last]
	}

	return drawn, nil
}

// DrawOne draws a single random card
func (d *Deck) DrawOne() (Card, error) {
	cards, err := d.DrawRandom(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Contains reports whether card is still in the deck
func (d *Deck) Contains(card Card) bool {
	for _, c := range d.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Cards returns a copy of the cards remaining in the deck
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
