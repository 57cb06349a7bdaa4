package scoring

// Category classifies a five card hand against the paytable. Categories are
// ordered from weakest to strongest.
type Category uint8

const (
	NoWin Category = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumCategories is the number of categories including NoWin
const NumCategories = int(RoyalFlush) + 1

const (
	// MinBet and MaxBet bound the number of credits wagered per round
	MinBet = 1
	MaxBet = 5

	// RoyalFlushMaxBetPayout replaces the multiplier when a royal flush is hit at MaxBet
	RoyalFlushMaxBetPayout = 4000
)

// PaytableRow is one line of the fixed paytable
type PaytableRow struct {
	Category   Category
	Name       string
	Multiplier int
}

// paytable is indexed by Category
var paytable = [NumCategories]PaytableRow{
	{NoWin, "No matching hand!", 0},
	{JacksOrBetter, "Jacks or Better!", 1},
	{TwoPair, "Two Pair!", 2},
	{ThreeOfAKind, "Three of a kind!", 3},
	{Straight, "Straight!", 4},
	{Flush, "Flush!", 6},
	{FullHouse, "Full House!", 9},
	{FourOfAKind, "Four of a kind!", 25},
	{StraightFlush, "Straight Flush!", 50},
	{RoyalFlush, "Royal Flush!", 250},
}

// String returns the hand name shown to the player
func (c Category) String() string {
	if int(c) >= NumCategories {
		return "Unknown"
	}
	return paytable[c].Name
}

// Multiplier returns the per-credit payout of the category
func (c Category) Multiplier() int {
	if int(c) >= NumCategories {
		return 0
	}
	return paytable[c].Multiplier
}

// Payout returns the credits won for a category at the given bet.
func (c Category) Payout(bet int) int {
	if c == RoyalFlush && bet == MaxBet {
		return RoyalFlushMaxBetPayout
	}
	return c.Multiplier() * bet
}

// Paytable returns the winning rows from strongest to weakest
func Paytable() []PaytableRow {
	rows := make([]PaytableRow, 0, NumCategories-1)
	for c := RoyalFlush; c > NoWin; c-- {
		rows = append(rows, paytable[c])
	}
	return rows
}
