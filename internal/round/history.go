package round

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/scoring"
)

// Record is the outcome of one completed round
type Record struct {
	Number       int
	Bet          int
	Dealt        [HandSize]deck.Card
	Held         [HandSize]bool
	Final        [HandSize]deck.Card
	Result       scoring.Result
	CreditsAfter int
	DealtAt      time.Time
	CompletedAt  time.Time
}

// Net returns the credits won or lost over the round
func (r Record) Net() int {
	return r.Result.Score - r.Bet
}

// String renders the record on one line, marking held cards with '*'
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d bet %d:", r.Number, r.Bet)
	for i, c := range r.Dealt {
		b.WriteByte(' ')
		b.WriteString(c.String())
		if r.Held[i] {
			b.WriteByte('*')
		}
	}
	b.WriteString(" ->")
	for _, c := range r.Final {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, " | %s (%+d, balance %d)", r.Result.String(), r.Net(), r.CreditsAfter)
	return b.String()
}

// History is the in-memory log of a session's rounds
type History struct {
	records []Record
}

// Add appends a record
func (h *History) Add(r Record) {
	h.records = append(h.records, r)
}

// Len returns the number of recorded rounds
func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of all records, oldest first
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Last returns the most recent record
func (h *History) Last() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Clear drops all records
func (h *History) Clear() {
	h.records = h.records[:0]
}
