package round

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/randutil"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, seed int64) (*Controller, *recordingDisplay, *quartz.Mock) {
	t.Helper()
	display := newRecordingDisplay()
	clock := quartz.NewMock(t)
	c := New(deck.New(randutil.New(seed)), scoring.NewEvaluator(), display, WithClock(clock))
	return c, display, clock
}

// startSession drives a fresh controller to SetBets
func startSession(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Advance())
	require.Equal(t, WaitingToStart, c.State())
	require.True(t, c.OnStartPressed())
	require.NoError(t, c.Advance())
	require.Equal(t, SetBets, c.State())
}

func TestControllerLifecycle(t *testing.T) {
	t.Parallel()

	c, display, _ := newTestController(t, 1)
	assert.Equal(t, Init, c.State())

	require.NoError(t, c.Tick())
	assert.Equal(t, WaitingToStart, c.State())
	assert.Equal(t, 1, display.resets)
	assert.True(t, display.enabled[StartButton])
	assert.False(t, display.enabled[DrawButton])
	assert.False(t, display.enabled[BetButton])
	assert.Equal(t, WelcomeText, display.winnings)

	// Ticks in idle states do nothing
	require.NoError(t, c.Tick())
	assert.Equal(t, WaitingToStart, c.State())

	require.True(t, c.OnStartPressed())
	assert.Equal(t, Start, c.State())
	require.NoError(t, c.Tick())
	assert.Equal(t, SetBets, c.State())
	assert.Equal(t, StartingCredits, c.Credits())
	assert.Equal(t, StartingCredits, display.credits)
	assert.True(t, display.enabled[DrawButton])
	assert.True(t, display.enabled[BetButton])
	assert.Equal(t, LabelRestart, display.labels[StartButton])
	assert.Equal(t, LabelDeal, display.labels[DrawButton])
	assert.Empty(t, c.Hand())

	require.True(t, c.OnDrawPressed())
	assert.Equal(t, Deal, c.State())
	require.NoError(t, c.Tick())
	assert.Equal(t, WaitingToDraw, c.State())
	assert.Len(t, c.Hand(), HandSize)
	assert.False(t, display.enabled[BetButton])
	assert.Equal(t, LabelDraw, display.labels[DrawButton])

	require.True(t, c.OnDrawPressed())
	assert.Equal(t, Draw, c.State())
	require.NoError(t, c.Tick())
	assert.Equal(t, SetBets, c.State())
	assert.True(t, display.enabled[BetButton])
	assert.True(t, display.enabled[DrawButton])
	assert.Equal(t, LabelDeal, display.labels[DrawButton])
	assert.Equal(t, 1, c.Rounds())
}

func TestDealDebitsBetOnce(t *testing.T) {
	t.Parallel()

	c, display, _ := newTestController(t, 2)
	startSession(t, c)

	for range 2 {
		require.True(t, c.OnBetAdjustPressed())
	}
	require.Equal(t, 3, c.Bet())

	before := c.Credits()
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	assert.Equal(t, before-3, c.Credits())
	assert.Equal(t, before-3, display.credits)

	// Extra ticks and draw presses while idle must not debit again
	require.NoError(t, c.Tick())
	assert.Equal(t, before-3, c.Credits())
}

func TestDrawCreditsScoreOnce(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 50; seed++ {
		c, display, _ := newTestController(t, seed)
		startSession(t, c)

		require.True(t, c.OnDrawPressed())
		require.NoError(t, c.Advance())
		afterDeal := c.Credits()

		require.True(t, c.OnDrawPressed())
		require.NoError(t, c.Advance())

		result := c.LastResult()
		assert.Equal(t, afterDeal+result.Score, c.Credits(), "seed %d", seed)
		assert.Equal(t, c.Credits(), display.credits)
		assert.Equal(t, WinningsText(result.Score, result.Hand), display.winnings)

		// The reported result is what the evaluator says about the final hand
		want, err := scoring.NewEvaluator().CalculateScore(c.Hand(), c.Bet())
		require.NoError(t, err)
		assert.Equal(t, want, result)
	}
}

func TestDrawKeepsHeldCards(t *testing.T) {
	t.Parallel()

	c, display, _ := newTestController(t, 77)
	startSession(t, c)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	dealt := c.Hand()

	for _, slot := range []int{0, 2, 4} {
		ok, err := c.OnHoldToggled(slot)
		require.NoError(t, err)
		require.True(t, ok)
	}
	// Toggle slot 4 off again
	ok, err := c.OnHoldToggled(4)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, [HandSize]bool{true, false, true, false, false}, c.Holds())
	assert.Equal(t, [HandSize]bool{true, false, true, false, false}, display.holds)

	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	final := c.Hand()
	require.Len(t, final, HandSize)
	assert.Equal(t, dealt[0], final[0])
	assert.Equal(t, dealt[2], final[2])

	// Replacements come from the rest of the deck, never from the dealt cards
	for _, slot := range []int{1, 3, 4} {
		for _, d := range dealt {
			assert.NotEqual(t, d, final[slot], "slot %d reused dealt card", slot)
		}
	}

	seen := make(map[deck.Card]bool)
	for i, card := range final {
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
		require.NotNil(t, display.cards[i])
		assert.Equal(t, card, *display.cards[i])
	}
}

func TestHoldAllKeepsHand(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestController(t, 5)
	startSession(t, c)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	dealt := c.Hand()
	for slot := range HandSize {
		_, err := c.OnHoldToggled(slot)
		require.NoError(t, err)
	}
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	assert.Equal(t, dealt, c.Hand())
}

func TestNewDealResetsHolds(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestController(t, 9)
	startSession(t, c)

	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	_, err := c.OnHoldToggled(1)
	require.NoError(t, err)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	assert.Equal(t, [HandSize]bool{}, c.Holds())
}

func TestInvalidEventsAreIgnored(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestController(t, 3)
	require.NoError(t, c.Advance())

	// Nothing but start is accepted before the session starts
	assert.False(t, c.OnDrawPressed())
	assert.False(t, c.OnBetAdjustPressed())
	ok, err := c.OnHoldToggled(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, WaitingToStart, c.State())

	require.True(t, c.OnStartPressed())
	require.NoError(t, c.Advance())

	// Holds are only accepted while waiting to draw
	ok, err = c.OnHoldToggled(0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	// Bets and restarts are locked while a hand is out
	assert.False(t, c.OnBetAdjustPressed())
	assert.False(t, c.OnStartPressed())
	assert.Equal(t, 1, c.Bet())
	assert.Equal(t, WaitingToDraw, c.State())
}

func TestHoldSlotOutOfRange(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestController(t, 3)
	startSession(t, c)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	for _, slot := range []int{-1, HandSize, 100} {
		ok, err := c.OnHoldToggled(slot)
		assert.ErrorIs(t, err, ErrSlotOutOfRange)
		assert.False(t, ok)
	}
	assert.Equal(t, [HandSize]bool{}, c.Holds())
}

func TestBetCycles(t *testing.T) {
	t.Parallel()

	c, display, _ := newTestController(t, 4)
	startSession(t, c)
	assert.Equal(t, 1, c.Bet())

	want := []int{2, 3, 4, 5, 1, 2}
	for _, bet := range want {
		require.True(t, c.OnBetAdjustPressed())
		assert.Equal(t, bet, c.Bet())
		assert.Equal(t, BetLabel(bet), display.labels[BetButton])
	}
}

func TestRestartResetsSession(t *testing.T) {
	t.Parallel()

	c, display, _ := newTestController(t, 11)
	startSession(t, c)

	require.True(t, c.OnBetAdjustPressed())
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	require.Equal(t, 1, c.Rounds())

	require.True(t, c.OnStartPressed())
	assert.Equal(t, Start, c.State())
	assert.Empty(t, c.Hand())
	assert.Equal(t, 1, c.Bet())
	assert.Equal(t, scoring.NoWinResult(), c.LastResult())
	for i := range HandSize {
		assert.Nil(t, display.cards[i])
	}

	require.NoError(t, c.Advance())
	assert.Equal(t, SetBets, c.State())
	assert.Equal(t, StartingCredits, c.Credits())
	assert.Equal(t, 0, c.Rounds())
	assert.Empty(t, c.History())
}

func TestCreditsMayGoNegative(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestController(t, 13)
	startSession(t, c)
	for range 4 {
		require.True(t, c.OnBetAdjustPressed())
	}
	require.Equal(t, 5, c.Bet())

	// Never hold anything; the balance keeps moving regardless of sign
	for range 200 {
		require.True(t, c.OnDrawPressed())
		require.NoError(t, c.Advance())
		require.True(t, c.OnDrawPressed())
		require.NoError(t, c.Advance())
	}

	history := c.History()
	require.Len(t, history, 200)
	total := StartingCredits
	for _, rec := range history {
		total += rec.Net()
		assert.Equal(t, total, rec.CreditsAfter)
	}
	assert.Equal(t, total, c.Credits())
}

func TestHistoryRecordsRounds(t *testing.T) {
	t.Parallel()

	c, _, clock := newTestController(t, 21)
	startSession(t, c)

	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	dealtAt := clock.Now()
	dealt := c.Hand()

	_, err := c.OnHoldToggled(2)
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())

	history := c.History()
	require.Len(t, history, 1)
	rec := history[0]

	assert.Equal(t, 1, rec.Number)
	assert.Equal(t, 1, rec.Bet)
	assert.Equal(t, dealt, rec.Dealt[:])
	assert.Equal(t, c.Hand(), rec.Final[:])
	assert.Equal(t, [HandSize]bool{false, false, true, false, false}, rec.Held)
	assert.Equal(t, c.LastResult(), rec.Result)
	assert.Equal(t, c.Credits(), rec.CreditsAfter)
	assert.Equal(t, dealtAt, rec.DealtAt)
	assert.Equal(t, 3*time.Second, rec.CompletedAt.Sub(rec.DealtAt))
	assert.Contains(t, rec.String(), "#1 bet 1:")
}

func TestNilCollaborators(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	c := New(nil, nil, nil, WithLogger(logger))
	assert.Contains(t, buf.String(), "No display connected")

	startSession(t, c)
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	require.True(t, c.OnDrawPressed())
	require.NoError(t, c.Advance())
	assert.Equal(t, 1, c.Rounds())
}
