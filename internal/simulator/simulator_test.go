package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNew(t *testing.T) {
	sim, err := New(Config{
		Rounds:   100,
		Workers:  4,
		Seed:     12345,
		Strategy: "none",
		Logger:   testLogger(),
	})
	require.NoError(t, err)

	if sim.config.Rounds != 100 {
		t.Errorf("Expected 100 rounds, got %d", sim.config.Rounds)
	}
	if sim.config.Bet != scoring.MinBet {
		t.Errorf("Expected default bet %d, got %d", scoring.MinBet, sim.config.Bet)
	}
	if sim.strategy.Name() != "none" {
		t.Errorf("Expected 'none' strategy, got %s", sim.strategy.Name())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no rounds", Config{Rounds: 0}},
		{"bet too high", Config{Rounds: 10, Bet: 6}},
		{"unknown strategy", Config{Rounds: 10, Strategy: "martingale"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.Error(t, err)
		})
	}

	_, err := New(Config{Rounds: 10, Bet: -1})
	assert.ErrorIs(t, err, scoring.ErrInvalidBet)
}

func TestNew_CapsWorkersToRounds(t *testing.T) {
	sim, err := New(Config{Rounds: 3, Workers: 16, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, sim.config.Workers)
}

func TestRun(t *testing.T) {
	sim, err := New(Config{
		Rounds:   2500,
		Workers:  3,
		Seed:     42,
		Bet:      5,
		Strategy: "pairs",
		Logger:   testLogger(),
		Clock:    quartz.NewMock(t),
	})
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 2500, stats.Rounds)
	assert.Equal(t, 2500*5, stats.Wagered)
	assert.Equal(t, "pairs", result.Strategy)
	assert.Equal(t, 3, result.Workers)
	assert.Equal(t, int64(42), result.Seed)
	assert.Zero(t, result.Elapsed, "mock clock never advances")
	require.NoError(t, stats.Validate())

	// Every payout must be a paytable amount for the bet
	for c := scoring.NoWin; c <= scoring.RoyalFlush; c++ {
		hits := stats.Categories[c]
		assert.Equal(t, hits.Hits*c.Payout(5), hits.Paid, "category %s", c)
	}

	// Holding pairs wins far more often than nothing at all
	assert.Greater(t, stats.ReturnToPlayer(), 0.3)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() *Result {
		sim, err := New(Config{Rounds: 1200, Workers: 4, Seed: 7, Strategy: "pairs", Logger: testLogger()})
		require.NoError(t, err)
		result, err := sim.Run(context.Background())
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	assert.Equal(t, a.Stats.Paid, b.Stats.Paid)
	assert.Equal(t, a.Stats.Categories, b.Stats.Categories)
	assert.Equal(t, a.Stats.Values, b.Stats.Values)
}

func TestRun_SessionRestartsKeepBet(t *testing.T) {
	// More rounds than one session so each worker restarts at least once
	sim, err := New(Config{Rounds: 2*sessionLength + 10, Workers: 1, Seed: 3, Bet: 3, Strategy: "none"})
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, (2*sessionLength+10)*3, result.Stats.Wagered)
	assert.Zero(t, result.Stats.HeldCards)
}

func TestRun_Cancelled(t *testing.T) {
	sim, err := New(Config{Rounds: 100, Workers: 2, Seed: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
