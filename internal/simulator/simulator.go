// Package simulator plays many headless video poker rounds in parallel and
// collects their statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/randutil"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/lox/videopoker/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// sessionLength is how many rounds a worker plays before restarting its
// session, which keeps each controller's history bounded.
const sessionLength = 1000

// Config holds configuration for running simulations
type Config struct {
	Rounds    int
	Workers   int // 0 uses GOMAXPROCS
	Seed      int64
	Bet       int
	Strategy  string
	RoyalMode scoring.RoyalMode
	Logger    *log.Logger
	Clock     quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Strategy string
	Workers  int
	Seed     int64
	Elapsed  time.Duration
}

// Simulator runs video poker simulations
type Simulator struct {
	config    Config
	evaluator *scoring.Evaluator
	strategy  Strategy
}

// New creates a new simulator, filling defaults and validating the config
func New(config Config) (*Simulator, error) {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Bet == 0 {
		config.Bet = scoring.MinBet
	}
	if config.Strategy == "" {
		config.Strategy = "pairs"
	}
	config.Seed = randutil.Seed(config.Seed)

	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Bet < scoring.MinBet || config.Bet > scoring.MaxBet {
		return nil, fmt.Errorf("%w: %d", scoring.ErrInvalidBet, config.Bet)
	}
	if config.Workers > config.Rounds {
		config.Workers = config.Rounds
	}

	evaluator := scoring.NewEvaluator(scoring.WithRoyalMode(config.RoyalMode))
	strategy, err := NewStrategy(config.Strategy, evaluator)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		config:    config,
		evaluator: evaluator,
		strategy:  strategy,
	}, nil
}

// Run plays the configured number of rounds and returns the merged statistics
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := s.config.Clock.Now()
	workers := s.config.Workers
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	s.config.Logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"strategy", s.strategy.Name(),
		"bet", s.config.Bet,
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	partials := make([]*statistics.Statistics, workers)

	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, seed, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			partials[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, p := range partials {
		stats.Merge(p)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Now().Sub(start)
	s.config.Logger.Info("Simulation complete",
		"rounds", stats.Rounds,
		"rtp", fmt.Sprintf("%.4f", stats.ReturnToPlayer()),
		"elapsed", elapsed)

	return &Result{
		Stats:    stats,
		Strategy: s.strategy.Name(),
		Workers:  workers,
		Seed:     s.config.Seed,
		Elapsed:  elapsed,
	}, nil
}

// runWorker drives its own controller through the public entry points, the
// same way a player would.
func (s *Simulator) runWorker(ctx context.Context, id int, seed int64, rounds int) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("worker", id)
	ctrl := round.New(
		deck.New(randutil.New(seed)),
		s.evaluator,
		round.NopDisplay{},
		round.WithClock(s.config.Clock),
	)
	if err := ctrl.Advance(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for n := range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n%sessionLength == 0 {
			if err := s.startSession(ctrl); err != nil {
				return nil, err
			}
		}

		result, err := s.playRound(ctrl)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n+1, err)
		}
		stats.Add(result)
	}

	logger.Debug("Worker finished", "rounds", rounds, "rtp", stats.ReturnToPlayer())
	return stats, nil
}

func (s *Simulator) startSession(ctrl *round.Controller) error {
	if !ctrl.OnStartPressed() {
		return fmt.Errorf("start rejected in state %s", ctrl.State())
	}
	if err := ctrl.Advance(); err != nil {
		return err
	}
	for ctrl.Bet() != s.config.Bet {
		ctrl.OnBetAdjustPressed()
	}
	return nil
}

func (s *Simulator) playRound(ctrl *round.Controller) (statistics.RoundResult, error) {
	if !ctrl.OnDrawPressed() {
		return statistics.RoundResult{}, fmt.Errorf("deal rejected in state %s", ctrl.State())
	}
	if err := ctrl.Advance(); err != nil {
		return statistics.RoundResult{}, err
	}

	held := 0
	for slot, hold := range s.strategy.Holds(ctrl.Hand()) {
		if !hold {
			continue
		}
		if _, err := ctrl.OnHoldToggled(slot); err != nil {
			return statistics.RoundResult{}, err
		}
		held++
	}

	if !ctrl.OnDrawPressed() {
		return statistics.RoundResult{}, errors.New("draw rejected")
	}
	if err := ctrl.Advance(); err != nil {
		return statistics.RoundResult{}, err
	}

	last := ctrl.LastResult()
	return statistics.RoundResult{
		Bet:      ctrl.Bet(),
		Payout:   last.Score,
		Category: last.Category,
		Held:     held,
	}, nil
}
