package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/lox/videopoker/internal/scoring"
	"github.com/lox/videopoker/internal/simulator"
)

// SimulateCmd plays many headless rounds and reports the results
type SimulateCmd struct {
	GameFlags

	Rounds   int    `short:"n" help:"Number of rounds to simulate" env:"VIDEOPOKER_ROUNDS"`
	Workers  int    `short:"w" help:"Parallel workers (0 uses all CPUs)" env:"VIDEOPOKER_WORKERS"`
	Bet      int    `short:"b" help:"Credits bet per round (1-5)" env:"VIDEOPOKER_BET"`
	Strategy string `short:"s" help:"Hold strategy: none or pairs" env:"VIDEOPOKER_STRATEGY"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.Rounds != 0 {
		cfg.Simulate.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		cfg.Simulate.Workers = c.Workers
	}
	if c.Bet != 0 {
		cfg.Simulate.Bet = c.Bet
	}
	if c.Strategy != "" {
		cfg.Simulate.Strategy = c.Strategy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := g.logLevel(cfg)
	if err != nil {
		return err
	}
	logger := setupLogger(level)
	mode, err := cfg.RoyalMode()
	if err != nil {
		return err
	}

	sim, err := simulator.New(simulator.Config{
		Rounds:    cfg.Simulate.Rounds,
		Workers:   cfg.Simulate.Workers,
		Seed:      cfg.Game.Seed,
		Bet:       cfg.Simulate.Bet,
		Strategy:  cfg.Simulate.Strategy,
		RoyalMode: mode,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	result, err := sim.Run(setupSignalHandler(logger))
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return printSimulationReport(result, cfg.Simulate.Bet)
}

func printSimulationReport(result *simulator.Result, bet int) error {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	pterm.DefaultSection.Printfln("Simulation: %d rounds, strategy %s, bet %d", stats.Rounds, result.Strategy, bet)

	summary := pterm.TableData{
		{"Metric", "Value"},
		{"Return to player", fmt.Sprintf("%.2f%%", stats.ReturnToPlayer()*100)},
		{"Wagered", fmt.Sprintf("%d", stats.Wagered)},
		{"Paid", fmt.Sprintf("%d", stats.Paid)},
		{"Mean net per round", fmt.Sprintf("%.4f", stats.Mean())},
		{"Std dev", fmt.Sprintf("%.4f", stats.StdDev())},
		{"95% CI", fmt.Sprintf("[%.4f, %.4f]", low, high)},
		{"Largest payout", fmt.Sprintf("%d", stats.MaxPayout)},
		{"Workers", fmt.Sprintf("%d", result.Workers)},
		{"Seed", fmt.Sprintf("%d", result.Seed)},
		{"Elapsed", result.Elapsed.String()},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(summary).Render(); err != nil {
		return err
	}

	hits := pterm.TableData{{"Hand", "Hits", "Frequency", "Paid"}}
	for i := scoring.NumCategories - 1; i >= 0; i-- {
		c := scoring.Category(i)
		cat := stats.Categories[c]
		hits = append(hits, []string{
			c.String(),
			fmt.Sprintf("%d", cat.Hits),
			fmt.Sprintf("%.4f%%", stats.HitRate(c)*100),
			fmt.Sprintf("%d", cat.Paid),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(hits).Render()
}
