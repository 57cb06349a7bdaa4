package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/lox/videopoker/internal/config"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/randutil"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/lox/videopoker/internal/tui"
)

// GameFlags override the config file's game block
type GameFlags struct {
	Seed       *int64 `help:"Deterministic RNG seed (optional)" env:"VIDEOPOKER_SEED"`
	RoyalFlush string `help:"Royal flush rule: hearts or any" env:"VIDEOPOKER_ROYAL_FLUSH"`
}

func (f GameFlags) apply(cfg *config.Config) {
	if f.Seed != nil {
		cfg.Game.Seed = *f.Seed
	}
	if f.RoyalFlush != "" {
		cfg.Game.RoyalFlush = f.RoyalFlush
	}
}

// PlayCmd runs the interactive terminal game
type PlayCmd struct {
	GameFlags

	LogFile string `help:"Log file path" env:"VIDEOPOKER_LOG_FILE"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := g.logLevel(cfg)
	if err != nil {
		return err
	}
	logFile, logger, err := setupFileLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			pterm.Error.Printfln("Failed to close log file: %v", err)
		}
	}()

	mode, err := cfg.RoyalMode()
	if err != nil {
		return err
	}
	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Starting interactive game", "seed", seed, "royal_flush", mode)

	evaluator := scoring.NewEvaluator(scoring.WithRoyalMode(mode), scoring.WithLogger(logger))
	panel := tui.NewPanel()
	ctrl := round.New(deck.New(randutil.New(seed)), evaluator, panel, round.WithLogger(logger))

	opts := []tui.Option{tui.WithLogger(logger)}
	if g.NoColor || noColorEnv() {
		opts = append(opts, tui.WithColorProfile(termenv.Ascii))
	}
	model := tui.New(ctrl, panel, opts...)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	printSessionSummary(ctrl.History(), ctrl.Credits(), seed)
	return nil
}

func printSessionSummary(records []round.Record, credits int, seed int64) {
	if len(records) == 0 {
		return
	}

	wagered, paid := 0, 0
	best := records[0]
	for _, r := range records {
		wagered += r.Bet
		paid += r.Result.Score
		if r.Result.Score > best.Result.Score {
			best = r
		}
	}

	summary := pterm.Sprintfln("Rounds played: %d", len(records)) +
		pterm.Sprintfln("Wagered: %d  Paid: %d", wagered, paid) +
		pterm.Sprintfln("Best hand: %s", best.Result.Hand) +
		pterm.Sprintf("%s", round.CreditsText(credits))

	pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|SESSION|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(summary)
	pterm.Info.Printfln("Replay this session with --seed %d", seed)
}
