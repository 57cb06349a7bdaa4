package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/scoring"
)

// ScoreCmd scores a single hand
type ScoreCmd struct {
	Hand       []string `arg:"" optional:"" help:"Five cards, e.g. 'As Ks Qs Js Ts' or AsKsQsJsTs"`
	Bet        int      `short:"b" default:"1" help:"Credits bet (1-5)"`
	Paytable   bool     `help:"Print the paytable for the bet"`
	RoyalFlush string   `help:"Royal flush rule: hearts or any" env:"VIDEOPOKER_ROYAL_FLUSH"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.RoyalFlush != "" {
		cfg.Game.RoyalFlush = c.RoyalFlush
	}
	mode, err := cfg.RoyalMode()
	if err != nil {
		return err
	}

	if c.Paytable {
		if err := printPaytable(c.Bet); err != nil {
			return err
		}
	}
	if len(c.Hand) == 0 {
		if c.Paytable {
			return nil
		}
		return errors.New("no hand given")
	}

	sc, err := scoreHand(strings.Join(c.Hand, " "), c.Bet, mode)
	if err != nil {
		return err
	}

	pterm.DefaultBox.
		WithTitle(pterm.LightGreen("|SCORE|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(pterm.Sprintfln("Hand: %s", sc.pretty) +
			pterm.Sprintfln("Result: %s", sc.result) +
			pterm.Sprintf("Reference: %s", sc.reference))
	return nil
}

type scored struct {
	pretty    string
	result    scoring.Result
	reference string
}

// scoreHand parses and scores a hand string
func scoreHand(hand string, bet int, mode scoring.RoyalMode) (scored, error) {
	cards, err := deck.ParseCards(hand)
	if err != nil {
		return scored{}, err
	}

	evaluator := scoring.NewEvaluator(scoring.WithRoyalMode(mode))
	result, err := evaluator.CalculateScore(cards, bet)
	if err != nil {
		return scored{}, err
	}

	reference, err := scoring.Describe(cards)
	if err != nil {
		return scored{}, fmt.Errorf("describing hand: %w", err)
	}

	pretty := make([]string, len(cards))
	for i, card := range cards {
		pretty[i] = card.Pretty()
	}

	return scored{
		pretty:    strings.Join(pretty, " "),
		result:    result,
		reference: reference,
	}, nil
}

func printPaytable(bet int) error {
	if bet < scoring.MinBet || bet > scoring.MaxBet {
		return fmt.Errorf("%w: %d", scoring.ErrInvalidBet, bet)
	}

	data := pterm.TableData{{"Hand", "Multiplier", fmt.Sprintf("Pays at bet %d", bet)}}
	for _, row := range scoring.Paytable() {
		data = append(data, []string{
			row.Name,
			fmt.Sprintf("%dx", row.Multiplier),
			fmt.Sprintf("%d", row.Category.Payout(bet)),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
