package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/randutil"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (*Model, *round.Controller, *Panel) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	panel := NewPanel()
	ctrl := round.New(deck.New(randutil.New(42)), scoring.NewEvaluator(), panel, round.WithLogger(logger))
	m := New(ctrl, panel, WithLogger(logger), WithColorProfile(termenv.Ascii))
	return m, ctrl, panel
}

func press(m *Model, keys string) tea.Cmd {
	return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func TestModelSessionFlow(t *testing.T) {
	m, ctrl, panel := newTestModel(t)

	_, cmd := m.Update(TickMsg{})
	require.NotNil(t, cmd, "ticks reschedule themselves")
	assert.Equal(t, round.WaitingToStart, ctrl.State())

	press(m, "s")
	assert.Equal(t, round.SetBets, ctrl.State())
	assert.Equal(t, round.StartingCredits, panel.Credits())
	assert.Equal(t, round.LabelRestart, panel.Button(round.StartButton).Label)

	press(m, "b")
	press(m, "b")
	assert.Equal(t, 3, ctrl.Bet())
	assert.Equal(t, "BET 3", panel.Button(round.BetButton).Label)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, round.WaitingToDraw, ctrl.State())
	assert.Equal(t, round.StartingCredits-3, panel.Credits())
	assert.False(t, panel.Button(round.BetButton).Enabled)
	for i := range round.HandSize {
		require.NotNil(t, panel.Card(i))
	}
	dealt := *panel.Card(0)

	press(m, "1")
	assert.True(t, panel.Held(0))
	assert.True(t, ctrl.Holds()[0])

	press(m, "d")
	assert.Equal(t, round.SetBets, ctrl.State())
	assert.Equal(t, dealt, *panel.Card(0), "held card survives the draw")
	assert.Equal(t, ctrl.Credits(), panel.Credits())
	assert.Equal(t, round.LabelDeal, panel.Button(round.DrawButton).Label)
	assert.NotEqual(t, round.WelcomeText, panel.Winnings())
	assert.Equal(t, 1, m.historySize)
	assert.NotEmpty(t, m.reference)

	view := m.View()
	assert.Contains(t, view, round.CreditsText(ctrl.Credits()))
	assert.Contains(t, view, "#1 bet 3")
}

func TestModelIgnoredInput(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m.Update(TickMsg{})

	press(m, "d")
	assert.Equal(t, round.WaitingToStart, ctrl.State())
	assert.Contains(t, m.status, "Can't")

	press(m, "3")
	assert.Equal(t, round.WaitingToStart, ctrl.State())

	press(m, "s")
	assert.Empty(t, m.status)
}

func TestModelPaytableToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(TickMsg{})

	assert.NotContains(t, m.View(), "Royal Flush!")
	press(m, "?")
	assert.Contains(t, m.View(), "Royal Flush!")
	press(m, "?")
	assert.NotContains(t, m.View(), "Royal Flush!")
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.View())
}

func TestPanel(t *testing.T) {
	p := NewPanel()

	assert.Equal(t, round.WelcomeText, p.Winnings())
	assert.Equal(t, ButtonState{Label: round.LabelStart, Enabled: true}, p.Button(round.StartButton))
	assert.False(t, p.Button(round.DrawButton).Enabled)

	card := deck.NewCard(deck.Ace, deck.Hearts)
	p.SetCard(2, &card)
	card.Rank = deck.Two
	require.NotNil(t, p.Card(2))
	assert.Equal(t, deck.Ace, p.Card(2).Rank, "panel keeps its own copy")

	p.SetHold(2, true)
	p.SetWinnings(5, "Jacks or Better!")
	assert.Equal(t, "Jacks or Better! You Won 5 Credits!", p.Winnings())

	// Out of range slots are ignored
	p.SetCard(7, &card)
	p.SetHold(-1, true)

	p.Reset()
	assert.Nil(t, p.Card(2))
	assert.False(t, p.Held(2))
	assert.Equal(t, round.WelcomeText, p.Winnings())
}
