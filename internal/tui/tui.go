// Package tui renders a video poker session in the terminal with bubbletea.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/videopoker/internal/deck"
	"github.com/lox/videopoker/internal/round"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/muesli/termenv"
)

// TickInterval is how often the controller is ticked while the program runs
const TickInterval = 50 * time.Millisecond

// TickMsg drives the controller's automatic transitions
type TickMsg time.Time

// Model represents the Bubble Tea model for a video poker session
type Model struct {
	controller *round.Controller
	panel      *Panel
	logger     *log.Logger

	keys        keyMap
	help        help.Model
	history     viewport.Model
	showTable   bool
	reference   string
	status      string
	quitting    bool
	width       int
	height      int
	historySize int
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the model's logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger.WithPrefix("tui")
	}
}

// WithColorProfile forces a colour profile, e.g. termenv.Ascii for plain
// output. The profile is global to lipgloss.
func WithColorProfile(profile termenv.Profile) Option {
	return func(*Model) {
		lipgloss.SetColorProfile(profile)
	}
}

// New creates a model for a controller whose display is panel
func New(controller *round.Controller, panel *Panel, opts ...Option) *Model {
	vp := viewport.New(60, 6)
	vp.SetContent("")

	m := &Model{
		controller: controller,
		panel:      panel,
		logger:     log.New(io.Discard),
		keys:       defaultKeyMap(),
		help:       help.New(),
		history:    vp,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the tick loop
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if err := m.controller.Tick(); err != nil {
			m.logger.Error("Tick failed", "error", err)
			m.status = err.Error()
		}
		m.refresh()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.Width = max(msg.Width-4, 1)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showTable = !m.showTable
		return nil
	case key.Matches(msg, m.keys.Start):
		m.accepted("start", m.controller.OnStartPressed())
	case key.Matches(msg, m.keys.Deal):
		m.accepted("deal/draw", m.controller.OnDrawPressed())
	case key.Matches(msg, m.keys.Bet):
		m.accepted("bet", m.controller.OnBetAdjustPressed())
	default:
		for slot, binding := range m.keys.Hold {
			if !key.Matches(msg, binding) {
				continue
			}
			ok, err := m.controller.OnHoldToggled(slot)
			if err != nil {
				m.logger.Error("Hold failed", "slot", slot, "error", err)
				return nil
			}
			m.accepted("hold", ok)
		}
	}

	// Settle the automatic states now rather than waiting for the next tick
	if err := m.controller.Advance(); err != nil {
		m.logger.Error("Advance failed", "error", err)
		m.status = err.Error()
	}
	m.refresh()
	return nil
}

func (m *Model) accepted(action string, ok bool) {
	if !ok {
		m.status = fmt.Sprintf("Can't %s right now", action)
		m.logger.Debug("Input ignored", "action", action, "state", m.controller.State())
	}
}

// refresh rebuilds the history pane and the reference description after
// each completed round.
func (m *Model) refresh() {
	records := m.controller.History()
	if len(records) == m.historySize {
		return
	}
	m.historySize = len(records)

	lines := make([]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		lines = append(lines, records[i].String())
	}
	m.history.SetContent(strings.Join(lines, "\n"))
	m.history.GotoTop()

	m.reference = ""
	if len(records) > 0 {
		last := records[len(records)-1]
		if desc, err := scoring.Describe(last.Final[:]); err == nil {
			m.reference = desc
		}
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("VIDEO POKER"))
	b.WriteString("  ")
	b.WriteString(CreditsStyle.Render(round.CreditsText(m.panel.Credits())))
	b.WriteString("\n\n")

	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(WinningsStyle.Render(m.panel.Winnings()))
	if m.reference != "" {
		b.WriteString("  ")
		b.WriteString(InfoStyle.Render("(" + m.reference + ")"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.showTable {
		b.WriteString("\n")
		b.WriteString(PaneStyle.Render(m.renderPaytable()))
		b.WriteString("\n")
	}

	if m.historySize > 0 {
		b.WriteString("\n")
		b.WriteString(PaneStyle.Render(m.history.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderCards() string {
	boxes := make([]string, round.HandSize)
	for i := range round.HandSize {
		face := CardBackStyle.Render("░░")
		if card := m.panel.Card(i); card != nil {
			face = formatCard(*card)
		}

		style := CardBoxStyle
		marker := InfoStyle.Render(fmt.Sprintf("%d", i+1))
		if m.panel.Held(i) {
			style = HeldCardBoxStyle
			marker = HeldStyle.Render("HELD")
		}

		boxes[i] = lipgloss.JoinVertical(lipgloss.Center, style.Render(face), marker)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// formatCard formats a card with its suit colour
func formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.Pretty())
	}
	return BlackCardStyle.Render(card.Pretty())
}

func (m *Model) renderButtons() string {
	buttons := []round.Button{round.StartButton, round.DrawButton, round.BetButton}
	rendered := make([]string, len(buttons))
	for i, button := range buttons {
		state := m.panel.Button(button)
		if state.Enabled {
			rendered[i] = ButtonStyle.Render(state.Label)
		} else {
			rendered[i] = DisabledButtonStyle.Render(state.Label)
		}
	}
	return strings.Join(rendered, " ")
}

// renderPaytable lists the paytable with the payout for the current bet
func (m *Model) renderPaytable() string {
	bet := m.controller.Bet()

	var b strings.Builder
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%-18s %6s", "Hand", round.BetLabel(bet))))
	for _, row := range scoring.Paytable() {
		b.WriteString("\n")
		line := fmt.Sprintf("%-18s %6d", row.Name, row.Category.Payout(bet))
		if row.Category == m.controller.LastResult().Category {
			b.WriteString(PaytableHighlightStyle.Render(line))
		} else {
			b.WriteString(PaytableStyle.Render(line))
		}
	}
	return b.String()
}
