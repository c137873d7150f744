package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/reducecalc/internal/calculator"
	apperrors "github.com/agbru/reducecalc/internal/errors"
	"github.com/agbru/reducecalc/internal/format"
	"github.com/agbru/reducecalc/internal/reduction"
)

// Layout constants for the live calculator.
const (
	defaultWidth = 60
	minWidth     = 30
)

// Model is the root bubbletea model of the live calculator. The result is
// recomputed from the input field on every keystroke.
type Model struct {
	header HeaderModel
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	calc       *calculator.Calculator
	strategies []reduction.Strategy
	opIndex    int
	eval       calculator.Evaluation

	width int
}

// NewModel creates a live calculator starting from calc. The tab key cycles
// through strategies; calc's own strategy is selected first.
func NewModel(calc *calculator.Calculator, strategies []reduction.Strategy, version string) Model {
	current := calc.Strategy()
	opIndex := -1
	for i, s := range strategies {
		if s.Name() == current.Name() {
			opIndex = i
			break
		}
	}
	if opIndex < 0 {
		strategies = append([]reduction.Strategy{current}, strategies...)
		opIndex = 0
	}

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "1, 2, 3"
	input.Focus()

	m := Model{
		header:     NewHeaderModel(version),
		input:      input,
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		calc:       calc,
		strategies: strategies,
		opIndex:    opIndex,
	}
	m.resize(defaultWidth)
	m.recompute()
	return m
}

// Evaluation returns the breakdown of the current input.
func (m Model) Evaluation() calculator.Evaluation {
	return m.eval
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextOp):
		m.selectOp(m.opIndex + 1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevOp):
		m.selectOp(m.opIndex - 1)
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.input.Reset()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.recompute()
	return m, cmd
}

func (m *Model) selectOp(i int) {
	n := len(m.strategies)
	m.opIndex = ((i % n) + n) % n
	m.calc = m.calc.With(calculator.WithStrategy(m.strategies[m.opIndex]))
	m.recompute()
}

func (m *Model) recompute() {
	m.eval = m.calc.Evaluate(m.input.Value())
}

func (m *Model) resize(width int) {
	if width < minWidth {
		width = minWidth
	}
	m.width = width
	m.header.SetWidth(width)
	m.help.Width = width
	m.input.Width = width - 12
}

// View renders the calculator.
func (m Model) View() string {
	ops := make([]string, len(m.strategies))
	for i, s := range m.strategies {
		if i == m.opIndex {
			ops[i] = activeOpStyle.Render("[" + s.Name() + "]")
		} else {
			ops[i] = opStyle.Render(s.Name())
		}
	}

	rows := []string{
		labelStyle.Render("op") + lipgloss.JoinHorizontal(lipgloss.Top, ops...),
		labelStyle.Render("sep") + format.DescribeSeparator(m.calc.Separator()),
		labelStyle.Render("input") + m.input.View(),
		"",
		labelStyle.Render("result") + resultStyle.Render(format.FormatNumber(m.eval.Result)),
		labelStyle.Render("tokens") + m.tokenSummary(),
	}

	panel := panelStyle.Width(m.width - 2).Render(strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panel, m.help.View(m.keymap))
}

func (m Model) tokenSummary() string {
	if m.eval.ShortCircuit {
		return dimStyle.Render("empty input")
	}
	summary := fmt.Sprintf("%d parsed, %d dropped", m.eval.Parsed(), m.eval.Dropped)
	if len(m.eval.Coerced) == 0 {
		return dimStyle.Render(summary)
	}
	return dimStyle.Render(summary+", ") +
		warningStyle.Render(fmt.Sprintf("%d as 0: %s", len(m.eval.Coerced), format.QuoteTokens(m.eval.Coerced)))
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, calc *calculator.Calculator, strategies []reduction.Strategy, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(calc, strategies, version), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
