package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/reducecalc/internal/calculator"
	"github.com/agbru/reducecalc/internal/reduction"
)

func strategies() []reduction.Strategy {
	return []reduction.Strategy{reduction.Sum{}, reduction.Product{}}
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: t})
	return next.(Model), cmd
}

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"NextOp", km.NextOp},
		{"PrevOp", km.PrevOp},
		{"Clear", km.Clear},
		{"Help", km.Help},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}

	if len(km.ShortHelp()) == 0 || len(km.FullHelp()) == 0 {
		t.Error("help views should list bindings")
	}
}

func TestModel_RecomputesOnKeystroke(t *testing.T) {
	m := NewModel(calculator.New(), strategies(), "test")
	if !m.Evaluation().ShortCircuit {
		t.Error("initial empty input should short-circuit")
	}

	m = typeText(m, "2, 3, 4")
	if got := m.Evaluation().Result; got != 9 {
		t.Errorf("sum result = %v, want 9", got)
	}

	m, _ = press(m, tea.KeyBackspace)
	if got := m.Evaluation().Result; got != 5 {
		t.Errorf("after backspace result = %v, want 5", got)
	}
}

func TestModel_CyclesStrategies(t *testing.T) {
	m := typeText(NewModel(calculator.New(), strategies(), "test"), "2,3,4")

	m, _ = press(m, tea.KeyTab)
	if got := m.Evaluation(); got.Strategy != "product" || got.Result != 24 {
		t.Errorf("after tab: %s = %v, want product = 24", got.Strategy, got.Result)
	}

	m, _ = press(m, tea.KeyTab)
	if got := m.Evaluation().Strategy; got != "sum" {
		t.Errorf("tab should wrap around to sum, got %s", got)
	}

	m, _ = press(m, tea.KeyShiftTab)
	if got := m.Evaluation().Strategy; got != "product" {
		t.Errorf("shift+tab from sum should select product, got %s", got)
	}
}

func TestModel_StartsFromCalculatorStrategy(t *testing.T) {
	calc := calculator.New(calculator.WithStrategy(reduction.Product{}), calculator.WithSeparator(';'))
	m := typeText(NewModel(calc, strategies(), "test"), "2;5")
	if got := m.Evaluation(); got.Strategy != "product" || got.Result != 10 {
		t.Errorf("got %s = %v, want product = 10", got.Strategy, got.Result)
	}
}

func TestModel_ClearAndQuit(t *testing.T) {
	m := typeText(NewModel(calculator.New(), strategies(), "test"), "1,2")

	m, _ = press(m, tea.KeyCtrlL)
	if !m.Evaluation().ShortCircuit {
		t.Error("clear should empty the input")
	}

	_, cmd := press(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestModel_View(t *testing.T) {
	m := typeText(NewModel(calculator.New(), strategies(), "v1.2.3"), "1,x,2")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := next.(Model).View()

	for _, want := range []string{"reducecalc", "v1.2.3", "[sum]", "product", "result", "3", `["x"]`} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
