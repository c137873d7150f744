package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/reducecalc/internal/ui"
)

// Style variables for the live calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	versionStyle  lipgloss.Style
	labelStyle    lipgloss.Style
	opStyle       lipgloss.Style
	activeOpStyle lipgloss.Style
	resultStyle   lipgloss.Style
	warningStyle  lipgloss.Style
	dimStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(9)

	opStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Padding(0, 1)

	activeOpStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info).
		Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Success)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
