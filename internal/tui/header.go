package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title and version.
type HeaderModel struct {
	version string
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	title := titleStyle.Render("reducecalc")
	version := versionStyle.Render(h.version)
	gap := h.width - lipgloss.Width(title) - lipgloss.Width(version)
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + version
}
