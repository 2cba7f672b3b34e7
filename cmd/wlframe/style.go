package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// outputStyles colours labelled CLI output. The renderer drops colour when w
// is not a terminal.
type outputStyles struct {
	label lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
}

func newOutputStyles(w io.Writer) outputStyles {
	r := lipgloss.NewRenderer(w)
	return outputStyles{
		label: r.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		value: r.NewStyle().Foreground(lipgloss.Color("15")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
