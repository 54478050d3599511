package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colours shared with the rest of the palette.
var (
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourError   = lipgloss.Color("#F38BA8")
	colourMuted   = lipgloss.Color("#6C7086")
	colourPrimary = lipgloss.Color("#7C3AED")
)

// outputStyles holds styles bound to a specific writer.
// Writers that are not terminals get plain text.
type outputStyles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
}

func newOutputStyles(w io.Writer) *outputStyles {
	r := lipgloss.NewRenderer(w)
	return &outputStyles{
		Success: r.NewStyle().Foreground(colourSuccess).Bold(true),
		Failure: r.NewStyle().Foreground(colourError).Bold(true),
		Muted:   r.NewStyle().Foreground(colourMuted),
		Header:  r.NewStyle().Foreground(colourPrimary).Bold(true),
	}
}
