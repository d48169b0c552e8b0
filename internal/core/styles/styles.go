// Package styles provides the lipgloss styles used by seqmark's CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle  lipgloss.Style
	TitleStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	DividerStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	TableHeaderStyle lipgloss.Style
	TableCellStyle   lipgloss.Style
	TableBorderStyle lipgloss.Style

	InactiveStyle lipgloss.Style
	SelectedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Surface)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	InactiveStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	SelectedStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Primary).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// NormalizeHex expands a #rgb or #rrggbb color to lowercase #rrggbb. The
// second result is false when hex is not a color.
func NormalizeHex(hex string) (string, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Swatch renders a small block filled with the label color hex. Text on the
// block is black or white, whichever reads better.
func Swatch(hex string) string {
	norm, ok := NormalizeHex(hex)
	if !ok {
		return MutedStyle.Render(" ?? ")
	}

	c, _ := colorful.Hex(norm)
	fg := lipgloss.Color("#ffffff")
	if _, _, l := c.Hcl(); l > 0.6 {
		fg = "#000000"
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(norm)).
		Foreground(fg).
		Render(" " + norm + " ")
}

// LabelStyle returns a foreground style for text drawn in a label color.
func LabelStyle(hex string, active bool) lipgloss.Style {
	if !active {
		return InactiveStyle
	}
	norm, ok := NormalizeHex(hex)
	if !ok {
		return TableCellStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(norm))
}
