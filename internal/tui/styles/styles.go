// Package styles holds the lipgloss palette shared by the lab and gallery views.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orbitlab/orbit/internal/catalog"
)

var (
	// Colors
	PrimaryColor    = lipgloss.Color("212") // Pink
	SuccessColor    = lipgloss.Color("42")  // Green
	WarningColor    = lipgloss.Color("226") // Yellow
	ErrorColor      = lipgloss.Color("196") // Red
	MutedColor      = lipgloss.Color("245") // Gray
	AccentColor     = lipgloss.Color("99")  // Purple
	BackgroundColor = lipgloss.Color("235") // Dark gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		PaddingLeft(2).
		PaddingRight(2)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(MutedColor).
		PaddingBottom(1).
		MarginBottom(1)

	Item = lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingRight(2)

	SelectedItem = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(2).
			Foreground(PrimaryColor).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(AccentColor)

	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Bold  = lipgloss.NewStyle().Bold(true)
	Price = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)

	Footer = lipgloss.NewStyle().
		Foreground(MutedColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(MutedColor).
		PaddingTop(1).
		MarginTop(1)

	ErrorBanner = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(lipgloss.Color("52")). // Dark red background
			Bold(true).
			Padding(0, 2).
			MarginBottom(1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ErrorColor)

	Toast = lipgloss.NewStyle().
		Foreground(SuccessColor).
		Background(lipgloss.Color("22")).
		Bold(true).
		Padding(0, 2).
		MarginBottom(1)

	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(0, 1)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(WarningColor).
		Padding(1, 2).
		Width(50).
		Align(lipgloss.Center)

	EmptyState = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Align(lipgloss.Center).
			PaddingTop(2).
			PaddingBottom(2)

	skinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(AccentColor).
			Bold(true)
)

// Swatch renders a small sample of v: a colored block for solids, an
// abbreviated badge for skins.
func Swatch(v catalog.Value, useUnicode bool) string {
	switch v.Kind() {
	case catalog.KindSolid:
		block := "  "
		if useUnicode {
			block = "██"
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(v.String())).Background(lipgloss.Color(v.String())).Render(block)
	case catalog.KindSkin:
		key := strings.ToUpper(v.String())
		if len(key) > 2 {
			key = key[:2]
		}
		return skinStyle.Render(key)
	default:
		return Muted.Render("??")
	}
}

// ApplyMaxWidth constrains the width-sensitive styles to the terminal.
func ApplyMaxWidth(width int) {
	if width <= 4 {
		return
	}
	Item = Item.MaxWidth(width - 4)
	SelectedItem = SelectedItem.MaxWidth(width - 4)
	Header = Header.Width(width - 2)
	Footer = Footer.Width(width - 2)
}
