package gallery

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orbitlab/orbit/internal/catalog"
	galleryctl "github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/store"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderConfirmView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderListView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(styles.ErrorBanner.Render(m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(m.renderDesignList())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	title := styles.Title.Render("Designed By You")
	summary := styles.Muted.Render(m.controller.Summary())
	return styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, title, summary))
}

func (m Model) renderDesignList() string {
	designs := m.controller.Designs()
	if len(designs) == 0 {
		return m.renderEmptyState()
	}

	// Each item takes three lines; reserve room for header and footer.
	visible := (m.height - 10) / 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(designs) {
		end = len(designs)
	}

	var items []string
	if start > 0 {
		items = append(items, styles.Muted.Render("▲ More above"))
	}
	for i := start; i < end; i++ {
		items = append(items, m.renderDesignItem(i, designs[i], i == m.cursor))
	}
	if end < len(designs) {
		items = append(items, styles.Muted.Render("▼ More below"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m Model) renderDesignItem(index int, d store.Design, selected bool) string {
	number := fmt.Sprintf("%d.", index+1)

	line1 := fmt.Sprintf("%s %s  %s", number, styles.Bold.Render(d.Name), styles.Price.Render(d.Price.Display()))
	line2 := "   " + m.renderSwatches(d)
	line3 := "   " + styles.Muted.Render("Created "+galleryctl.FormatDate(d.CreatedAt))

	content := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
	if selected {
		return styles.SelectedItem.Render(content)
	}
	return styles.Item.Render(content)
}

func (m Model) renderSwatches(d store.Design) string {
	var parts []string
	for _, pc := range d.Customization.Colors() {
		parts = append(parts, styles.Swatch(pc.Value, m.useUnicode))
	}
	face := d.Customization.Face()
	if face.IsSkin() {
		parts = append(parts, styles.Muted.Render(catalog.Default().Name(face)+" skin"))
	}
	if d.Customization.Grips() {
		parts = append(parts, styles.Muted.Render("+ grips"))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderEmptyState() string {
	message := `No designs saved yet.

Create one in the lab:
  orbit lab`

	return styles.EmptyState.Render(message)
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓: navigate",
		"enter: edit in lab",
		"d: delete",
		"?: help",
	}
	if m.showError {
		hints = append(hints, "x: dismiss error")
	}
	hints = append(hints, "q: quit")

	return styles.Footer.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderHelpView() string {
	title := styles.Title.Render("Gallery Help")

	helpContent := `
  ↑/↓, j/k      Navigate up/down
  1-9           Jump to design by number
  Enter         Open the design in the lab
  d             Delete the design (asks first)
  r             Reload designs
  ?             Toggle this help
  q, Ctrl+C     Quit
`

	helpText := lipgloss.NewStyle().Padding(1, 2).Render(helpContent)
	footer := styles.Footer.Render("Press ? or Esc to close")

	return lipgloss.JoinVertical(lipgloss.Left, title, helpText, footer)
}

func (m Model) renderConfirmView() string {
	name := "this design"
	if id, ok := m.controller.Target(); ok {
		for _, d := range m.controller.Designs() {
			if d.ID == id {
				name = fmt.Sprintf("%q", d.Name)
				break
			}
		}
	}

	dialog := styles.Dialog.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			"Delete "+name+"?",
			"",
			styles.Muted.Render("This cannot be undone."),
			"",
			styles.Muted.Render("y = Yes    n = No    Esc = Cancel"),
		),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(dialog)
}
