package lab

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/parts"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/render"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

// View renders the current model state
func (m Model) View() string {
	switch m.mode {
	case modeSave:
		return m.renderSaveDialog()
	case modeHelp:
		return m.renderHelpView()
	default:
		return m.renderEditor()
	}
}

func (m Model) renderEditor() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.toast != "" {
		content.WriteString(styles.Toast.Render(m.toast))
		content.WriteString("\n")
	}
	if m.showError {
		content.WriteString(styles.ErrorBanner.Render(m.errorMsg))
		content.WriteString("\n")
	}

	left := m.renderPartList()
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPalette(),
		m.renderPricePanel(),
		m.renderPreview(),
	)
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	title := styles.Title.Render("Orbit Lab")
	subtitle := "Design your controller"
	if m.origin != "" {
		subtitle = "Editing " + m.origin
	}
	return styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, title, styles.Muted.Render(subtitle)))
}

func (m Model) renderPartList() string {
	var rows []string
	for i, p := range m.partList {
		var sample string
		if p.ID == parts.Grips {
			sample = "off"
			if m.state.Grips() {
				sample = "on"
			}
		} else {
			v, _ := m.state.Color(p.ID)
			sample = styles.Swatch(v, m.useUnicode) + " " + m.catalog.Name(v)
		}

		line := fmt.Sprintf("%-12s %s", p.NavLabel, sample)
		if i == m.partCursor {
			rows = append(rows, styles.SelectedItem.Render(line))
		} else {
			rows = append(rows, styles.Item.Render(line))
		}
	}
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderPalette() string {
	active := m.ActivePart()
	title := styles.Bold.Render(active.Label)

	if active.ID == parts.Grips {
		state := "Not installed"
		if m.state.Grips() {
			state = "Installed"
		}
		body := fmt.Sprintf("%s  (+%s)\n%s", state, pricing.GripsSurcharge.Display(), styles.Muted.Render("enter/g: toggle"))
		return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
	}

	entries := m.palette()
	current, _ := m.state.Color(active.ID)

	var (
		lines   []string
		line    []string
		lastRow = -1
	)
	for i, e := range entries {
		if e.Row != lastRow && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = nil
		}
		lastRow = e.Row

		cell := styles.Swatch(e.Value, m.useUnicode)
		switch {
		case i == m.paletteCursor:
			cell = "[" + cell + "]"
		case e.Value == current:
			cell = "(" + cell + ")"
		default:
			cell = " " + cell + " "
		}
		line = append(line, cell)
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}

	hovered := ""
	if m.paletteCursor >= 0 && m.paletteCursor < len(entries) {
		e := entries[m.paletteCursor]
		hovered = e.DisplayName
		if e.Value.IsSkin() {
			hovered += fmt.Sprintf("  (premium skin, +%s)", pricing.SkinFaceSurcharge.Display())
		}
	}

	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(lines, "\n"),
		styles.Muted.Render(hovered),
	))
}

func (m Model) renderPricePanel() string {
	q := pricing.QuoteFor(m.state)

	rows := []string{fmt.Sprintf("%-20s %10s", "Base controller", q.Base.Display())}
	for _, item := range q.AddOns.Items {
		rows = append(rows, fmt.Sprintf("%-20s %10s", item.Label, "+"+item.Amount.Display()))
	}
	rows = append(rows, styles.Price.Render(fmt.Sprintf("%-20s %10s", "Total", q.Total.Display())))

	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderPreview() string {
	attrs := render.Map(m.state)

	var rows []string
	for _, id := range parts.ColorIDs() {
		attr := attrs.Parts[id]
		override := "skin"
		if attr.ColorOverride != nil {
			override = *attr.ColorOverride
		}
		rows = append(rows, styles.Muted.Render(fmt.Sprintf("%-12s %-11s %s", id, attr.Material, override)))
	}
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓: part",
		"←/→: color",
		"enter: apply",
		"g: grips",
		"r: reset",
		"s: save",
		"?: help",
	}
	if m.showError {
		hints = append(hints, "x: dismiss")
	}
	hints = append(hints, "q: quit")
	return styles.Footer.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderSaveDialog() string {
	total := pricing.Total(m.state)
	dialog := styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Bold.Render("Save design"),
		"",
		m.nameInput.View(),
		"",
		styles.Muted.Render("Price "+total.Display()),
		styles.Muted.Render("enter = Save    esc = Cancel"),
	))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(dialog)
}

func (m Model) renderHelpView() string {
	title := styles.Title.Render("Lab Help")

	helpContent := `
  ↑/↓, j/k, tab   Choose the part to edit
  ←/→, h/l        Move through the palette
  Enter, Space    Apply the highlighted color (toggles grips)
  g               Toggle back grips
  r               Reset to the default design
  s               Save the design
  ?               Toggle this help
  q, Ctrl+C       Quit
`

	skins := make([]string, 0, 4)
	for _, e := range m.catalog.Skins() {
		skins = append(skins, e.DisplayName)
	}
	note := fmt.Sprintf("Skins (%s) are available on the %s only.", strings.Join(skins, ", "), skinPartsLabel(m.catalog))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Padding(1, 2).Render(helpContent),
		styles.Muted.Render("  "+note),
		styles.Footer.Render("Press ? or Esc to close"),
	)
}

func skinPartsLabel(c *catalog.Catalog) string {
	var labels []string
	for _, p := range parts.All() {
		if c.AcceptsSkins(p.ID) {
			labels = append(labels, strings.ToLower(p.Label))
		}
	}
	return strings.Join(labels, ", ")
}
