package lab

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		styles.ApplyMaxWidth(m.width)
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSave:
			return m.handleSaveKeys(msg)
		case modeHelp:
			return m.handleHelpKeys(msg)
		default:
			return m.handleEditKeys(msg)
		}
	}

	if m.mode == modeSave {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k", "shift+tab":
		m.partCursor = (m.partCursor - 1 + len(m.partList)) % len(m.partList)
		m.syncPaletteCursor()
		return m, nil

	case "down", "j", "tab":
		m.partCursor = (m.partCursor + 1) % len(m.partList)
		m.syncPaletteCursor()
		return m, nil

	case "left", "h":
		if n := len(m.palette()); n > 0 {
			m.paletteCursor = (m.paletteCursor - 1 + n) % n
		}
		return m, nil

	case "right", "l":
		if n := len(m.palette()); n > 0 {
			m.paletteCursor = (m.paletteCursor + 1) % n
		}
		return m, nil

	case "enter", " ":
		if m.ActivePart().ID == parts.Grips {
			m.state = m.state.WithGrips(!m.state.Grips())
			return m, nil
		}
		m.applyPaletteSelection()
		return m, nil

	case "g":
		m.state = m.state.WithGrips(!m.state.Grips())
		return m, nil

	case "r":
		m.state = customization.Reset(m.state)
		m.syncPaletteCursor()
		return m, nil

	case "s":
		m.mode = modeSave
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()

	case "?":
		m.mode = modeHelp
		return m, nil

	case "x", "esc":
		if m.showError {
			m.clearError()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyPaletteSelection() {
	entries := m.palette()
	if m.paletteCursor < 0 || m.paletteCursor >= len(entries) {
		return
	}
	next, err := customization.Set(m.state, m.ActivePart().ID, entries[m.paletteCursor].Value)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.state = next
}

func (m Model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeEdit
		m.nameInput.Blur()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.mode = modeEdit
		m.nameInput.Blur()
		return m.save(m.nameInput.Value())
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeEdit
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// save persists the current configuration synchronously so the toast and the
// store never disagree.
func (m Model) save(name string) (tea.Model, tea.Cmd) {
	design, err := m.saver.Create(m.ctx, name, m.state, pricing.Total(m.state))
	if err != nil {
		m.log.Error(err, "save failed")
		m.toast = ""
		m.setError("Save failed, design was not stored: " + err.Error())
		return m, nil
	}

	m.clearError()
	m.saved = append(m.saved, design)
	m.toastID++
	m.toast = fmt.Sprintf("Saved %q", design.Name)

	id := m.toastID
	return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
