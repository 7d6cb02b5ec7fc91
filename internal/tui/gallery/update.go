package gallery

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	galleryctl "github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		styles.ApplyMaxWidth(m.width)

		const minWidth = 60
		const minHeight = 16
		if m.width < minWidth || m.height < minHeight {
			m.setError(fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight))
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.clearError()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case DesignsChangedMsg:
		m.refresh()
		if m.viewMode == ViewConfirm && m.controller.Phase() == galleryctl.Idle {
			m.viewMode = ViewList
		}
		return m, waitForChangeCmd(m.changes)

	case WatchClosedMsg:
		m.changes = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m, nil
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	// Direct selection with number keys
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		if index < m.controller.Count() {
			m.cursor = index
		}
		return m, nil

	case "enter":
		selected, ok := m.GetSelectedDesign()
		if !ok {
			return m, nil
		}
		if err := m.controller.Handoff(m.ctx, selected); err != nil {
			m.setError("Could not open design: " + err.Error())
			return m, nil
		}
		m.loaded = &selected
		return m, tea.Quit

	case "d", "delete":
		selected, ok := m.GetSelectedDesign()
		if !ok {
			return m, nil
		}
		if err := m.controller.RequestDelete(selected.ID); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.viewMode = ViewConfirm
		return m, nil

	case "r":
		m.refresh()
		return m, nil

	case "?":
		m.viewMode = ViewHelp
		return m, nil

	case "x", "esc":
		if m.showError {
			m.clearError()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = ViewList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// handleConfirmKeys handles keys in the delete confirmation dialog
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.viewMode = ViewList
		if err := m.controller.Confirm(m.ctx); err != nil {
			m.setError("Delete failed: " + err.Error())
		}
		m.clampCursor()
		return m, nil

	case "n", "N", "esc":
		m.viewMode = ViewList
		if err := m.controller.Cancel(); err != nil {
			m.setError(err.Error())
		}
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}
