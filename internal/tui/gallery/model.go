// Package gallery is the full-screen view of saved designs.
package gallery

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	galleryctl "github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/store"
)

// Model is the gallery view model
type Model struct {
	ctx        context.Context
	controller *galleryctl.Controller
	changes    <-chan struct{}

	// UI state
	viewMode ViewMode
	cursor   int

	showError bool
	errorMsg  string

	// Set when a design was handed to the lab.
	loaded *store.Design

	width      int
	height     int
	useUnicode bool
}

// Options tunes the gallery model.
type Options struct {
	// Changes signals external modifications of the collection. Optional.
	Changes    <-chan struct{}
	UseUnicode bool
}

// NewModel creates the gallery model and loads the initial collection.
func NewModel(ctx context.Context, controller *galleryctl.Controller, opts Options) Model {
	m := Model{
		ctx:        ctx,
		controller: controller,
		changes:    opts.Changes,
		viewMode:   ViewList,
		width:      80,
		height:     24,
		useUnicode: opts.UseUnicode,
	}
	m.refresh()
	return m
}

// Init starts listening for external changes
func (m Model) Init() tea.Cmd {
	return waitForChangeCmd(m.changes)
}

// Loaded returns the design handed to the lab, if the user picked one.
func (m Model) Loaded() (store.Design, bool) {
	if m.loaded == nil {
		return store.Design{}, false
	}
	return *m.loaded, true
}

// GetViewMode returns the current view mode
func (m Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Cursor returns the selected row.
func (m Model) Cursor() int {
	return m.cursor
}

// GetSelectedDesign returns the design under the cursor
func (m Model) GetSelectedDesign() (store.Design, bool) {
	designs := m.controller.Designs()
	if m.cursor < 0 || m.cursor >= len(designs) {
		return store.Design{}, false
	}
	return designs[m.cursor], true
}

func (m *Model) refresh() {
	if err := m.controller.Refresh(m.ctx); err != nil {
		m.setError("Could not load designs: " + err.Error())
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.controller.Count()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	n := m.controller.Count()
	if n == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = n - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	n := m.controller.Count()
	if n == 0 {
		return
	}
	m.cursor++
	if m.cursor >= n {
		m.cursor = 0
	}
}

func (m *Model) setError(msg string) {
	m.showError = true
	m.errorMsg = msg
}

func (m *Model) clearError() {
	m.showError = false
	m.errorMsg = ""
}
