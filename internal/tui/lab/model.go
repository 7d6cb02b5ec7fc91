// Package lab is the interactive controller editor.
package lab

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/logger"
	"github.com/orbitlab/orbit/internal/parts"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/store"
)

// ToastDuration is how long the save confirmation stays visible.
const ToastDuration = 3 * time.Second

// Saver persists a finished design.
type Saver interface {
	Create(ctx context.Context, name string, state customization.State, price pricing.Money) (store.Design, error)
}

type mode int

const (
	modeEdit mode = iota
	modeSave
	modeHelp
)

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	id int
}

// Model is the lab view model.
type Model struct {
	ctx     context.Context
	saver   Saver
	catalog *catalog.Catalog
	log     *logger.Logger

	state    customization.State
	partList []parts.Part

	partCursor    int
	paletteCursor int

	mode      mode
	nameInput textinput.Model

	toast   string
	toastID int

	showError bool
	errorMsg  string

	// Name of the design the session was loaded from, if any.
	origin string
	saved  []store.Design

	width      int
	height     int
	useUnicode bool
}

// Options tunes the lab model.
type Options struct {
	// Initial replaces the default configuration, e.g. a design loaded from the gallery.
	Initial    *customization.State
	OriginName string
	Logger     *logger.Logger
	UseUnicode bool
}

// NewModel creates a lab session.
func NewModel(ctx context.Context, saver Saver, opts Options) Model {
	input := textinput.New()
	input.Placeholder = store.DefaultDesignName
	input.CharLimit = 120
	input.Width = 40

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	state := customization.Default()
	if opts.Initial != nil {
		state = *opts.Initial
	}

	m := Model{
		ctx:        ctx,
		saver:      saver,
		catalog:    catalog.Default(),
		log:        log,
		state:      state,
		partList:   parts.All(),
		nameInput:  input,
		origin:     opts.OriginName,
		width:      80,
		height:     24,
		useUnicode: opts.UseUnicode,
	}
	m.syncPaletteCursor()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the configuration being edited.
func (m Model) State() customization.State {
	return m.state
}

// ActivePart returns the part under the cursor.
func (m Model) ActivePart() parts.Part {
	return m.partList[m.partCursor]
}

// Saved lists the designs saved during this session.
func (m Model) Saved() []store.Design {
	out := make([]store.Design, len(m.saved))
	copy(out, m.saved)
	return out
}

// Toast returns the visible save confirmation, if any.
func (m Model) Toast() string {
	return m.toast
}

// Error returns the visible failure notice, if any.
func (m Model) Error() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

// palette returns the entries selectable for the active part; nil for grips.
func (m Model) palette() []catalog.Entry {
	part := m.ActivePart().ID
	if !part.IsColor() {
		return nil
	}
	entries, err := m.catalog.ForPart(part)
	if err != nil {
		return nil
	}
	return entries
}

// syncPaletteCursor points the palette cursor at the active part's value.
func (m *Model) syncPaletteCursor() {
	m.paletteCursor = 0
	part := m.ActivePart().ID
	current, err := m.state.Color(part)
	if err != nil {
		return
	}
	for i, e := range m.palette() {
		if e.Value == current {
			m.paletteCursor = i
			return
		}
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
