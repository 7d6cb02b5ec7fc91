package lab

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/store"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

type failingSaver struct{}

func (failingSaver) Create(context.Context, string, customization.State, pricing.Money) (store.Design, error) {
	return store.Design{}, orbiterrors.NewStorageError("write", store.DesignsKey, errors.New("quota exceeded"))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewFileSlot(filepath.Join(t.TempDir(), "designs.json")))
}

func TestStartsFromDefault(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	assert.True(t, m.State().Equal(customization.Default()))
	assert.Equal(t, parts.Face, m.ActivePart().ID)
	assert.Contains(t, m.View(), "$79.99")
}

func TestStartsFromInitialState(t *testing.T) {
	initial := customization.Default().WithGrips(true)
	m := NewModel(context.Background(), newStore(t), Options{Initial: &initial, OriginName: "Loaded"})

	assert.True(t, m.State().Grips())
	assert.Contains(t, m.View(), "Editing Loaded")
}

func TestApplySkinToFace(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	// The face palette starts with the skins; the default face sits among the solids.
	m.paletteCursor = 1
	m, _ = send(t, m, key("enter"))

	assert.Equal(t, "venom", m.State().Face().String())
	assert.Contains(t, m.View(), "Premium skin face")
	assert.Contains(t, m.View(), "$98.98")
}

func TestBodyPaletteHasNoSkins(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	m, _ = send(t, m, key("down"))
	assert.Equal(t, parts.Body, m.ActivePart().ID)
	for _, e := range m.palette() {
		assert.False(t, e.Value.IsSkin())
	}

	before := m.State()
	m, _ = send(t, m, key("right"), key("enter"))
	body, err := m.State().Color(parts.Body)
	require.NoError(t, err)
	prev, _ := before.Color(parts.Body)
	assert.NotEqual(t, prev, body)

	face, _ := m.State().Color(parts.Face)
	assert.Equal(t, before.Face(), face, "other parts are untouched")
}

func TestPaletteCursorFollowsCurrentValue(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	entries := m.palette()
	require.Less(t, m.paletteCursor, len(entries))
	assert.Equal(t, m.State().Face(), entries[m.paletteCursor].Value)
}

func TestGripsToggleAndReset(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	m, _ = send(t, m, key("g"))
	assert.True(t, m.State().Grips())
	assert.Contains(t, m.View(), "$88.98")

	m, _ = send(t, m, key("up"))
	assert.Equal(t, parts.Grips, m.ActivePart().ID)
	m, _ = send(t, m, key("enter"))
	assert.False(t, m.State().Grips())

	m, _ = send(t, m, key("g"), key("r"))
	assert.True(t, m.State().Equal(customization.Default()))
}

func TestSaveWithName(t *testing.T) {
	s := newStore(t)
	m := NewModel(context.Background(), s, Options{})

	m, _ = send(t, m, key("s"))
	assert.Equal(t, modeSave, m.mode)

	m, _ = send(t, m, typeText("Pink Pro")...)
	m, cmd := send(t, m, key("enter"))
	require.NotNil(t, cmd, "toast dismissal is scheduled")
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, `Saved "Pink Pro"`, m.Toast())
	assert.Empty(t, m.Error())

	designs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "Pink Pro", designs[0].Name)
	assert.Equal(t, "79.99", designs[0].Price.String())
	assert.Len(t, m.Saved(), 1)
}

func TestSaveBlankNameUsesDefault(t *testing.T) {
	s := newStore(t)
	m := NewModel(context.Background(), s, Options{})

	m, _ = send(t, m, key("s"), key("enter"))

	designs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, store.DefaultDesignName, designs[0].Name)
}

func TestSaveCancel(t *testing.T) {
	s := newStore(t)
	m := NewModel(context.Background(), s, Options{})

	m, _ = send(t, m, key("s"), key("esc"))
	assert.Equal(t, modeEdit, m.mode)

	designs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, designs)
}

func TestSaveFailureShowsBanner(t *testing.T) {
	m := NewModel(context.Background(), failingSaver{}, Options{})

	m, cmd := send(t, m, key("s"), key("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.Toast(), "no success notice when the save was not persisted")
	assert.Contains(t, m.Error(), "Save failed")

	m, _ = send(t, m, key("x"))
	assert.Empty(t, m.Error())
}

func TestToastExpires(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	m, _ = send(t, m, key("s"), key("enter"))
	first := m.toastID
	m, _ = send(t, m, key("s"), key("enter"))
	require.NotEmpty(t, m.Toast())

	// A stale timer from the first save must not hide the second toast.
	m, _ = send(t, m, toastExpiredMsg{id: first})
	assert.NotEmpty(t, m.Toast())

	m, _ = send(t, m, toastExpiredMsg{id: m.toastID})
	assert.Empty(t, m.Toast())
}

func TestHelpView(t *testing.T) {
	m := NewModel(context.Background(), newStore(t), Options{})

	m, _ = send(t, m, key("?"))
	view := m.View()
	assert.Contains(t, view, "Lab Help")
	assert.Contains(t, view, "face only")

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, modeEdit, m.mode)
}

func TestPreviewShowsRenderAttributes(t *testing.T) {
	initial, err := customization.Set(customization.Default(), parts.Face, catalog.MustParse("panda"))
	require.NoError(t, err)
	m := NewModel(context.Background(), newStore(t), Options{Initial: &initial})

	view := m.View()
	assert.Contains(t, view, "panda")
	assert.Contains(t, view, "#e84c7e")
}
