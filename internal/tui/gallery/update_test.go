package gallery

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlab/orbit/internal/customization"
	galleryctl "github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/store"
)

type fixture struct {
	store   *store.Store
	handoff *store.Handoff
	designs []store.Design
}

func newFixture(t *testing.T, names ...string) fixture {
	t.Helper()
	dir := t.TempDir()
	s := store.New(store.NewFileSlot(filepath.Join(dir, "designs.json")))
	h := store.NewHandoff(store.NewFileSlot(filepath.Join(dir, "handoff.json")), time.Minute, nil)

	f := fixture{store: s, handoff: h}
	for _, name := range names {
		d, err := s.Create(context.Background(), name, customization.Default(), pricing.BasePrice)
		require.NoError(t, err)
		f.designs = append(f.designs, d)
	}
	return f
}

func (f fixture) model(opts Options) Model {
	ctl := galleryctl.NewController(f.store, f.handoff, nil)
	return NewModel(context.Background(), ctl, opts)
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
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
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

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := newFixture(t).model(Options{})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.False(t, m.showError)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, m.showError)
	assert.Contains(t, m.errorMsg, "Terminal too small")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.False(t, m.showError)
}

func TestNavigationWraps(t *testing.T) {
	m := newFixture(t, "a", "b", "c").model(Options{})

	m, _ = send(t, m, key("up"))
	assert.Equal(t, 2, m.Cursor())
	m, _ = send(t, m, key("down"))
	assert.Equal(t, 0, m.Cursor())
	m, _ = send(t, m, key("2"))
	assert.Equal(t, 1, m.Cursor())
	m, _ = send(t, m, key("9"))
	assert.Equal(t, 1, m.Cursor(), "out of range number keys are ignored")
}

func TestDeleteConfirmFlow(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	m := f.model(Options{})

	m, _ = send(t, m, key("down"), key("d"))
	assert.Equal(t, ViewConfirm, m.GetViewMode())
	assert.Contains(t, m.View(), `Delete "b"?`)

	m, _ = send(t, m, key("y"))
	assert.Equal(t, ViewList, m.GetViewMode())

	designs, err := f.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, designs, 2)
	assert.Equal(t, f.designs[0].ID, designs[0].ID)
	assert.Equal(t, f.designs[2].ID, designs[1].ID)
	assert.Contains(t, m.View(), "2 designs saved")
}

func TestDeleteCancelKeepsDesign(t *testing.T) {
	f := newFixture(t, "only")
	m := f.model(Options{})

	m, _ = send(t, m, key("d"), key("n"))
	assert.Equal(t, ViewList, m.GetViewMode())

	designs, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, designs, 1)

	m, _ = send(t, m, key("d"), key("esc"))
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestDeleteLastMovesCursor(t *testing.T) {
	m := newFixture(t, "a", "b").model(Options{})

	m, _ = send(t, m, key("down"), key("d"), key("y"))
	assert.Equal(t, 0, m.Cursor())
}

func TestEnterHandsOffAndQuits(t *testing.T) {
	f := newFixture(t, "load me")
	m := f.model(Options{})

	m, cmd := send(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	loaded, ok := m.Loaded()
	require.True(t, ok)
	assert.Equal(t, f.designs[0].ID, loaded.ID)

	sel, ok, err := f.handoff.Take(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.designs[0].ID, sel.DesignID)
}

func TestEmptyGallery(t *testing.T) {
	m := newFixture(t).model(Options{})

	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	m, _ = send(t, m, key("d"))
	assert.Equal(t, ViewList, m.GetViewMode())

	view := m.View()
	assert.Contains(t, view, "No designs saved yet")
	assert.Contains(t, view, "0 designs saved")
}

func TestDesignsChangedReloads(t *testing.T) {
	f := newFixture(t, "first")
	changes := make(chan struct{}, 1)
	m := f.model(Options{Changes: changes})
	require.NotNil(t, m.Init())

	_, err := f.store.Create(context.Background(), "second", customization.Default(), pricing.BasePrice)
	require.NoError(t, err)

	m, cmd := send(t, m, DesignsChangedMsg{})
	assert.NotNil(t, cmd, "keeps listening for further changes")
	assert.Contains(t, m.View(), "2 designs saved")
}

func TestWatchCommand(t *testing.T) {
	assert.Nil(t, waitForChangeCmd(nil))

	changes := make(chan struct{}, 1)
	changes <- struct{}{}
	assert.IsType(t, DesignsChangedMsg{}, waitForChangeCmd(changes)())

	close(changes)
	assert.IsType(t, WatchClosedMsg{}, waitForChangeCmd(changes)())
}

func TestHelpToggle(t *testing.T) {
	m := newFixture(t).model(Options{})

	m, _ = send(t, m, key("?"))
	assert.Equal(t, ViewHelp, m.GetViewMode())
	assert.Contains(t, m.View(), "Gallery Help")

	m, _ = send(t, m, key("?"))
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestListViewShowsDesign(t *testing.T) {
	f := newFixture(t, "Pink Dream")
	m := f.model(Options{UseUnicode: true})

	view := m.View()
	assert.Contains(t, view, "Pink Dream")
	assert.Contains(t, view, "$79.99")
	assert.Contains(t, view, galleryctl.FormatDate(f.designs[0].CreatedAt))
	assert.Contains(t, view, "1 design saved")
}
