package gallery

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/store"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

type recordingHandoff struct {
	got []store.Selection
	err error
}

func (r *recordingHandoff) Put(_ context.Context, sel store.Selection) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, sel)
	return nil
}

type brokenStore struct {
	designs []store.Design
	deletes int
}

func (b *brokenStore) List(context.Context) ([]store.Design, error) {
	return b.designs, nil
}

func (b *brokenStore) Delete(context.Context, string) ([]store.Design, error) {
	b.deletes++
	return nil, orbiterrors.NewStorageError("write", store.DesignsKey, errors.New("read-only"))
}

func seededStore(t *testing.T, names ...string) (*store.Store, []store.Design) {
	t.Helper()
	s := store.New(store.NewFileSlot(filepath.Join(t.TempDir(), "designs.json")))
	var out []store.Design
	for _, name := range names {
		d, err := s.Create(context.Background(), name, customization.Default(), pricing.BasePrice)
		require.NoError(t, err)
		out = append(out, d)
	}
	return s, out
}

func TestRefreshAndSummary(t *testing.T) {
	s, _ := seededStore(t, "one")
	c := NewController(s, nil, nil)

	assert.Equal(t, "0 designs saved", c.Summary())
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, "1 design saved", c.Summary())
	assert.Equal(t, "3 designs saved", Summary(3))
}

func TestDeleteFlow(t *testing.T) {
	ctx := context.Background()
	s, seeded := seededStore(t, "a", "b", "c")
	c := NewController(s, nil, nil)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.RequestDelete(seeded[1].ID))
	assert.Equal(t, ConfirmingDelete, c.Phase())
	target, ok := c.Target()
	assert.True(t, ok)
	assert.Equal(t, seeded[1].ID, target)

	require.NoError(t, c.Confirm(ctx))
	assert.Equal(t, Idle, c.Phase())

	designs := c.Designs()
	require.Len(t, designs, 2)
	assert.Equal(t, seeded[0].ID, designs[0].ID)
	assert.Equal(t, seeded[2].ID, designs[1].ID)
}

func TestCancelDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	s, seeded := seededStore(t, "keep")
	c := NewController(s, nil, nil)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.RequestDelete(seeded[0].ID))
	require.NoError(t, c.Cancel())
	assert.Equal(t, Idle, c.Phase())

	listed, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestInvalidTransitions(t *testing.T) {
	s, _ := seededStore(t)
	c := NewController(s, nil, nil)

	assert.ErrorIs(t, c.Cancel(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Confirm(context.Background()), ErrInvalidTransition)

	require.NoError(t, c.RequestDelete("design_x"))
	assert.ErrorIs(t, c.RequestDelete("design_y"), ErrInvalidTransition)
	target, _ := c.Target()
	assert.Equal(t, "design_x", target, "second request must not retarget")
}

func TestConfirmFailureReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	bs := &brokenStore{designs: []store.Design{{ID: "design_1", Name: "x"}}}
	c := NewController(bs, nil, nil)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.RequestDelete("design_1"))
	err := c.Confirm(ctx)
	require.Error(t, err)
	assert.True(t, orbiterrors.IsStorage(err))
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, 1, c.Count(), "snapshot is kept when delete fails")
	assert.Equal(t, 1, bs.deletes)
}

func TestRefreshDropsVanishedTarget(t *testing.T) {
	ctx := context.Background()
	s, seeded := seededStore(t, "gone")
	c := NewController(s, nil, nil)
	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.RequestDelete(seeded[0].ID))

	_, err := s.Delete(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, Idle, c.Phase())
}

func TestHandoff(t *testing.T) {
	ctx := context.Background()
	_, seeded := seededStore(t, "load me")
	h := &recordingHandoff{}
	c := NewController(nil, h, nil)

	loaded := c.LoadForEditing(seeded[0])
	assert.True(t, loaded.Equal(seeded[0].Customization))

	require.NoError(t, c.Handoff(ctx, seeded[0]))
	require.Len(t, h.got, 1)
	assert.Equal(t, seeded[0].ID, h.got[0].DesignID)
	assert.Equal(t, "load me", h.got[0].Name)

	h.err = errors.New("boom")
	require.Error(t, c.Handoff(ctx, seeded[0]))

	require.Error(t, NewController(nil, nil, nil).Handoff(ctx, seeded[0]))
}

func TestFormatDate(t *testing.T) {
	local := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "Mar 5, 2024", FormatDate(local))
}
