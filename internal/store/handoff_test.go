package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/logger"
)

func TestHandoffReadOnce(t *testing.T) {
	ctx := context.Background()
	h := NewHandoff(NewFileSlot(filepath.Join(t.TempDir(), "handoff.json")), time.Minute, nil)
	state := skinState(t)

	require.NoError(t, h.Put(ctx, Selection{DesignID: "design_a", Name: "A", Customization: state}))

	pending, err := h.Pending(ctx)
	require.NoError(t, err)
	assert.True(t, pending)

	sel, ok, err := h.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "design_a", sel.DesignID)
	assert.True(t, sel.Customization.Equal(state))

	_, ok, err = h.Take(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "selection is discarded after the first read")
}

func TestHandoffAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "handoff.json")

	writer := NewHandoff(NewFileSlot(path), time.Minute, logger.Nop())
	require.NoError(t, writer.Put(ctx, Selection{DesignID: "design_b", Customization: customization.Default()}))

	reader := NewHandoff(NewFileSlot(path), time.Minute, logger.Nop())
	sel, ok, err := reader.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "design_b", sel.DesignID)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestHandoffPutReplaces(t *testing.T) {
	ctx := context.Background()
	h := NewHandoff(NewFileSlot(filepath.Join(t.TempDir(), "handoff.json")), time.Minute, nil)

	require.NoError(t, h.Put(ctx, Selection{DesignID: "design_first", Customization: customization.Default()}))
	require.NoError(t, h.Put(ctx, Selection{DesignID: "design_second", Customization: customization.Default()}))

	sel, ok, err := h.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "design_second", sel.DesignID)
}

func TestHandoffExpires(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "handoff.json")
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	writer := NewHandoff(NewFileSlot(path), time.Minute, nil)
	writer.now = func() time.Time { return start }
	require.NoError(t, writer.Put(ctx, Selection{DesignID: "design_old", Customization: customization.Default()}))

	reader := NewHandoff(NewFileSlot(path), time.Minute, nil)
	reader.now = func() time.Time { return start.Add(2 * time.Minute) }

	_, ok, err := reader.Take(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandoffMalformedIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handoff.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"designId":`), 0o644))

	h := NewHandoff(NewFileSlot(path), time.Minute, nil)
	_, ok, err := h.Take(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
