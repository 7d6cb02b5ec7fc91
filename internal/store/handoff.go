package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/logger"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

// HandoffKey names the slot carrying a design from the gallery to the lab.
const HandoffKey = "selectedDesign"

// DefaultHandoffTTL bounds how long an untaken selection stays valid.
const DefaultHandoffTTL = 30 * time.Minute

// Selection is the design handed from the gallery to the lab.
type Selection struct {
	DesignID      string              `json:"designId"`
	Name          string              `json:"name"`
	Customization customization.State `json:"customization"`
	StoredAt      time.Time           `json:"storedAt"`
}

// Handoff holds at most one Selection. It is written once and discarded on
// the first read. The in-process cache serves the TUI; the slot carries the
// selection across separate invocations.
type Handoff struct {
	mu    sync.Mutex
	cache *gocache.Cache
	slot  Slot
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

// NewHandoff creates a Handoff persisted to slot. A non-positive ttl uses DefaultHandoffTTL.
func NewHandoff(slot Slot, ttl time.Duration, log *logger.Logger) *Handoff {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handoff{
		cache: gocache.New(ttl, 2*ttl),
		slot:  slot,
		ttl:   ttl,
		now:   time.Now,
		log:   log.With("slot", HandoffKey),
	}
}

// Put replaces any pending selection with sel.
func (h *Handoff) Put(ctx context.Context, sel Selection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sel.StoredAt = h.now().UTC()

	data, err := json.Marshal(sel)
	if err != nil {
		return orbiterrors.NewStorageError("encode", HandoffKey, err)
	}
	if err := h.slot.Write(ctx, data); err != nil {
		return orbiterrors.NewStorageError("write", HandoffKey, err)
	}

	h.cache.Set(HandoffKey, sel, h.ttl)
	h.log.Debug("selection stored", "design", sel.DesignID)
	return nil
}

// Take returns the pending selection and clears it. ok is false when nothing
// is pending or the selection expired.
func (h *Handoff) Take(ctx context.Context) (sel Selection, ok bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cached, found := h.cache.Get(HandoffKey); found {
		if s, valid := cached.(Selection); valid {
			sel, ok = s, true
		}
	}

	if !ok {
		sel, ok, err = h.readSlot(ctx)
		if err != nil {
			return Selection{}, false, err
		}
	}

	if err := h.clear(ctx); err != nil {
		return Selection{}, false, err
	}
	if ok {
		h.log.Debug("selection taken", "design", sel.DesignID)
	}
	return sel, ok, nil
}

// Pending reports whether a selection is waiting, without consuming it.
func (h *Handoff) Pending(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, found := h.cache.Get(HandoffKey); found {
		return true, nil
	}
	_, ok, err := h.readSlot(ctx)
	return ok, err
}

func (h *Handoff) readSlot(ctx context.Context) (Selection, bool, error) {
	data, err := h.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return Selection{}, false, nil
	}
	if err != nil {
		return Selection{}, false, orbiterrors.NewStorageError("read", HandoffKey, err)
	}

	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		h.log.Warn("ignoring malformed selection", "error", orbiterrors.NewMalformedDataError(h.slot.Name(), err).Error())
		return Selection{}, false, nil
	}
	if h.now().Sub(sel.StoredAt) > h.ttl {
		h.log.Debug("selection expired", "design", sel.DesignID, "stored_at", sel.StoredAt)
		return Selection{}, false, nil
	}
	return sel, true, nil
}

func (h *Handoff) clear(ctx context.Context) error {
	h.cache.Delete(HandoffKey)
	if err := h.slot.Clear(ctx); err != nil {
		return orbiterrors.NewStorageError("clear", HandoffKey, fmt.Errorf("discard selection: %w", err))
	}
	return nil
}
