// Package gallery drives the saved-designs view: listing, two-step deletion,
// and handing a design back to the lab.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/logger"
	"github.com/orbitlab/orbit/internal/store"
)

// DateFormat renders a design's creation date.
const DateFormat = "Jan 2, 2006"

// ErrInvalidTransition is returned when an action does not apply in the current phase.
var ErrInvalidTransition = errors.New("invalid gallery transition")

// Phase is the controller's interaction state.
type Phase int

const (
	Idle Phase = iota
	ConfirmingDelete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case ConfirmingDelete:
		return "confirming-delete"
	default:
		return "unknown"
	}
}

// DesignStore is the subset of the design store the gallery needs.
type DesignStore interface {
	List(ctx context.Context) ([]store.Design, error)
	Delete(ctx context.Context, id string) ([]store.Design, error)
}

// HandoffWriter receives designs loaded for editing.
type HandoffWriter interface {
	Put(ctx context.Context, sel store.Selection) error
}

// Controller owns the gallery's collection snapshot and confirmation state.
type Controller struct {
	store   DesignStore
	handoff HandoffWriter
	log     *logger.Logger

	designs []store.Design
	phase   Phase
	target  string
}

// NewController creates a controller in the Idle phase. handoff may be nil
// when loading into the lab is not offered.
func NewController(designs DesignStore, handoff HandoffWriter, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		store:   designs,
		handoff: handoff,
		log:     log.With("component", "gallery"),
		designs: []store.Design{},
	}
}

// Refresh reloads the collection from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	designs, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.designs = designs
	if c.phase == ConfirmingDelete && c.find(c.target) < 0 {
		c.log.Debug("delete target vanished, returning to idle", "id", c.target)
		c.phase, c.target = Idle, ""
	}
	return nil
}

// Designs returns the last loaded snapshot.
func (c *Controller) Designs() []store.Design {
	out := make([]store.Design, len(c.designs))
	copy(out, c.designs)
	return out
}

// Count is the number of designs in the snapshot.
func (c *Controller) Count() int {
	return len(c.designs)
}

// Phase returns the current interaction phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Target returns the id awaiting delete confirmation, if any.
func (c *Controller) Target() (string, bool) {
	return c.target, c.phase == ConfirmingDelete
}

// RequestDelete asks for confirmation before deleting id.
func (c *Controller) RequestDelete(id string) error {
	if c.phase != Idle {
		return fmt.Errorf("%w: request delete while %s", ErrInvalidTransition, c.phase)
	}
	c.phase, c.target = ConfirmingDelete, id
	return nil
}

// Cancel abandons a pending deletion without touching the store.
func (c *Controller) Cancel() error {
	if c.phase != ConfirmingDelete {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, c.phase)
	}
	c.phase, c.target = Idle, ""
	return nil
}

// Confirm deletes the pending target and reloads the collection. The
// controller returns to Idle even when the store fails.
func (c *Controller) Confirm(ctx context.Context) error {
	if c.phase != ConfirmingDelete {
		return fmt.Errorf("%w: confirm while %s", ErrInvalidTransition, c.phase)
	}
	id := c.target
	c.phase, c.target = Idle, ""

	remaining, err := c.store.Delete(ctx, id)
	if err != nil {
		c.log.Error(err, "delete failed", "id", id)
		return err
	}
	c.designs = remaining
	return c.Refresh(ctx)
}

// LoadForEditing returns a copy of the design's customization.
func (c *Controller) LoadForEditing(d store.Design) customization.State {
	return d.Customization
}

// Handoff stores the design's customization for the lab to pick up.
func (c *Controller) Handoff(ctx context.Context, d store.Design) error {
	if c.handoff == nil {
		return errors.New("no handoff slot configured")
	}
	sel := store.Selection{
		DesignID:      d.ID,
		Name:          d.Name,
		Customization: c.LoadForEditing(d),
	}
	if err := c.handoff.Put(ctx, sel); err != nil {
		return err
	}
	c.log.Info("design handed to lab", "id", d.ID)
	return nil
}

// Summary renders the design count, e.g. "1 design saved".
func (c *Controller) Summary() string {
	return Summary(len(c.designs))
}

// Summary renders a count of saved designs.
func Summary(n int) string {
	if n == 1 {
		return "1 design saved"
	}
	return fmt.Sprintf("%d designs saved", n)
}

// FormatDate renders t in the gallery date format, in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateFormat)
}

func (c *Controller) find(id string) int {
	for i, d := range c.designs {
		if d.ID == id {
			return i
		}
	}
	return -1
}
