package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/logger"
	"github.com/orbitlab/orbit/internal/pricing"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

// DesignsKey names the durable slot holding the design collection.
const DesignsKey = "orbitDesigns"

// ErrDesignNotFound is returned by Get for an unknown id.
var ErrDesignNotFound = errors.New("design not found")

// Store manages the saved design collection. Every operation reads the whole
// collection, applies its change, and writes it back while holding the lock.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	log   *logger.Logger
	now   func() time.Time
	newID func() (string, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to log.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides design id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates a Store over slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		log:   logger.Nop(),
		now:   time.Now,
		newID: NewDesignID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("slot", slot.Name())
	return s
}

// List returns every saved design in save order. A missing or malformed
// collection is reported as empty.
func (s *Store) List(ctx context.Context) ([]Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Get returns the design with id.
func (s *Store) Get(ctx context.Context, id string) (Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	designs, err := s.load(ctx)
	if err != nil {
		return Design{}, err
	}
	for _, d := range designs {
		if d.ID == id {
			return d, nil
		}
	}
	return Design{}, fmt.Errorf("%w: %s", ErrDesignNotFound, id)
}

// Create appends a new design and persists the collection. A blank name is
// replaced with DefaultDesignName.
func (s *Store) Create(ctx context.Context, name string, state customization.State, price pricing.Money) (Design, error) {
	if err := state.Validate(); err != nil {
		return Design{}, err
	}

	id, err := s.newID()
	if err != nil {
		return Design{}, err
	}

	design := Design{
		ID:            id,
		Name:          normalizeName(name),
		Customization: state,
		CreatedAt:     s.now().UTC(),
		Price:         price,
	}
	if err := design.Validate(); err != nil {
		return Design{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read(ctx)
	if err != nil {
		return Design{}, err
	}
	if snap.malformed != nil {
		if err := s.archiveMalformed(ctx, snap); err != nil {
			return Design{}, err
		}
	}
	designs := append(snap.designs, design)

	if err := s.persist(ctx, designs); err != nil {
		return Design{}, err
	}

	s.log.Info("design saved", "id", design.ID, "name", design.Name, "price", design.Price.String())
	return design, nil
}

// Delete removes the design with id and returns the remaining collection.
// Deleting an unknown id leaves the collection untouched.
func (s *Store) Delete(ctx context.Context, id string) ([]Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	designs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	remaining := make([]Design, 0, len(designs))
	for _, d := range designs {
		if d.ID != id {
			remaining = append(remaining, d)
		}
	}

	if len(remaining) == len(designs) {
		s.log.Debug("delete skipped, design not found", "id", id)
		return designs, nil
	}

	if err := s.persist(ctx, remaining); err != nil {
		return nil, err
	}

	s.log.Info("design deleted", "id", id)
	return remaining, nil
}

// snapshot is one read of the slot. malformed holds the raw blob when it
// could not be decoded; designs is then empty.
type snapshot struct {
	designs   []Design
	malformed []byte
	cause     error
}

func (s *Store) load(ctx context.Context) ([]Design, error) {
	snap, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return snap.designs, nil
}

func (s *Store) read(ctx context.Context) (snapshot, error) {
	data, err := s.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return snapshot{designs: []Design{}}, nil
	}
	if err != nil {
		return snapshot{}, orbiterrors.NewStorageError("read", DesignsKey, err)
	}

	designs, err := decodeCollection(s.slot.Name(), data)
	if err != nil {
		s.log.Warn("ignoring malformed design collection", "error", err.Error())
		return snapshot{designs: []Design{}, malformed: data, cause: err}, nil
	}
	return snapshot{designs: designs}, nil
}

// archiveMalformed sets an undecodable blob aside before it is overwritten.
// Slots that cannot archive refuse the write instead.
func (s *Store) archiveMalformed(ctx context.Context, snap snapshot) error {
	archiver, ok := s.slot.(Archiver)
	if !ok {
		return orbiterrors.NewStorageError("archive", DesignsKey, snap.cause)
	}

	suffix := "corrupt-" + s.now().UTC().Format("20060102T150405Z")
	location, err := archiver.Archive(ctx, snap.malformed, suffix)
	if err != nil {
		s.log.Error(err, "failed to archive malformed designs")
		return orbiterrors.NewStorageError("archive", DesignsKey, err)
	}

	s.log.Warn("malformed design collection archived", "location", location)
	return nil
}

func (s *Store) persist(ctx context.Context, designs []Design) error {
	data, err := encodeCollection(designs)
	if err != nil {
		return orbiterrors.NewStorageError("encode", DesignsKey, err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.log.Error(err, "failed to persist designs")
		return orbiterrors.NewStorageError("write", DesignsKey, err)
	}
	return nil
}
