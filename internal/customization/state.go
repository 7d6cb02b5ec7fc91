// Package customization models the per-part selections of a controller design.
package customization

import (
	"encoding/json"
	"fmt"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/parts"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

var colorParts = parts.ColorIDs()

const numColorParts = 7

var colorIndex = func() map[parts.ID]int {
	if len(colorParts) != numColorParts {
		panic(fmt.Sprintf("customization: expected %d color parts, registry has %d", numColorParts, len(colorParts)))
	}
	m := make(map[parts.ID]int, len(colorParts))
	for i, id := range colorParts {
		m[id] = i
	}
	return m
}()

// State is an immutable snapshot of every part's selection. Values are copied on
// assignment, so transformations never alias. The zero State is not valid; start
// from Default.
type State struct {
	colors [numColorParts]catalog.Value
	grips  bool
}

// PartColor pairs a color part with its current value.
type PartColor struct {
	Part  parts.ID
	Value catalog.Value
}

var defaultColors = map[parts.ID]string{
	parts.Face:        "#ffb3d9",
	parts.Body:        "#e84c7e",
	parts.DPads:       "#e84c7e",
	parts.Thumbsticks: "#c0c0c0",
	parts.ABXY:        "#d32f2f",
	parts.Bumpers:     "#e84c7e",
	parts.Triggers:    "#f5d7d7",
}

// Default returns the session-start configuration.
func Default() State {
	var s State
	for i, id := range colorParts {
		s.colors[i] = catalog.MustParse(defaultColors[id])
	}
	return s
}

// Reset returns the default configuration regardless of s.
func Reset(State) State {
	return Default()
}

// Set returns s with exactly one part updated. Color parts take a catalog.Value,
// grips takes a bool; any other shape is rejected.
func Set(s State, part parts.ID, value any) (State, error) {
	if !part.Valid() {
		return s, orbiterrors.NewUnknownPartError(string(part))
	}
	if part == parts.Grips {
		on, ok := value.(bool)
		if !ok {
			return s, orbiterrors.NewFieldAssignmentError(string(part), fmt.Sprintf("expected bool, got %T", value))
		}
		return s.WithGrips(on), nil
	}
	v, ok := value.(catalog.Value)
	if !ok {
		return s, orbiterrors.NewFieldAssignmentError(string(part), fmt.Sprintf("expected catalog.Value, got %T", value))
	}
	return s.WithColor(part, v)
}

// WithColor returns s with part set to v.
func (s State) WithColor(part parts.ID, v catalog.Value) (State, error) {
	i, ok := colorIndex[part]
	if !ok {
		if part == parts.Grips {
			return s, orbiterrors.NewFieldAssignmentError(string(part), "grips holds a presence flag, not a color")
		}
		return s, orbiterrors.NewUnknownPartError(string(part))
	}
	if v.IsZero() {
		return s, orbiterrors.NewFieldAssignmentError(string(part), "empty color value")
	}
	if !catalog.Default().Compatible(part, v) {
		return s, orbiterrors.NewFieldAssignmentError(string(part), fmt.Sprintf("%s %q is not available for this part", v.Kind(), v))
	}
	s.colors[i] = v
	return s, nil
}

// WithGrips returns s with the grips flag set.
func (s State) WithGrips(on bool) State {
	s.grips = on
	return s
}

// Color returns the value of a color part.
func (s State) Color(part parts.ID) (catalog.Value, error) {
	i, ok := colorIndex[part]
	if !ok {
		return catalog.Value{}, orbiterrors.NewUnknownPartError(string(part))
	}
	return s.colors[i], nil
}

// Face is shorthand for the face value, which drives skin pricing and rendering.
func (s State) Face() catalog.Value {
	return s.colors[colorIndex[parts.Face]]
}

// Grips reports whether back grips are installed.
func (s State) Grips() bool {
	return s.grips
}

// Colors returns every color part with its value in canonical order.
func (s State) Colors() []PartColor {
	out := make([]PartColor, len(colorParts))
	for i, id := range colorParts {
		out[i] = PartColor{Part: id, Value: s.colors[i]}
	}
	return out
}

// Equal reports whether both states select the same values.
func (s State) Equal(other State) bool {
	return s == other
}

// Validate reports an error when any part is unset, e.g. for a zero State.
func (s State) Validate() error {
	for i, id := range colorParts {
		if s.colors[i].IsZero() {
			return orbiterrors.NewFieldAssignmentError(string(id), "missing value")
		}
	}
	return nil
}

type wireState struct {
	Face        *catalog.Value `json:"face"`
	Body        *catalog.Value `json:"body"`
	DPads       *catalog.Value `json:"dpads"`
	Bumpers     *catalog.Value `json:"bumpers"`
	Thumbsticks *catalog.Value `json:"thumbsticks"`
	Triggers    *catalog.Value `json:"triggers"`
	ABXY        *catalog.Value `json:"abxy"`
	Grips       *bool          `json:"grips"`
}

func (w *wireState) fields() map[parts.ID]**catalog.Value {
	return map[parts.ID]**catalog.Value{
		parts.Face:        &w.Face,
		parts.Body:        &w.Body,
		parts.DPads:       &w.DPads,
		parts.Bumpers:     &w.Bumpers,
		parts.Thumbsticks: &w.Thumbsticks,
		parts.Triggers:    &w.Triggers,
		parts.ABXY:        &w.ABXY,
	}
}

// MarshalJSON encodes the wire shape {face, body, ..., abxy, grips}.
func (s State) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var w wireState
	fields := w.fields()
	for i, id := range colorParts {
		v := s.colors[i]
		*fields[id] = &v
	}
	grips := s.grips
	w.Grips = &grips
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire shape. Every part must be present and well formed.
func (s *State) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Grips == nil {
		return orbiterrors.NewFieldAssignmentError(string(parts.Grips), "missing value")
	}

	next := Default().WithGrips(*w.Grips)
	fields := w.fields()
	for _, id := range colorParts {
		v := *fields[id]
		if v == nil {
			return orbiterrors.NewFieldAssignmentError(string(id), "missing value")
		}
		var err error
		next, err = next.WithColor(id, *v)
		if err != nil {
			return err
		}
	}

	*s = next
	return nil
}
