// Package parts is the registry of customizable controller regions.
package parts

import (
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

// ID identifies a customizable part. The set is closed.
type ID string

const (
	Face        ID = "face"
	Body        ID = "body"
	DPads       ID = "dpads"
	Bumpers     ID = "bumpers"
	Thumbsticks ID = "thumbsticks"
	Triggers    ID = "triggers"
	ABXY        ID = "abxy"
	Grips       ID = "grips"
)

// Part carries the display metadata and base material of a part.
type Part struct {
	ID       ID
	Label    string
	NavLabel string
	Icon     string
	// Material is the generic material tinted when a solid color is applied.
	Material string
}

var registry = []Part{
	{ID: Face, Label: "Face", NavLabel: "Face", Icon: "/face.png", Material: "face"},
	{ID: Body, Label: "Body", NavLabel: "Body", Icon: "/body.png", Material: "back"},
	{ID: DPads, Label: "D-pad", NavLabel: "D-pad", Icon: "/dpad.png", Material: "dpad"},
	{ID: Bumpers, Label: "Bumpers", NavLabel: "Bumpers", Icon: "/bumper.png", Material: "bumper"},
	{ID: Thumbsticks, Label: "Thumbsticks", NavLabel: "Thumbsticks", Icon: "/thumbstick.png", Material: "thumbstick"},
	{ID: Triggers, Label: "Triggers", NavLabel: "Triggers", Icon: "/trigger.png", Material: "triggers"},
	{ID: ABXY, Label: "ABXY Buttons", NavLabel: "ABXY", Icon: "/abxy.png", Material: "abxy"},
	{ID: Grips, Label: "Back Grips", NavLabel: "Back", Icon: "/grip.png", Material: "grip"},
}

var index = func() map[ID]int {
	m := make(map[ID]int, len(registry))
	for i, p := range registry {
		m[p.ID] = i
	}
	return m
}()

// All returns every registered part in canonical order.
func All() []Part {
	out := make([]Part, len(registry))
	copy(out, registry)
	return out
}

// IDs returns every part identifier in canonical order.
func IDs() []ID {
	out := make([]ID, len(registry))
	for i, p := range registry {
		out[i] = p.ID
	}
	return out
}

// ColorIDs returns the parts that hold a color value, i.e. everything but Grips.
func ColorIDs() []ID {
	out := make([]ID, 0, len(registry)-1)
	for _, p := range registry {
		if p.ID.IsColor() {
			out = append(out, p.ID)
		}
	}
	return out
}

// Lookup returns the registered metadata for id.
func Lookup(id ID) (Part, error) {
	i, ok := index[id]
	if !ok {
		return Part{}, orbiterrors.NewUnknownPartError(string(id))
	}
	return registry[i], nil
}

// Parse converts user input into a registered ID.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Valid() {
		return "", orbiterrors.NewUnknownPartError(s)
	}
	return id, nil
}

// Valid reports whether id is a registered part.
func (id ID) Valid() bool {
	_, ok := index[id]
	return ok
}

// IsColor reports whether the part holds a color value rather than a presence flag.
func (id ID) IsColor() bool {
	return id.Valid() && id != Grips
}

// Label returns the display label, or the raw id for unregistered parts.
func (id ID) Label() string {
	if p, err := Lookup(id); err == nil {
		return p.Label
	}
	return string(id)
}

// Material returns the generic material for the part, or the raw id for unregistered parts.
func (id ID) Material() string {
	if p, err := Lookup(id); err == nil {
		return p.Material
	}
	return string(id)
}

func (id ID) String() string {
	return string(id)
}
