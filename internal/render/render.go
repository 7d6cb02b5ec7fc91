// Package render maps a customization to the attributes an external 3D renderer consumes.
package render

import (
	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
)

// PartAttribute selects the material for one part. ColorOverride is set only
// for solid colors and tints the part's generic material.
type PartAttribute struct {
	Material      string  `json:"material"`
	ColorOverride *string `json:"colorOverride,omitempty"`
}

// Attributes is the full render contract for one configuration.
type Attributes struct {
	Parts map[parts.ID]PartAttribute `json:"parts"`
	Grips bool                       `json:"grips"`
}

// Map converts s into render attributes. It is total over valid states.
func Map(s customization.State) Attributes {
	out := Attributes{
		Parts: make(map[parts.ID]PartAttribute, len(parts.ColorIDs())),
		Grips: s.Grips(),
	}
	for _, pc := range s.Colors() {
		out.Parts[pc.Part] = attributeFor(pc.Part, pc.Value)
	}
	return out
}

func attributeFor(part parts.ID, v catalog.Value) PartAttribute {
	switch v.Kind() {
	case catalog.KindSkin:
		return PartAttribute{Material: v.String()}
	default:
		hex := v.String()
		return PartAttribute{Material: part.Material(), ColorOverride: &hex}
	}
}

// Attribute returns the attribute for a single color part.
func (a Attributes) Attribute(part parts.ID) (PartAttribute, bool) {
	attr, ok := a.Parts[part]
	return attr, ok
}
