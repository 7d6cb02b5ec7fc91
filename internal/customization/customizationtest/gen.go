// Package customizationtest provides property-test generators for customization states.
package customizationtest

import (
	"pgregory.net/rapid"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
)

// Value draws a value assignable to part: a palette entry or an arbitrary solid color.
func Value(part parts.ID) *rapid.Generator[catalog.Value] {
	return rapid.Custom(func(t *rapid.T) catalog.Value {
		entries, err := catalog.Default().ForPart(part)
		if err != nil {
			t.Fatalf("palette for %s: %v", part, err)
		}
		if rapid.Bool().Draw(t, "fromPalette") {
			return rapid.SampledFrom(entries).Draw(t, "entry").Value
		}
		hex := rapid.StringMatching(`#[0-9a-f]{6}`).Draw(t, "hex")
		return catalog.MustParse(hex)
	})
}

// State draws a fully populated, valid state.
func State() *rapid.Generator[customization.State] {
	return rapid.Custom(func(t *rapid.T) customization.State {
		s := customization.Default()
		for _, id := range parts.ColorIDs() {
			v := Value(id).Draw(t, string(id))
			next, err := s.WithColor(id, v)
			if err != nil {
				t.Fatalf("assign %s=%s: %v", id, v, err)
			}
			s = next
		}
		return s.WithGrips(rapid.Bool().Draw(t, "grips"))
	})
}

// Part draws any registered part.
func Part() *rapid.Generator[parts.ID] {
	return rapid.SampledFrom(parts.IDs())
}
