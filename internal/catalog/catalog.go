// Package catalog holds the selectable solid colors and named skins.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/orbitlab/orbit/internal/parts"
	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

//go:embed palette.yaml
var paletteYAML []byte

// Entry is a selectable palette item.
type Entry struct {
	Value        Value  `yaml:"value"`
	DisplayName  string `yaml:"name" validate:"required,max=40"`
	PreviewImage string `yaml:"image,omitempty" validate:"omitempty,startswith=/"`
	Row          int    `yaml:"row" validate:"gte=0"`
}

type paletteFile struct {
	Version   string     `yaml:"version" validate:"required"`
	SkinParts []parts.ID `yaml:"skin_parts" validate:"required,min=1"`
	Entries   []Entry    `yaml:"entries" validate:"required,min=1,dive"`
}

// Catalog is the read-only lookup of palette entries.
type Catalog struct {
	entries   []Entry
	index     map[Value]int
	skinParts map[parts.ID]bool
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	validate       = validator.New()
)

// Default returns the catalog built from the embedded palette. It is loaded once.
// A broken embedded palette is a build defect, so Default panics on it.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(paletteYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded palette: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a palette document.
func Load(data []byte) (*Catalog, error) {
	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate palette: %w", err)
	}

	c := &Catalog{
		entries:   make([]Entry, 0, len(file.Entries)),
		index:     make(map[Value]int, len(file.Entries)),
		skinParts: make(map[parts.ID]bool, len(file.SkinParts)),
	}

	for _, id := range file.SkinParts {
		if !id.IsColor() {
			return nil, fmt.Errorf("skin_parts: %w", orbiterrors.NewUnknownPartError(string(id)))
		}
		c.skinParts[id] = true
	}

	for i, entry := range file.Entries {
		if entry.Value.IsZero() {
			return nil, fmt.Errorf("entries[%d]: missing value", i)
		}
		if _, dup := c.index[entry.Value]; dup {
			return nil, fmt.Errorf("entries[%d]: duplicate value %q", i, entry.Value)
		}
		c.index[entry.Value] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	return c, nil
}

// Entries returns every entry in palette order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Skins returns the named-skin entries in palette order.
func (c *Catalog) Skins() []Entry {
	return c.filter(func(e Entry) bool { return e.Value.IsSkin() })
}

// Solids returns the solid-color entries in palette order.
func (c *Catalog) Solids() []Entry {
	return c.filter(func(e Entry) bool { return e.Value.IsSolid() })
}

// Lookup returns the entry carrying v.
func (c *Catalog) Lookup(v Value) (Entry, error) {
	i, ok := c.index[v]
	if !ok {
		return Entry{}, orbiterrors.NewUnknownEntryError(v.String())
	}
	return c.entries[i], nil
}

// Name returns the display name for v. Solid colors outside the palette are
// shown by their hex value.
func (c *Catalog) Name(v Value) string {
	if e, err := c.Lookup(v); err == nil {
		return e.DisplayName
	}
	return v.String()
}

// AcceptsSkins reports whether part can carry a named skin.
func (c *Catalog) AcceptsSkins(part parts.ID) bool {
	return c.skinParts[part]
}

// Compatible reports whether v may be assigned to part. Any solid color fits a
// color part; skins must be catalog entries and the part must accept skins.
func (c *Catalog) Compatible(part parts.ID, v Value) bool {
	if !part.IsColor() {
		return false
	}
	switch v.Kind() {
	case KindSolid:
		return true
	case KindSkin:
		if !c.skinParts[part] {
			return false
		}
		_, ok := c.index[v]
		return ok
	default:
		return false
	}
}

// ForPart returns the entries selectable for part, skins first.
func (c *Catalog) ForPart(part parts.ID) ([]Entry, error) {
	if !part.IsColor() {
		return nil, orbiterrors.NewUnknownPartError(string(part))
	}
	return c.filter(func(e Entry) bool { return c.Compatible(part, e.Value) }), nil
}

func (c *Catalog) filter(keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
