package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorPrefix marks a raw value as a solid color.
const ColorPrefix = '#'

// Kind tags a Value as a solid color or a named skin.
type Kind int

const (
	KindInvalid Kind = iota
	KindSolid
	KindSkin
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindSkin:
		return "skin"
	default:
		return "invalid"
	}
}

var (
	hexPattern      = regexp.MustCompile(`^[0-9a-f]{6}$`)
	shortHexPattern = regexp.MustCompile(`^[0-9a-f]{3}$`)
	skinKeyPattern  = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// Value is either a solid color (#rrggbb) or a named skin key. The zero Value is invalid.
type Value struct {
	kind Kind
	raw  string
}

// Solid builds a solid color value, normalizing to lowercase #rrggbb.
func Solid(hex string) (Value, error) {
	s := strings.ToLower(strings.TrimSpace(hex))
	s = strings.TrimPrefix(s, string(ColorPrefix))
	if shortHexPattern.MatchString(s) {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if !hexPattern.MatchString(s) {
		return Value{}, fmt.Errorf("invalid solid color %q", hex)
	}
	return Value{kind: KindSolid, raw: string(ColorPrefix) + s}, nil
}

// Skin builds a named skin value from a catalog key.
func Skin(key string) (Value, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if !skinKeyPattern.MatchString(k) {
		return Value{}, fmt.Errorf("invalid skin key %q", key)
	}
	return Value{kind: KindSkin, raw: k}, nil
}

// ParseValue interprets a raw persisted or user-supplied string. A value is a
// solid color iff its first character is ColorPrefix; otherwise it is a skin key.
func ParseValue(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("empty color value")
	}
	if s[0] == ColorPrefix {
		return Solid(s)
	}
	return Skin(s)
}

// MustParse is ParseValue for static data; it panics on invalid input.
func MustParse(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind reports the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsSolid reports whether the value is a solid color.
func (v Value) IsSolid() bool { return v.kind == KindSolid }

// IsSkin reports whether the value is a named skin.
func (v Value) IsSkin() bool { return v.kind == KindSkin }

// IsZero reports whether the value was never set.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// String returns the raw wire form: "#rrggbb" or the skin key.
func (v Value) String() string { return v.raw }

// MarshalJSON encodes the raw wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return nil, fmt.Errorf("cannot marshal empty color value")
	}
	return json.Marshal(v.raw)
}

// UnmarshalJSON decodes a raw string through ParseValue.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("color value must be a string: %w", err)
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalYAML decodes a scalar node through ParseValue.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}
