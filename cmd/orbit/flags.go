package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
)

// partFlags exposes one flag per part, e.g. --face venom --body '#e84c7e' --grips.
type partFlags struct {
	colors map[parts.ID]*string
	grips  bool
}

func newPartFlags() *partFlags {
	return &partFlags{colors: make(map[parts.ID]*string)}
}

func (f *partFlags) register(cmd *cobra.Command) {
	for _, id := range parts.ColorIDs() {
		value := new(string)
		f.colors[id] = value
		hint := "#rrggbb"
		if catalog.Default().AcceptsSkins(id) {
			hint = "#rrggbb or a skin key"
		}
		cmd.Flags().StringVar(value, string(id), "", fmt.Sprintf("%s color (%s)", id.Label(), hint))
	}
	cmd.Flags().BoolVar(&f.grips, string(parts.Grips), false, "Install back grips")
}

// apply returns base with every flag the user set applied on top.
func (f *partFlags) apply(cmd *cobra.Command, base customization.State) (customization.State, error) {
	state := base
	for _, id := range parts.ColorIDs() {
		if !cmd.Flags().Changed(string(id)) {
			continue
		}
		raw := strings.TrimSpace(*f.colors[id])
		value, err := catalog.ParseValue(raw)
		if err != nil {
			return base, fmt.Errorf("--%s: %w", id, err)
		}
		state, err = customization.Set(state, id, value)
		if err != nil {
			return base, err
		}
	}
	if cmd.Flags().Changed(string(parts.Grips)) {
		next, err := customization.Set(state, parts.Grips, f.grips)
		if err != nil {
			return base, err
		}
		state = next
	}
	return state, nil
}
