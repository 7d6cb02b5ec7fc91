package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/catalog"
	"github.com/orbitlab/orbit/internal/parts"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

type catalogOptions struct {
	jsonOutput bool
}

func newCatalogCmd() *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the available colors and skins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type catalogJSONEntry struct {
	Value string     `json:"value"`
	Name  string     `json:"name"`
	Kind  string     `json:"kind"`
	Image string     `json:"image,omitempty"`
	Parts []parts.ID `json:"parts"`
}

type catalogJSONPayload struct {
	Version string             `json:"version"`
	Count   int                `json:"count"`
	Entries []catalogJSONEntry `json:"entries"`
}

func runCatalog(cmd *cobra.Command, opts *catalogOptions) error {
	c := catalog.Default()
	entries := c.Entries()

	if opts.jsonOutput {
		payload := catalogJSONPayload{
			Version: "1.0",
			Count:   len(entries),
			Entries: make([]catalogJSONEntry, len(entries)),
		}
		for i, e := range entries {
			payload.Entries[i] = catalogJSONEntry{
				Value: e.Value.String(),
				Name:  e.DisplayName,
				Kind:  e.Value.Kind().String(),
				Image: e.PreviewImage,
				Parts: compatibleParts(c, e.Value),
			}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	useUnicode := supportsUnicode(cmd.OutOrStdout())
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "VALUE\tNAME\tKIND\tPARTS")
	for _, e := range entries {
		value := e.Value.String()
		if useUnicode {
			value = styles.Swatch(e.Value, true) + " " + value
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			value,
			e.DisplayName,
			e.Value.Kind(),
			formatParts(c, e.Value),
		)
	}
	return writer.Flush()
}

func compatibleParts(c *catalog.Catalog, v catalog.Value) []parts.ID {
	var out []parts.ID
	for _, id := range parts.ColorIDs() {
		if c.Compatible(id, v) {
			out = append(out, id)
		}
	}
	return out
}

func formatParts(c *catalog.Catalog, v catalog.Value) string {
	ids := compatibleParts(c, v)
	if len(ids) == len(parts.ColorIDs()) {
		return "all"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ",")
}

func catalogName(v catalog.Value) string {
	return catalog.Default().Name(v)
}
