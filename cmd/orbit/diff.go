package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/store"
	"github.com/orbitlab/orbit/pkg/diff"
)

func newDesignsDiffCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <design-id> <design-id>",
		Short: "Compare two saved designs part by part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, flags, args[0], args[1])
		},
	}

	return cmd
}

func runDiff(cmd *cobra.Command, flags *rootFlags, beforeID, afterID string) error {
	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	before, err := lookupDesign(cmd, app, "compare designs", beforeID)
	if err != nil {
		return err
	}
	after, err := lookupDesign(cmd, app, "compare designs", afterID)
	if err != nil {
		return err
	}

	a, b := designText(before), designText(after)
	out := diff.Unified(a, b, before.Name+" ("+before.ID+")", after.Name+" ("+after.ID+")")
	if out == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Designs are identical.")
		return nil
	}

	removed, added := diff.Changed(a, b)
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d line(s) removed, %d line(s) added\n", removed, added)
	return nil
}

// designText is the line-per-part form compared by diff. Names and dates are
// left out so only the configuration and price show up.
func designText(d store.Design) []byte {
	var b strings.Builder
	for _, pc := range d.Customization.Colors() {
		fmt.Fprintf(&b, "%s: %s (%s)\n", pc.Part, pc.Value, catalogName(pc.Value))
	}
	grips := "no"
	if d.Customization.Grips() {
		grips = "yes"
	}
	fmt.Fprintf(&b, "grips: %s\n", grips)
	fmt.Fprintf(&b, "price: %s\n", d.Price.Display())
	return []byte(b.String())
}
