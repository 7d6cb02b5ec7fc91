package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/pricing"
	"github.com/orbitlab/orbit/internal/render"
	"github.com/orbitlab/orbit/internal/store"
	"github.com/orbitlab/orbit/internal/tui/styles"
)

func newDesignsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "designs",
		Aliases: []string{"design"},
		Short:   "Manage saved designs",
	}

	cmd.AddCommand(newDesignsListCmd(flags))
	cmd.AddCommand(newDesignsSaveCmd(flags))
	cmd.AddCommand(newDesignsShowCmd(flags))
	cmd.AddCommand(newDesignsRemoveCmd(flags))
	cmd.AddCommand(newDesignsLoadCmd(flags))
	cmd.AddCommand(newDesignsDiffCmd(flags))

	return cmd
}

// list

type listOptions struct {
	jsonOutput bool
}

func newDesignsListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved designs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, opts *listOptions) error {
	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	designs, err := app.Designs.List(commandContext(cmd))
	if err != nil {
		return newCommandError("list designs", "reading the design collection", err, "Check permissions on "+app.Config.DataDir+".")
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, designs)
	}
	if len(designs) == 0 {
		return renderEmptyList(cmd)
	}
	return renderListTable(cmd, designs)
}

func renderEmptyList(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "No designs saved yet.")
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'orbit lab' or 'orbit designs save --name <name>' to create your first design.")
	return nil
}

func renderListTable(cmd *cobra.Command, designs []store.Design) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tPRICE\tCREATED\tFACE")

	for _, d := range designs {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.Name,
			d.Price.Display(),
			gallery.FormatDate(d.CreatedAt),
			d.Customization.Face(),
		)
	}

	if err := writer.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", gallery.Summary(len(designs)))
	return err
}

type listJSONPayload struct {
	Version string         `json:"version"`
	Count   int            `json:"count"`
	Designs []store.Design `json:"designs"`
}

func renderListJSON(cmd *cobra.Command, designs []store.Design) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(designs),
		Designs: designs,
	}
	if payload.Designs == nil {
		payload.Designs = []store.Design{}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// save

type saveOptions struct {
	name  string
	parts *partFlags
}

func newDesignsSaveCmd(flags *rootFlags) *cobra.Command {
	opts := &saveOptions{parts: newPartFlags()}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a design built from the default configuration",
		Long: `Save a design built from the default configuration and the part flags.

Example:
  orbit designs save --name "Pink Pro" --face panda --body '#e84c7e' --grips`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Design name (default \""+store.DefaultDesignName+"\")")
	opts.parts.register(cmd)

	return cmd
}

func runSave(cmd *cobra.Command, flags *rootFlags, opts *saveOptions) error {
	state, err := opts.parts.apply(cmd, customization.Default())
	if err != nil {
		return newCommandError("save design", "building configuration", err, "Run 'orbit catalog' to see the available colors and skins.")
	}

	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := commandContext(cmd)
	design, err := app.Designs.Create(ctx, opts.name, state, pricing.Total(state))
	if err != nil {
		app.Logger.Error(err, "save failed")
		return newCommandError("save design", "writing the design collection", err, "Check disk space and permissions on "+app.Config.DataDir+", then retry.")
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "✓ Saved design %q\n", design.Name)
	_, _ = fmt.Fprintf(out, "  ID:    %s\n", design.ID)
	_, _ = fmt.Fprintf(out, "  Price: %s\n", design.Price.Display())
	return nil
}

// show

type showOptions struct {
	render     bool
	jsonOutput bool
}

func newDesignsShowCmd(flags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <design-id>",
		Short: "Show a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.render, "render", false, "Print the render attributes as JSON")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the stored design as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, flags *rootFlags, id string, opts *showOptions) error {
	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	design, err := lookupDesign(cmd, app, "show design", id)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	switch {
	case opts.render:
		return encoder.Encode(render.Map(design.Customization))
	case opts.jsonOutput:
		return encoder.Encode(design)
	}

	return renderDesign(cmd, design)
}

func renderDesign(cmd *cobra.Command, d store.Design) error {
	out := cmd.OutOrStdout()
	useUnicode := supportsUnicode(out)

	fmt.Fprintln(out, styles.Bold.Render(d.Name))
	fmt.Fprintf(out, "ID:      %s\n", d.ID)
	fmt.Fprintf(out, "Created: %s\n", d.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Price:   %s\n\n", d.Price.Display())

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "PART\tVALUE\tNAME")
	for _, pc := range d.Customization.Colors() {
		value := pc.Value.String()
		if useUnicode {
			value = styles.Swatch(pc.Value, true) + " " + value
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", pc.Part.Label(), value, catalogName(pc.Value))
	}
	grips := "no"
	if d.Customization.Grips() {
		grips = "yes"
	}
	fmt.Fprintf(writer, "Back Grips\t%s\t\n", grips)
	return writer.Flush()
}

// remove

type removeOptions struct {
	force bool
}

func newDesignsRemoveCmd(flags *rootFlags) *cobra.Command {
	opts := &removeOptions{}

	cmd := &cobra.Command{
		Use:     "remove <design-id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a saved design",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runRemove(cmd *cobra.Command, flags *rootFlags, id string, opts *removeOptions) error {
	if strings.TrimSpace(id) == "" {
		return newCommandError("remove design", "validating design ID", errors.New("design ID cannot be empty"), "Provide the ID of the design you wish to delete.")
	}

	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	design, err := lookupDesign(cmd, app, "remove design", id)
	if err != nil {
		return err
	}

	if !opts.force {
		confirmed, err := confirmRemoval(cmd, design)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	remaining, err := app.Designs.Delete(commandContext(cmd), design.ID)
	if err != nil {
		app.Logger.Error(err, "delete failed", "id", design.ID)
		return newCommandError("remove design", fmt.Sprintf("deleting design %q", design.ID), err, "Check disk space and permissions on "+app.Config.DataDir+", then retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted design %q\n", design.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), gallery.Summary(len(remaining)))
	return nil
}

func confirmRemoval(cmd *cobra.Command, d store.Design) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("remove design", "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? [y/N]: ", d.Name)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// load

func newDesignsLoadCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <design-id>",
		Short: "Open a saved design in the lab on its next start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, flags, args[0])
		},
	}

	return cmd
}

func runLoad(cmd *cobra.Command, flags *rootFlags, id string) error {
	app, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer app.Close()

	design, err := lookupDesign(cmd, app, "load design", id)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	replacing, err := app.Handoff.Pending(ctx)
	if err != nil {
		app.Logger.Warn("checking pending selection failed", "error", err.Error())
	}

	ctl := gallery.NewController(app.Designs, app.Handoff, app.Logger)
	if err := ctl.Handoff(ctx, design); err != nil {
		return newCommandError("load design", "storing the selection", err, "Check disk space and permissions on "+app.Config.DataDir+", then retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %q will open in the lab.\n", design.Name)
	if replacing {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  It replaces a design that was waiting to be opened.")
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nRun 'orbit lab' within %s to edit it.\n", app.Config.HandoffTTL)
	return nil
}

func lookupDesign(cmd *cobra.Command, app *AppContext, operation, id string) (store.Design, error) {
	design, err := app.Designs.Get(commandContext(cmd), id)
	if err != nil {
		if errors.Is(err, store.ErrDesignNotFound) {
			return store.Design{}, newCommandError(operation, fmt.Sprintf("looking up design %q", id), err, "Run 'orbit designs list' to view saved designs.")
		}
		return store.Design{}, newCommandError(operation, "reading the design collection", err, "Check permissions on "+app.Config.DataDir+".")
	}
	return design, nil
}
