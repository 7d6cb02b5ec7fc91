package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/tui/lab"
)

func newLabCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Launch the interactive design lab",
		Long: `Launch the interactive design lab. A design picked in the gallery or with
'orbit designs load' opens in the lab; otherwise it starts from the default design.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLab(cmd, flags)
		},
	}

	return cmd
}

func runLab(cmd *cobra.Command, flags *rootFlags) error {
	app, err := openApp(cmd, flags, logToFile)
	if err != nil {
		return err
	}
	defer app.Close()

	return launchLab(cmd, app)
}

// launchLab runs the lab, seeded with a pending handoff selection if any.
func launchLab(cmd *cobra.Command, app *AppContext) error {
	ctx := commandContext(cmd)

	opts := lab.Options{
		Logger:     app.Logger,
		UseUnicode: supportsUnicode(cmd.OutOrStdout()),
	}

	sel, ok, err := app.Handoff.Take(ctx)
	switch {
	case err != nil:
		// The lab still opens on the default design.
		app.Logger.Error(err, "reading handoff failed")
	case ok:
		initial := sel.Customization
		opts.Initial = &initial
		opts.OriginName = sel.Name
		app.Logger.Info("lab opened from gallery", "id", sel.DesignID)
	}

	m := lab.NewModel(ctx, app.Designs, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		app.Logger.Error(err, "lab execution failed")
		return fmt.Errorf("failed to run lab: %w", err)
	}

	if lm, ok := final.(lab.Model); ok {
		if saved := lm.Saved(); len(saved) > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d design(s) this session. Run 'orbit gallery' to browse them.\n", len(saved))
		}
	}

	app.Logger.Info("lab closed")
	return nil
}
