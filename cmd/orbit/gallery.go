package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	galleryctl "github.com/orbitlab/orbit/internal/gallery"
	"github.com/orbitlab/orbit/internal/store"
	"github.com/orbitlab/orbit/internal/tui/gallery"
)

func newGalleryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse, open, and delete saved designs",
		Long: `Browse saved designs. Press enter to open a design in the lab, d to delete it.
The list reloads when another orbit process changes the collection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd, flags)
		},
	}

	return cmd
}

func runGallery(cmd *cobra.Command, flags *rootFlags) error {
	app, err := openApp(cmd, flags, logToFile)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := commandContext(cmd)

	var changes <-chan struct{}
	watcher, err := store.NewWatcher(app.Backend.WatchPath, store.DefaultWatchDebounce, app.Logger)
	if err != nil {
		app.Logger.Warn("live reload disabled", "error", err)
	} else {
		changes, err = watcher.Start()
		if err != nil {
			app.Logger.Warn("live reload disabled", "error", err)
			changes = nil
		}
		defer func() { _ = watcher.Stop() }()
	}

	ctl := galleryctl.NewController(app.Designs, app.Handoff, app.Logger)
	m := gallery.NewModel(ctx, ctl, gallery.Options{
		Changes:    changes,
		UseUnicode: supportsUnicode(cmd.OutOrStdout()),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		app.Logger.Error(err, "gallery execution failed")
		return fmt.Errorf("failed to run gallery: %w", err)
	}

	gm, ok := final.(gallery.Model)
	if !ok {
		return nil
	}
	if _, loaded := gm.Loaded(); loaded {
		return launchLab(cmd, app)
	}

	app.Logger.Info("gallery closed")
	return nil
}
