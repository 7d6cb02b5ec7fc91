package gallery

import (
	tea "github.com/charmbracelet/bubbletea"
)

// waitForChangeCmd blocks until the watcher signals and reports it as a message.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return WatchClosedMsg{}
		}
		return DesignsChangedMsg{}
	}
}
