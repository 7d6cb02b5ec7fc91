package gallery

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewConfirm
	ViewHelp
)

// DesignsChangedMsg reports that the persisted collection changed on disk.
type DesignsChangedMsg struct{}

// WatchClosedMsg reports that the change feed stopped.
type WatchClosedMsg struct{}
