package store

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend kinds accepted by OpenBackend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backend bundles the slots used by the application.
type Backend struct {
	Kind    string
	Designs Slot
	Handoff Slot
	// WatchPath is the file that changes whenever the design collection does.
	WatchPath string

	closer func() error
}

// OpenBackend opens the slots of the given kind under dataDir.
func OpenBackend(ctx context.Context, kind, dataDir string) (*Backend, error) {
	switch kind {
	case BackendFile, "":
		designs := filepath.Join(dataDir, "designs.json")
		return &Backend{
			Kind:      BackendFile,
			Designs:   NewFileSlot(designs),
			Handoff:   NewFileSlot(filepath.Join(dataDir, "handoff.json")),
			WatchPath: designs,
		}, nil
	case BackendSQLite:
		path := filepath.Join(dataDir, "orbit.db")
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Kind:      BackendSQLite,
			Designs:   db.Slot(DesignsKey),
			Handoff:   db.Slot(HandoffKey),
			WatchPath: path,
			closer:    db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Close releases any resources held by the backend.
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}
