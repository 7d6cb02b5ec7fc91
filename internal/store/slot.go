// Package store persists saved designs and the gallery-to-lab handoff.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSlotEmpty is returned by Slot.Read when nothing has been written yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single durable key holding an opaque blob.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Name() string
}

// Archiver is implemented by slots that can set a copy of a blob aside
// under a derived name. It returns where the copy was written.
type Archiver interface {
	Archive(ctx context.Context, data []byte, suffix string) (string, error)
}

// FileSlot stores its blob in one file, replaced atomically on every write.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by path. The directory is created on first write.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Name returns the backing file path.
func (s *FileSlot) Name() string {
	return s.path
}

// Path returns the backing file path.
func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return data, nil
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	// Write to temporary file first
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *FileSlot) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Archive writes data next to the slot file as <path>.<suffix>.
func (s *FileSlot) Archive(ctx context.Context, data []byte, suffix string) (string, error) {
	archived := NewFileSlot(s.path + "." + suffix)
	if err := archived.Write(ctx, data); err != nil {
		return "", err
	}
	return archived.Path(), nil
}
