package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pos-service/internal/model"
)

// File keeps the slot as <dir>/<key>.json on the local disk
type File struct {
	path string
}

// NewFile creates dir when needed and returns a slot named key inside it
func NewFile(dir, key string) (*File, error) {
	if key == "" {
		key = DefaultKey
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the slot file location
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(ctx context.Context) (model.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Decode(nil)
	}
	if err != nil {
		return model.State{}, fmt.Errorf("failed to read storage file: %w", err)
	}
	return Decode(data)
}

// Save writes to a temporary file in the same directory and renames it over
// the slot, so a crash never leaves a half-written document behind.
func (f *File) Save(ctx context.Context, state model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary storage file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
