package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as <dir>/<key>.json. Human-readable, portable.
type File struct {
	dir string
}

func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Load(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

// Save replaces the value through a temp file and rename, so readers see
// either the old or the new value.
func (f *File) Save(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }
