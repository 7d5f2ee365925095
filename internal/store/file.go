package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// File is a KV store backed by a single JSON object on disk, the local
// storage analog for desktop/headless builds. The whole file is rewritten
// on every Set; saves are small, so this stays well within the "fast
// synchronous persistence" budget.
type File struct {
	path   string
	values map[string]string
	mu     sync.Mutex
}

// NewFile opens (or initializes) a file-backed store at path. A missing
// file starts empty; an unreadable one is an error so callers can decide
// whether to fall back.
func NewFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parse save file: %w", err)
	}
	return f, nil
}

// Get returns the value for key and whether it was present.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set stores value under key and flushes the store to disk.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	data, err := json.Marshal(f.values)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write cannot truncate the save.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// Close is a no-op; Set already flushes every write.
func (f *File) Close() error {
	return nil
}
