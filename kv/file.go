package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File stores every key in a single JSON object on disk. The file is re-read
// on each Get so that other processes sharing it are observed.
type File struct {
	mu       sync.RWMutex
	filePath string
}

// NewFile returns a File backend at filePath. A missing file is not an error;
// it is created on the first Set.
func NewFile(filePath string) (*File, error) {
	if filePath == "" {
		return nil, errors.New("kv: file path is required")
	}
	f := &File{filePath: filePath}
	// Surface unreadable or corrupt files at startup rather than on first use.
	if _, err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) ([]string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, err := f.load()
	if err != nil {
		return nil, false, err
	}
	items, ok := data[key]
	return items, ok, nil
}

func (f *File) Set(_ context.Context, key string, items []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	data[key] = items
	return f.writeAtomic(data)
}

func (f *File) Close() error { return nil }

func (f *File) load() (map[string][]string, error) {
	raw, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string][]string{}, nil
		}
		return nil, err
	}
	data := map[string][]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("kv: decode %s: %w", f.filePath, err)
	}
	return data, nil
}

// writeAtomic writes to a uniquely named temp file in the same directory
// then renames it over filePath, so readers in other processes only ever
// see a complete file. Caller must hold f.mu.
func (f *File) writeAtomic(data map[string][]string) error {
	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.filePath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
