package recent

import (
	"context"
	"errors"
	"fmt"
)

// MaxRecent is the capacity of the recent list.
const MaxRecent = 20

// DefaultKey is the backend key the recent list is stored under.
const DefaultKey = "recentSelections"

// Backend is a key-value store holding ordered string lists.
// Get reports found=false when nothing has been stored under key yet.
type Backend interface {
	Get(ctx context.Context, key string) (items []string, found bool, err error)
	Set(ctx context.Context, key string, items []string) error
}

var ErrStorage = errors.New("recent list storage failure")

// StorageError wraps a backend failure. It matches ErrStorage under errors.Is.
type StorageError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("recent: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
