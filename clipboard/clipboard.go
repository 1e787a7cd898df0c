// Package clipboard writes selected items to the host clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	WriteText(value string) error
}

var ErrEmpty = errors.New("clipboard: nothing to write")

// System writes to the operating system clipboard. The underlying clipboard
// is initialized on first use; if that fails every write fails with the
// same error.
type System struct {
	once    sync.Once
	initErr error
}

func (s *System) WriteText(value string) error {
	if value == "" {
		return ErrEmpty
	}
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			s.initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	})
	if s.initErr != nil {
		return s.initErr
	}
	clipboard.Write(clipboard.FmtText, []byte(value))
	return nil
}

// Noop discards writes. Used when clipboard access is disabled.
type Noop struct{}

func (Noop) WriteText(string) error { return nil }

// Func adapts a function to Writer.
type Func func(value string) error

func (f Func) WriteText(value string) error { return f(value) }
