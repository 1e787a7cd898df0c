// Package recent tracks the most recently selected items in a bounded,
// deduplicated, most-recent-first list.
package recent

import "context"

// Store maintains the recent list on top of a Backend. The backend is chosen
// once by NewStore and never changes.
//
// Promote is an unserialized read-modify-write. Two stores (or goroutines)
// promoting against the same backend at the same time race, and the later
// write wins; one of the two promotions may be lost.
type Store struct {
	backend    Backend
	key        string
	persistent bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the key the list is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore returns a Store writing through persistent. When persistent is
// nil the list lives in process memory for the lifetime of the Store.
func NewStore(persistent Backend, opts ...Option) *Store {
	s := &Store{key: DefaultKey}
	if persistent != nil {
		s.backend = persistent
		s.persistent = true
	} else {
		s.backend = newMemoryBackend()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Persistent reports whether the store writes to a durable backend.
func (s *Store) Persistent() bool {
	return s.persistent
}

// Key returns the backend key of the list.
func (s *Store) Key() string {
	return s.key
}

// List returns the current recent list, most recent first. It is never nil.
func (s *Store) List(ctx context.Context) ([]string, error) {
	items, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: s.key, Err: err}
	}
	if !found || items == nil {
		return []string{}, nil
	}
	return items, nil
}

// Promote moves item to the front of the list (inserting it if absent),
// caps the list at MaxRecent and writes it back. An empty item is a no-op:
// the list is returned as is, or empty if it cannot be read, and no error
// is reported.
func (s *Store) Promote(ctx context.Context, item string) ([]string, error) {
	if item == "" {
		existing, err := s.List(ctx)
		if err != nil {
			return []string{}, nil
		}
		return existing, nil
	}
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// Build new MRU list: prepend item, deduplicate, cap at MaxRecent.
	seen := map[string]bool{item: true}
	newList := make([]string, 0, MaxRecent)
	newList = append(newList, item)
	for _, e := range existing {
		if len(newList) == MaxRecent {
			break
		}
		if seen[e] || e == "" {
			continue
		}
		seen[e] = true
		newList = append(newList, e)
	}

	if err := s.backend.Set(ctx, s.key, newList); err != nil {
		return nil, &StorageError{Op: "set", Key: s.key, Err: err}
	}
	return newList, nil
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Set(ctx, s.key, []string{}); err != nil {
		return &StorageError{Op: "set", Key: s.key, Err: err}
	}
	return nil
}
