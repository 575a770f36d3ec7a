package media

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// TempFiles tracks intermediate files that must not outlive a request.
type TempFiles struct {
	mu    sync.Mutex
	paths []string
}

// Track registers paths for removal and returns the first one for chaining.
func (t *TempFiles) Track(paths ...string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths = append(t.paths, paths...)
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// Keep stops tracking path so RemoveAll leaves it in place.
func (t *TempFiles) Keep(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.paths[:0]
	for _, p := range t.paths {
		if p != path {
			kept = append(kept, p)
		}
	}
	t.paths = kept
}

// RemoveAll deletes every tracked file. Files that were never created are
// ignored; other failures are joined into the returned error.
func (t *TempFiles) RemoveAll() error {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
