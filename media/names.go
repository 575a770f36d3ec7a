package media

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultExt is the extension given to generated images.
const DefaultExt = ".png"

const nameLength = 16

// RandomFilename returns 16 lowercase hex characters taken from a random
// UUID with ext appended. An empty ext means DefaultExt.
func RandomFilename(ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:nameLength] + ext
}

// RandomPath returns RandomFilename(ext) inside dir. An empty dir keeps the
// name relative to the working directory.
func RandomPath(dir, ext string) string {
	name := RandomFilename(ext)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
