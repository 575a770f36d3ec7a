package media

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/dreamfuse"
)

// DefaultPublicBaseURL is where the platform serves uploaded temp files.
const DefaultPublicBaseURL = "https://momodel.cn/pyapi/file/temp_file/"

// tempPrefix is stripped from platform paths before they are appended to the base URL.
const tempPrefix = "/tmp/"

// Resolver maps platform temp paths to public URLs.
type Resolver struct {
	BaseURL string
}

// NewResolver returns a resolver for baseURL, or the platform default when empty.
func NewResolver(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultPublicBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Resolver{BaseURL: baseURL}
}

// PublicURL returns the URL under which the platform serves path.
// Every "/tmp/" segment is removed, matching how the platform names files.
func (r *Resolver) PublicURL(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("resolve public url: %w", dreamfuse.ErrMissingParam)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	return r.BaseURL + strings.ReplaceAll(path, tempPrefix, ""), nil
}
