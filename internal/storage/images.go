// Package storage saves uploaded asset images to local disk.  Files are
// written under a base directory served statically at /images/, and
// named by upload timestamp plus the original extension so concurrent
// uploads of the same filename cannot overwrite each other.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore writes uploaded images under a base directory.
type ImageStore struct {
	basePath string
	now      func() time.Time // injectable clock for tests
}

// NewImageStore creates the base directory if missing.
func NewImageStore(basePath string) (*ImageStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("image base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &ImageStore{basePath: basePath, now: time.Now}, nil
}

// Save stores an uploaded image and returns the relative URL path
// (/images/<name>) persisted with the asset row.  The stored name is
// the upload timestamp in unix milliseconds with a nanosecond suffix to
// narrow the collision window, plus the sanitized original extension.
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	ts := s.now().UTC()
	name := fmt.Sprintf("%d_%d%s", ts.UnixMilli(), ts.Nanosecond()%1e6, safeExt(originalName))
	target := filepath.Join(s.basePath, name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/images/" + name, nil
}

// safeExt extracts the extension of the client-supplied filename and
// strips anything that could escape the image directory or confuse the
// static file server.  Unusable extensions degrade to empty.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || ext == "." {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	if len(ext) > 10 {
		return ""
	}
	return ext
}
