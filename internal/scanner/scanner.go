// Package scanner lists the wallpaper images in a folder.
//
// Nothing is cached: every ListImages call reads the directory again, so the
// picker always shows what is on disk. Keep it that way; the folders are small
// and a stale list is worse than a few extra reads.
package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the image types shown when none are configured.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "bmp", "gif"}

// Scanner filters folder entries by extension.
type Scanner struct {
	extensions map[string]struct{}
}

// New creates a scanner for the given extensions, compared case-insensitively
// and written without the leading dot. Nil or empty uses DefaultExtensions.
func New(extensions []string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	s := &Scanner{extensions: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		s.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return s
}

// IsImage reports whether name has one of the scanner's extensions.
func (s *Scanner) IsImage(name string) bool {
	ext := filepath.Ext(name)
	// dotfiles such as ".png" have no extension
	if len(ext) < 2 || ext == filepath.Base(name) {
		return false
	}

	_, ok := s.extensions[strings.ToLower(ext[1:])]
	return ok
}

// ListImages returns the paths of the images directly inside folder.
//
// Errors are not reported: a missing or unreadable folder yields an empty
// list. The order is whatever the directory listing returns.
func (s *Scanner) ListImages(folder string) []string {
	images := []string{}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return images
	}

	for _, entry := range entries {
		if entry.IsDir() || !s.IsImage(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(folder, entry.Name()))
	}

	return images
}
