package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// MediaFilter decides which files are photos to process and which parts of
// the tree are ignored.
type MediaFilter struct {
	exts   []string
	ignore []string
}

func NewMediaFilter(cfg *Config) *MediaFilter {
	return &MediaFilter{exts: cfg.ImageExt, ignore: cfg.Ignore}
}

// IsImage reports whether name has one of the configured extensions. Hidden
// files, including our own temporary copies, never qualify.
func (m *MediaFilter) IsImage(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(m.exts, strings.ToLower(filepath.Ext(base)))
}

// Ignored reports whether rel, a slash separated path relative to the walk
// root, matches an ignore pattern.
func (m *MediaFilter) Ignored(rel string, isDir bool) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, p := range m.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(p, rel+"/"); ok {
				return true
			}
		}
	}
	return false
}

// ScanImages scans root recursively for photos.
func ScanImages(fsys afero.Fs, root string, m *MediaFilter) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// unreadable parts of the tree are reported by the walker
			return nil
		}
		rel := relSlash(root, path)
		if info.IsDir() {
			if m.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.IsImage(path) && !m.Ignored(rel, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	return files, nil
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
