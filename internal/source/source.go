// Package source enumerates image files for a browsing session.
// Enumeration is a one-time snapshot: the sequence and its ordering are
// fixed for the lifetime of the session.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item is one entry in the enumerated image sequence.
type Item struct {
	Path string // absolute path
	Name string // base name, used for ordering and display
	Size int64  // file size in bytes
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether the path has a recognized image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// List enumerates the image files under root in natural order.
// If root is a regular file, its parent directory is enumerated and the
// returned start index points at that file (0 if it was filtered out).
// If root is a directory, start is 0.
//
// Entries that cannot be stat'd are skipped. An unreadable root is the
// only fatal case.
func List(root string) (items []Item, start int, err error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", root, err)
	}

	dir := abs
	focus := ""
	if !info.IsDir() {
		dir = filepath.Dir(abs)
		focus = abs
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read directory %s: %w", dir, err)
	}

	items = make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		fi, statErr := e.Info()
		if statErr != nil {
			continue // unreadable entry, skip rather than abort
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		items = append(items, Item{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
			Size: fi.Size(),
		})
	}

	Sort(items)

	if focus != "" {
		for i, it := range items {
			if it.Path == focus {
				start = i
				break
			}
		}
	}

	return items, start, nil
}

// Next returns the index after i with wraparound, or -1 on an empty
// sequence.
func Next(i, n int) int {
	if n <= 0 {
		return -1
	}
	return (i + 1) % n
}

// Prev returns the index before i with wraparound, or -1 on an empty
// sequence.
func Prev(i, n int) int {
	if n <= 0 {
		return -1
	}
	return (i - 1 + n) % n
}

// Distance returns the minimal circular distance between indices a and b
// in a sequence of length n.
func Distance(a, b, n int) int {
	if n <= 0 {
		return 0
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	if wrap := n - d; wrap < d {
		return wrap
	}
	return d
}
