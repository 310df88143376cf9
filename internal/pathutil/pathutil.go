// Package pathutil holds the path-string helpers the simulator uses to derive
// companion asset file names.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Prober answers file existence queries.
type Prober interface {
	Exists(path string) bool
}

// OS probes the real filesystem.
type OS struct{}

func (OS) Exists(path string) bool { return Exists(path) }

// Set is an in-memory Prober.
type Set map[string]bool

func (s Set) Exists(path string) bool { return s[path] }

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ChangeExtension replaces the extension of path with ext. ext should include
// the leading dot. A path without an extension gets ext appended.
func ChangeExtension(path, ext string) string {
	return RemoveExtension(path) + ext
}

// RemoveExtension strips the final extension of path. Dots inside directory
// names are left alone.
func RemoveExtension(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
