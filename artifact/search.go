package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FirstImage returns the first file in dir, in listing order, whose name
// matches exts. A missing or unreadable dir is not an error, just no match.
func FirstImage(dir string, exts ExtensionSet) (string, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !exts.Match(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if isFile(p, e) {
			return p, true
		}
	}
	return "", false
}

// isFile accepts regular files and symlinks that resolve to one.
func isFile(path string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FirstModel searches root depth-first for a file matching exts. Files of a
// directory are checked before any of its subdirectories, so shallower
// matches win. root is depth 0; directories deeper than maxDepth are not read.
// Symlinks are never followed.
func FirstModel(root string, exts ExtensionSet, maxDepth int) (string, bool) {
	return firstModel(root, exts, 0, maxDepth)
}

func firstModel(dir string, exts ExtensionSet, depth, maxDepth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	for _, e := range entries {
		if e.Type().IsRegular() && exts.Match(e.Name()) {
			return filepath.Join(dir, e.Name()), true
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if p, ok := firstModel(filepath.Join(dir, e.Name()), exts, depth+1, maxDepth); ok {
			return p, true
		}
	}
	return "", false
}
