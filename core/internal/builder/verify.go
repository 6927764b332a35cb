package builder

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"work-manifest/artifact"
	"work-manifest/core/internal/config"
	"work-manifest/core/internal/store"
)

// Problem is a manifest entry the viewer would fail to load.
type Problem struct {
	Name   string
	Path   string
	Reason string
}

// Verify checks an existing manifest against the tree under the project root.
func Verify(cfg config.Config, m store.Manifest) []Problem {
	exts := artifact.NewExtensionSet(append(append([]string{}, cfg.ImageExtensions...), cfg.ModelExtensions...)...)
	seen := make(map[string]bool, len(m.Items))

	var problems []Problem
	for _, it := range m.Items {
		add := func(reason string) {
			problems = append(problems, Problem{Name: it.Name, Path: it.Path, Reason: reason})
		}

		if seen[it.Name] {
			add("duplicate name")
		}
		seen[it.Name] = true

		if it.Path == "" || path.IsAbs(it.Path) || strings.Contains(it.Path, `\`) {
			add("path must be relative with forward slashes")
			continue
		}
		if !exts.Match(it.Path) {
			add("unsupported extension")
		}

		info, err := os.Stat(filepath.Join(cfg.ProjectRoot, filepath.FromSlash(it.Path)))
		switch {
		case err != nil:
			add("missing file")
		case !info.Mode().IsRegular():
			add("not a regular file")
		}
	}
	return problems
}
