package artifact

import (
	"path/filepath"
	"strings"
)

// Kind names the rule that selected a display artifact.
type Kind string

const (
	KindDisplayImage Kind = "display_image"
	KindRenderImage  Kind = "render_image"
	KindModel        Kind = "model"
)

func (k Kind) String() string { return string(k) }

// Finder tries one selection rule against a project folder.
type Finder struct {
	Kind Kind
	Find func(projectDir string) (string, bool)
}

// First runs finders in order and returns the first hit.
func First(finders []Finder, projectDir string) (Kind, string, bool) {
	for _, f := range finders {
		if p, ok := f.Find(projectDir); ok {
			return f.Kind, p, true
		}
	}
	return "", "", false
}

// ExtensionSet is a case-insensitive set of file extensions without the leading dot.
type ExtensionSet map[string]struct{}

func NewExtensionSet(exts ...string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		s[e] = struct{}{}
	}
	return s
}

// Match reports whether the final extension of name is in the set.
func (s ExtensionSet) Match(name string) bool {
	ext := filepath.Ext(name)
	if len(ext) < 2 {
		return false
	}
	_, ok := s[strings.ToLower(ext[1:])]
	return ok
}
