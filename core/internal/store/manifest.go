package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Item is one project folder and its display artifact. Path is relative to
// the project root with forward slashes; the viewer reads it as "model".
type Item struct {
	Name string `json:"name"`
	Path string `json:"model"`
}

type Manifest struct {
	Items []Item `json:"items"`
}

type WriteResult struct {
	Path      string
	SHA256    string
	SizeBytes int64
	Changed   bool
}

// Encode renders m as indented JSON with a trailing newline. No items
// encode as an empty array.
func Encode(m Manifest) ([]byte, error) {
	if m.Items == nil {
		m.Items = []Item{}
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Write replaces the manifest at path unless it already holds the same bytes.
func Write(path string, m Manifest) (WriteResult, error) {
	b, err := Encode(m)
	if err != nil {
		return WriteResult{}, err
	}

	res := WriteResult{Path: path, SHA256: SHA256Bytes(b), SizeBytes: int64(len(b))}
	if prev, _, err := SHA256File(path); err == nil && prev == res.SHA256 {
		return res, nil
	}

	if err := WriteFileAtomic(path, b, 0o644); err != nil {
		return res, err
	}
	res.Changed = true
	return res, nil
}

func Read(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}
