package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/scenetree/pkg/tree"
)

// WriteJSON encodes roots as an indented JSON array and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(roots []*tree.Node, w io.Writer) error {
	if roots == nil {
		roots = []*tree.Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(roots); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes roots to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(roots []*tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(roots, f)
}
