package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/scenetree/pkg/tree"
)

// JSONRow is the serialized form of one flattened row.
type JSONRow struct {
	Label     string         `json:"label"`
	Depth     int            `json:"depth"`
	Connector tree.Connector `json:"connector"`
	Parent    int            `json:"parent"`
}

// JSONDocument is the top-level object written by [WriteJSON].
type JSONDocument struct {
	Rows []JSONRow `json:"rows"`
}

// NewJSONDocument converts rows to their serialized form. Parent is the index
// of the parent row, or -1 for roots.
func NewJSONDocument[T any](rows []tree.Row[T], label func(T) string) JSONDocument {
	parents := tree.Parents(rows)
	out := JSONDocument{Rows: make([]JSONRow, len(rows))}
	for i, r := range rows {
		out.Rows[i] = JSONRow{
			Label:     label(r.Item),
			Depth:     r.Depth,
			Connector: r.Connector,
			Parent:    parents[i],
		}
	}
	return out
}

// WriteJSON encodes rows as indented JSON and writes them to w.
func WriteJSON[T any](w io.Writer, rows []tree.Row[T], label func(T) string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSONDocument(rows, label)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
