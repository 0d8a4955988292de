package tree

import (
	"bufio"
	"io"
	"strings"
)

// TextStyle holds the strings used to draw an outline.
type TextStyle struct {
	Branch string // connector for a row with later siblings
	Last   string // connector for the last row at its depth
	Pipe   string // ancestor column that still has later siblings
	Space  string // ancestor column that is finished

	// RootConnectors draws connectors in front of depth-0 rows too.
	// By default roots are printed bare, like tree(1) prints its argument.
	RootConnectors bool
}

var (
	// UnicodeStyle draws with box-drawing characters.
	UnicodeStyle = TextStyle{Branch: "├── ", Last: "└── ", Pipe: "│   ", Space: "    "}

	// ASCIIStyle draws with plain ASCII, for terminals without box drawing.
	ASCIIStyle = TextStyle{Branch: "|-- ", Last: "`-- ", Pipe: "|   ", Space: "    "}
)

// Text renders rows as an indented outline, one line per row.
func Text[T any](rows []Row[T], label func(T) string, style TextStyle) string {
	var b strings.Builder
	_ = WriteText(&b, rows, label, style)
	return b.String()
}

// WriteText writes the outline produced by [Text] to w.
//
// Every ancestor column, depth-1 included, draws style.Pipe while that
// ancestor has later siblings and style.Space otherwise.
func WriteText[T any](w io.Writer, rows []Row[T], label func(T) string, style TextStyle) error {
	bw := bufio.NewWriter(w)
	first := 1
	if style.RootConnectors {
		first = 0
	}

	var open []bool // open[d]: the latest row at depth d has later siblings
	for _, r := range rows {
		for d := first; d < r.Depth; d++ {
			if d < len(open) && open[d] {
				bw.WriteString(style.Pipe)
			} else {
				bw.WriteString(style.Space)
			}
		}
		if r.Depth >= first {
			if r.Connector.HasNext() {
				bw.WriteString(style.Branch)
			} else {
				bw.WriteString(style.Last)
			}
		}
		bw.WriteString(label(r.Item))
		bw.WriteByte('\n')

		if r.Depth < len(open) {
			open = open[:r.Depth]
		}
		for len(open) < r.Depth {
			open = append(open, false)
		}
		open = append(open, r.Connector.HasNext())
	}
	return bw.Flush()
}

// Indent renders a single row the way a list view shows it: two spaces per
// level followed by the connector glyph. It is the minimal presentation the
// interactive explorer builds on.
func Indent[T any](r Row[T], label func(T) string) string {
	return strings.Repeat("  ", r.Depth) + r.Connector.Glyph() + " " + label(r.Item)
}
