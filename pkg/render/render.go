package render

import (
	"bytes"
	"context"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// Output formats understood by [Render].
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// Formats lists every format in the order shown to users.
var Formats = []string{FormatText, FormatJSON, FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// ValidateFormat returns an INVALID_FORMAT error for unknown format names.
func ValidateFormat(format string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "format", format, Formats)
}

// Binary reports whether format produces bytes that should not be written
// to a terminal.
func Binary(format string) bool {
	return format == FormatPDF || format == FormatPNG
}

// UsesGraphviz reports whether format is drawn by Graphviz. These formats are
// far slower than the others and worth caching.
func UsesGraphviz(format string) bool {
	return format == FormatSVG || format == FormatPDF || format == FormatPNG
}

// Options configures [Render].
type Options struct {
	Style tree.TextStyle // text format only; zero value means UnicodeStyle
	Scale float64        // png format only; zero value means 2
}

// Render produces the artifact for format from rows.
func Render[T any](ctx context.Context, format string, rows []tree.Row[T], label func(T) string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatText:
		style := opts.Style
		if style == (tree.TextStyle{}) {
			style = tree.UnicodeStyle
		}
		if err := tree.WriteText(&buf, rows, label, style); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if err := WriteJSON(&buf, rows, label); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(ToDOT(rows, label)), nil
	}

	svg, err := RenderSVG(ctx, ToDOT(rows, label))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	switch format {
	case FormatPDF:
		return ToPDF(ctx, svg)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2
		}
		return ToPNG(ctx, svg, scale)
	default:
		return svg, nil
	}
}
