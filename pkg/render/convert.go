package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/scenetree/pkg/errors"
)

// converter is the librsvg command line tool used for PDF and PNG output.
var converter = "rsvg-convert"

// ToPDF converts an SVG drawing to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, FormatPDF)
}

// ToPNG converts an SVG drawing to PNG, scaled by zoom (2 doubles the
// resolution).
func ToPNG(ctx context.Context, svg []byte, zoom float64) ([]byte, error) {
	return convertSVG(ctx, svg, FormatPNG, "--zoom", strconv.FormatFloat(zoom, 'f', 2, 64))
}

func convertSVG(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s output needs %s (brew install librsvg, apt install librsvg2-bin)", format, converter)
	}

	cmd := exec.CommandContext(ctx, path, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert svg to %s: %s", format, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert svg to %s", format)
	}
	return out.Bytes(), nil
}
