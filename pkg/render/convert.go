package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
)

// Converter is the SVG converter binary looked up on PATH.
var Converter = "rsvg-convert"

// ToPDF converts an SVG page to a PDF page with the converter binary.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, "pdf")
}

// ToPNG converts an SVG page to PNG. zoom scales the output resolution;
// values ≤ 0 mean 1.
func ToPNG(ctx context.Context, svg []byte, zoom float64) ([]byte, error) {
	if zoom <= 0 {
		zoom = 1
	}
	return convertSVG(ctx, svg, "png", "-z", strconv.FormatFloat(zoom, 'f', 2, 64))
}

// Available reports whether the converter binary is on PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

func convertSVG(ctx context.Context, svg []byte, format string, extra ...string) ([]byte, error) {
	path, err := exec.LookPath(Converter)
	if err != nil {
		return nil, apperr.New(apperr.ErrCodeUnsupported,
			"%s output requires %s (librsvg): brew install librsvg (macOS), apt install librsvg2-bin (Linux)", format, Converter)
	}

	cmd := exec.CommandContext(ctx, path, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
