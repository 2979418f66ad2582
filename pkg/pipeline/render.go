package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/render"
	"github.com/matzehuels/pagefit/pkg/render/preview"
	"github.com/matzehuels/pagefit/pkg/render/treeviz"
	"github.com/matzehuels/pagefit/pkg/report"
)

// Render generates output artifacts in the requested formats. rep may be
// nil when FormatReport is not requested.
func Render(ctx context.Context, res *convert.Result, doc *design.Document, rep *report.Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	previewSVG := func() []byte {
		if svg == nil {
			svg = RenderPreview(res.Document, opts)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = edoc.Marshal(res.Document)
		case FormatSVG:
			data = previewSVG()
		case FormatPDF:
			data, err = render.ToPDF(ctx, previewSVG())
		case FormatPNG:
			data, err = render.ToPNG(ctx, previewSVG(), opts.Zoom)
		case FormatReport:
			if rep == nil {
				rep = report.Build(res)
			}
			data, err = json.MarshalIndent(rep, "", "  ")
		case FormatDOT:
			data = []byte(treeviz.ToDOT(&doc.Node, treeviz.Options{Detailed: true}))
		case FormatTree:
			data, err = treeviz.RenderSVG(ctx, treeviz.ToDOT(&doc.Node, treeviz.Options{Detailed: true}))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderPreview renders the page preview SVG with the options' overlays.
func RenderPreview(doc *edoc.Document, opts Options) []byte {
	var popts []preview.Option
	if opts.Margins {
		popts = append(popts, preview.WithMargins())
	}
	if opts.Indexes {
		popts = append(popts, preview.WithIndexes())
	}
	return preview.RenderSVG(doc, popts...)
}
