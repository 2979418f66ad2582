// Package render provides the visual outputs of pagefit.
//
// # Overview
//
//   - Page previews of converted print documents (in [preview])
//   - Design-tree diagrams for diagnostics (in [treeviz])
//   - Generic format conversion from SVG to PDF/PNG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := preview.RenderSVG(doc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x zoom
//
// [preview]: github.com/matzehuels/pagefit/pkg/render/preview
// [treeviz]: github.com/matzehuels/pagefit/pkg/render/treeviz
package render
