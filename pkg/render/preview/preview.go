// Package preview renders converted print documents as SVG pages.
//
// The page is drawn at its physical size: the SVG user unit is one
// millimeter, so the output can be measured against the paper directly.
// Text elements show their title in a dashed frame, image elements a
// crossed placeholder box.
package preview

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/units"
)

// MMPerPoint converts font points to millimeters.
const MMPerPoint = 0.352778

const previewCSS = `
    .page { fill: white; stroke: #999; stroke-width: 0.3; }
    .margin { fill: none; stroke: #ccc; stroke-width: 0.2; stroke-dasharray: 1 1; }
    .el-text { fill-opacity: 0; stroke: #4a90d9; stroke-width: 0.2; stroke-dasharray: 0.8 0.4; }
    .el-image { fill: #f2f2f2; stroke: #888; stroke-width: 0.2; }
    .el-index { fill: #d9534f; font-family: sans-serif; }`

type Option func(*renderer)

type renderer struct {
	margins bool
	indexes bool
	zoom    float64
}

// WithMargins outlines the printable area inside the page margin.
func WithMargins() Option { return func(r *renderer) { r.margins = true } }

// WithIndexes labels each element with its position in the panel.
func WithIndexes() Option { return func(r *renderer) { r.indexes = true } }

// WithZoom sets the pixels per millimeter of the width and height
// attributes. The viewBox stays in millimeters.
func WithZoom(z float64) Option { return func(r *renderer) { r.zoom = z } }

// RenderSVG renders the first panel of doc.
func RenderSVG(doc *edoc.Document, opts ...Option) []byte {
	r := renderer{zoom: 1 / units.MMPerPixel}
	for _, opt := range opts {
		opt(&r)
	}

	paper := doc.Paper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		paper.Width, paper.Height, paper.Width*r.zoom, paper.Height*r.zoom)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", previewCSS)
	fmt.Fprintf(&buf, `  <rect class="page" x="0" y="0" width="%.2f" height="%.2f"/>`+"\n", paper.Width, paper.Height)

	if r.margins {
		m := units.PageMargin
		fmt.Fprintf(&buf, `  <rect class="margin" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			m, m, paper.Width-2*m, paper.Height-2*m)
	}

	for i, el := range doc.Elements() {
		if el.IsImage() {
			renderImage(&buf, el)
		} else {
			renderText(&buf, el)
		}
		if r.indexes {
			fmt.Fprintf(&buf, `  <text class="el-index" x="%.2f" y="%.2f" font-size="2.5">%d</text>`+"\n",
				el.Options.Left, el.Options.Top-0.5, i+1)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderText(buf *bytes.Buffer, el edoc.PrintElement) {
	o := el.Options
	fmt.Fprintf(buf, `  <g id="el-%s">`+"\n", elementID(el))
	if o.BackgroundColor != "" {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			o.Left, o.Top, o.Width, o.Height, escapeXML(o.BackgroundColor))
	}
	stroke := ""
	if o.BorderTop != "" {
		stroke = ` style="stroke-dasharray: none; stroke: #333"`
		if o.BorderColor != "" {
			stroke = fmt.Sprintf(` style="stroke-dasharray: none; stroke: %s"`, escapeXML(o.BorderColor))
		}
	}
	fmt.Fprintf(buf, `    <rect class="el-text" x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
		o.Left, o.Top, o.Width, o.Height, stroke)

	size := o.FontSize * MMPerPoint
	if size <= 0 {
		size = units.MinFontSize * MMPerPoint
	}
	x, anchor := textX(o)
	y := textY(o, size)
	color := o.Color
	if color == "" {
		color = "#000000"
	}
	weight := ""
	if o.FontWeight != "" {
		weight = fmt.Sprintf(` font-weight="%s"`, escapeXML(o.FontWeight))
	}
	line, _, _ := strings.Cut(o.Title, "\n")
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" font-family="sans-serif" fill="%s" text-anchor="%s"%s>%s</text>`+"\n",
		x, y, size, escapeXML(color), anchor, weight, escapeXML(line))
	buf.WriteString("  </g>\n")
}

func renderImage(buf *bytes.Buffer, el edoc.PrintElement) {
	o := el.Options
	fmt.Fprintf(buf, `  <g id="el-%s">`+"\n", elementID(el))
	fmt.Fprintf(buf, `    <rect class="el-image" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		o.Left, o.Top, o.Width, o.Height)
	fmt.Fprintf(buf, `    <path d="M%.2f %.2f L%.2f %.2f M%.2f %.2f L%.2f %.2f" stroke="#bbb" stroke-width="0.2"/>`+"\n",
		o.Left, o.Top, o.Right, o.Bottom, o.Right, o.Top, o.Left, o.Bottom)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="2.5" font-family="sans-serif" fill="#666" text-anchor="middle">%s</text>`+"\n",
		o.VCenter, o.HCenter, escapeXML(o.Field))
	buf.WriteString("  </g>\n")
}

func textX(o edoc.Options) (float64, string) {
	switch o.TextAlign {
	case "center":
		return o.VCenter, "middle"
	case "right":
		return o.Right - o.ContentPaddingRight, "end"
	}
	return o.Left + o.ContentPaddingLeft, "start"
}

func textY(o edoc.Options, size float64) float64 {
	switch o.TextContentVerticalAlign {
	case "top":
		return o.Top + o.ContentPaddingTop + size
	case "bottom":
		return o.Bottom - o.ContentPaddingBottom
	}
	return o.HCenter + size/3
}

func elementID(el edoc.PrintElement) string {
	if el.Options.Field != "" {
		return sanitizeID(el.Options.Field)
	}
	return fmt.Sprintf("%s-%.0f-%.0f", el.PrintElementType.Type, el.Options.Left*100, el.Options.Top*100)
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
