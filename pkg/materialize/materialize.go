// Package materialize turns design nodes into print elements.
//
// A [Materializer] is created per conversion. It holds the unit converter
// and the image counter used to derive field names, so element output only
// depends on the input document and the order nodes are materialized in.
package materialize

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/units"
)

// Kind is the materialization outcome for a node.
type Kind int

const (
	// KindNone marks nodes that produce no element (frames, empty text).
	KindNone Kind = iota
	KindText
	KindImage
	KindShape
	// KindSkipped marks decorative images that are deliberately dropped.
	KindSkipped
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindShape:
		return "shape"
	case KindSkipped:
		return "skipped"
	}
	return "none"
}

// Defaults for nodes without geometry, in source pixels.
const (
	DefaultTextWidth   = 80.0
	DefaultTextHeight  = 12.0
	DefaultShapeWidth  = 100.0
	DefaultShapeHeight = 20.0
	DefaultFontSize    = 12.0

	// MinImageSide is the side length below which an image-filled
	// rectangle is considered decorative.
	MinImageSide = 20.0
	// MaxTitleRunes bounds element titles.
	MaxTitleRunes = 200

	// ShapeFontSize and ShapePadding style shape placeholders.
	ShapeFontSize = 8.0
	ShapePadding  = 2.0
	// ShapeFallbackName labels unnamed shape placeholders.
	ShapeFallbackName = "図形要素"
	// ImageFit is the fit mode of image elements.
	ImageFit = "contain"
)

// SkipReason is recorded for every skipped decorative image.
const SkipReason = "Meaningless image element (type:RECTANGLE, name:Image with imageHash)"

// Classify returns how n is materialized.
func Classify(n *design.Node) Kind {
	switch {
	case n == nil:
		return KindNone
	case n.IsText():
		return KindText
	case ShouldSkip(n):
		return KindSkipped
	case IsImage(n):
		return KindImage
	case n.IsShape():
		return KindShape
	}
	return KindNone
}

// IsImage reports whether n is a rectangle with an image fill.
func IsImage(n *design.Node) bool {
	return n.Type == design.TypeRectangle && n.HasImageFill()
}

// ShouldSkip reports whether n is a decorative image: an image-hashed
// rectangle named "image" (any case) or smaller than MinImageSide on both
// axes.
func ShouldSkip(n *design.Node) bool {
	if n.Type != design.TypeRectangle || n.ImageHash() == "" {
		return false
	}
	if strings.EqualFold(n.Name, "image") {
		return true
	}
	return n.Width > 0 && n.Height > 0 && n.Width < MinImageSide && n.Height < MinImageSide
}

// Materializer builds print elements for one conversion. It is not safe for
// concurrent use.
type Materializer struct {
	conv   *units.Converter
	paper  edoc.Paper
	images int
}

// New returns a Materializer that converts with conv onto paper.
func New(conv *units.Converter, paper edoc.Paper) *Materializer {
	return &Materializer{conv: conv, paper: paper}
}

// Converter returns the unit converter in use.
func (m *Materializer) Converter() *units.Converter { return m.conv }

// TextSize returns the page size of the text element for n. Text elements
// are further limited to 90% of the usable width and 15% of the usable
// height (but never below 15 mm) on top of the generic size clamps.
func (m *Materializer) TextSize(n *design.Node) (width, height float64) {
	width = m.conv.Width(orDefault(n.Width, DefaultTextWidth))
	height = m.conv.Height(orDefault(n.Height, DefaultTextHeight))
	width = math.Min(width, 0.9*(m.paper.Width-40))
	height = math.Min(height, math.Max(15, 0.15*(m.paper.Height-60)))
	return units.Round2(width), units.Round2(height)
}

// ShapeRect returns the page rectangle of a shape or image placed at the
// source position at.
func (m *Materializer) ShapeRect(n *design.Node, x, y float64) edoc.Rect {
	return edoc.Rect{
		Left:   m.conv.Position(x),
		Top:    m.conv.Position(y),
		Width:  m.conv.Width(orDefault(n.Width, DefaultShapeWidth)),
		Height: m.conv.Height(orDefault(n.Height, DefaultShapeHeight)),
	}
}

// Text returns a text element for n occupying rect. title is the element
// text; when empty the node characters, then its name, are used.
func (m *Materializer) Text(n *design.Node, title string, rect edoc.Rect) edoc.PrintElement {
	if title == "" {
		title = n.Characters
	}
	if title == "" {
		title = n.DisplayName(edoc.TitleText)
	}

	opts := baseOptions(rect)
	opts.Title = Sanitize(title)
	opts.FontSize = m.conv.FontSize(orDefault(n.FontSize, DefaultFontSize))
	opts.LetterSpacing = LetterSpacing(n.LetterSpacing)
	opts.TextContentVerticalAlign = VerticalAlign(n.TextAlignVertical)
	if n.FontWeight >= 600 {
		opts.FontWeight = "bold"
	}
	if n.TextAlignHorizontal != "" {
		opts.TextAlign = TextAlign(n.TextAlignHorizontal)
	}
	if c := n.FirstFillColor(); c != nil {
		opts.Color = HexColor(c)
	}
	if n.BackgroundColor != nil {
		opts.BackgroundColor = HexColor(n.BackgroundColor)
	}
	if len(n.Strokes) > 0 {
		opts.SetBorders(edoc.BorderSolid)
	}
	return edoc.PrintElement{
		Options:          opts,
		PrintElementType: edoc.PrintElementType{Title: edoc.TitleText, Type: edoc.TypeText},
	}
}

// Image returns an image element for n occupying rect. The source image
// cannot be carried over, so Src is empty and Field is a per-conversion
// sequence name the designer binds later.
func (m *Materializer) Image(n *design.Node, rect edoc.Rect) edoc.PrintElement {
	m.images++
	opts := baseOptions(rect)
	opts.Fit = ImageFit
	opts.Src = ""
	opts.Field = fmt.Sprintf("image_%d", m.images)
	return edoc.PrintElement{
		Options:          opts,
		PrintElementType: edoc.PrintElementType{Title: edoc.TitleImage, Type: edoc.TypeImage},
	}
}

// Shape returns a labelled placeholder text element for n occupying rect.
func (m *Materializer) Shape(n *design.Node, rect edoc.Rect) edoc.PrintElement {
	opts := baseOptions(rect)
	opts.Title = ShapeLabel(n)
	opts.FontSize = ShapeFontSize
	opts.SetPadding(ShapePadding)
	opts.TextAlign = "center"
	opts.TextContentVerticalAlign = "middle"
	if c := n.FirstFillColor(); c != nil {
		opts.BackgroundColor = HexColor(c)
	}
	if len(n.Strokes) > 0 {
		opts.SetBorders(edoc.BorderSolid)
		if c := n.FirstStrokeColor(); c != nil {
			opts.BorderColor = HexColor(c)
		}
	}
	return edoc.PrintElement{
		Options:          opts,
		PrintElementType: edoc.PrintElementType{Title: edoc.TitleText, Type: edoc.TypeText},
	}
}

// ShapeLabel returns the placeholder label "[TYPE] name" for n.
func ShapeLabel(n *design.Node) string {
	return fmt.Sprintf("[%s] %s", n.Type, n.DisplayName(ShapeFallbackName))
}

func baseOptions(rect edoc.Rect) edoc.Options {
	opts := edoc.Options{BorderWidth: edoc.DefaultBorderWidth}
	rect.Apply(&opts)
	return opts
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
