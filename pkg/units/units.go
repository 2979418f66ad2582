// Package units converts source-pixel quantities into print millimeters.
//
// Three conversions are provided, each with its own scaling rule:
//
//   - Positions are scaled to fit the whole source canvas into the paper
//     (minus a 10 mm margin on each side), multiplied by the user scale
//     factor, then offset by the 10 mm margin.
//   - Sizes only apply the user scale factor, so zooming never compounds
//     with the canvas-fit scale. Widths and heights are clamped to a share of
//     the paper content area with an 8 mm floor.
//   - Font sizes map px to pt (x0.75), apply the user scale factor and clamp
//     to [6, 18] pt.
//
// All results are rounded to two decimals.
package units

import "math"

// MMPerPixel is the size of one source pixel at 96 DPI.
const MMPerPixel = 0.264583

// PointsPerPixel converts source pixels to typographic points.
const PointsPerPixel = 0.75

const (
	// PageMargin is added to every converted position and subtracted twice
	// from the paper size when fitting the canvas.
	PageMargin = 10.0

	// MinSize is the smallest width or height produced by size conversion.
	MinSize = 8.0

	// MinFontSize and MaxFontSize bound converted font sizes in points.
	MinFontSize = 6.0
	MaxFontSize = 18.0

	widthShare    = 0.8
	heightShare   = 0.6
	widthReserve  = 40.0
	heightReserve = 60.0
)

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PxToMM converts pixels to millimeters without any scaling.
func PxToMM(px float64) float64 { return px * MMPerPixel }

// MMToPx converts millimeters back to source pixels.
func MMToPx(mm float64) float64 { return mm / MMPerPixel }

// Converter holds the paper, canvas and user scale of one conversion.
// The zero value is not usable; construct with [NewConverter].
type Converter struct {
	PaperWidth   float64 // mm
	PaperHeight  float64 // mm
	CanvasWidth  float64 // px
	CanvasHeight float64 // px
	ScaleFactor  float64
	fit          float64
}

// NewConverter returns a converter for the given paper size (mm), source
// canvas size (px) and user scale factor.
func NewConverter(paperW, paperH, canvasW, canvasH, scale float64) *Converter {
	c := &Converter{
		PaperWidth:   paperW,
		PaperHeight:  paperH,
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		ScaleFactor:  scale,
	}
	sx := (paperW - 2*PageMargin) / PxToMM(canvasW)
	sy := (paperH - 2*PageMargin) / PxToMM(canvasH)
	c.fit = math.Min(sx, sy)
	return c
}

// FitScale returns the canvas-fit scale before the user factor is applied.
func (c *Converter) FitScale() float64 { return c.fit }

// Scale returns the effective position scale (fit x user factor).
func (c *Converter) Scale() float64 { return c.fit * c.ScaleFactor }

// Position converts a source coordinate to a page coordinate in mm.
func (c *Converter) Position(px float64) float64 {
	return Round2(PxToMM(px)*c.Scale()) + PageMargin
}

// Width converts a source width to mm, clamped to 80% of the paper width
// less 40 mm and floored at MinSize.
func (c *Converter) Width(px float64) float64 {
	return c.size(px, widthShare*(c.PaperWidth-widthReserve))
}

// Height converts a source height to mm, clamped to 60% of the paper height
// less 60 mm and floored at MinSize.
func (c *Converter) Height(px float64) float64 {
	return c.size(px, heightShare*(c.PaperHeight-heightReserve))
}

func (c *Converter) size(px, limit float64) float64 {
	mm := PxToMM(px) * c.ScaleFactor
	if mm > limit {
		mm = limit
	}
	return math.Max(MinSize, Round2(mm))
}

// FontSize converts a source font size in px to points within
// [MinFontSize, MaxFontSize].
func (c *Converter) FontSize(px float64) float64 {
	pt := Round2(px * PointsPerPixel * c.ScaleFactor)
	return math.Max(MinFontSize, math.Min(MaxFontSize, pt))
}

// SourcePx estimates the source pixel length of a page quantity, inverting
// only the millimeter and user scale conversion. It is a diagnostic aid and
// does not undo the canvas-fit scale or the margin.
func (c *Converter) SourcePx(mm float64) float64 {
	return math.Round(MMToPx(mm) / c.ScaleFactor)
}
