package edoc

import "github.com/matzehuels/pagefit/pkg/units"

// Rect is an axis-aligned rectangle in page millimeters. Left/Top is the
// upper-left corner; the page y axis grows downwards.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.Left || o.Right() <= r.Left ||
		r.Bottom() <= o.Top || o.Bottom() <= r.Top)
}

// Within reports whether r lies fully inside bounds.
func (r Rect) Within(bounds Rect) bool {
	return r.Left >= bounds.Left && r.Top >= bounds.Top &&
		r.Right() <= bounds.Right() && r.Bottom() <= bounds.Bottom()
}

// Apply writes r and its derived edges and centers into o. Derived fields
// are always recomputed here and never set independently.
func (r Rect) Apply(o *Options) {
	r = r.Rounded()
	o.Left, o.Top = r.Left, r.Top
	o.Width, o.Height = r.Width, r.Height
	o.Right = units.Round2(r.Right())
	o.Bottom = units.Round2(r.Bottom())
	o.VCenter = units.Round2(r.CenterX())
	o.HCenter = units.Round2(r.CenterY())
}

// Rounded returns r with every field rounded to two decimals.
func (r Rect) Rounded() Rect {
	return Rect{
		Left:   units.Round2(r.Left),
		Top:    units.Round2(r.Top),
		Width:  units.Round2(r.Width),
		Height: units.Round2(r.Height),
	}
}

// RectOf returns the rectangle described by the base fields of o.
func RectOf(o Options) Rect {
	return Rect{Left: o.Left, Top: o.Top, Width: o.Width, Height: o.Height}
}
