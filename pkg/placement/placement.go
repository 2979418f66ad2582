// Package placement resolves overlaps between elements placed on a page.
//
// [Place] is a pure function: it reads the rectangles already on the page and
// returns an adjusted position for a new one without touching any state. The
// [Placer] wrapper owns the append-only list of placed rectangles for a single
// conversion.
package placement

import (
	"math"

	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/units"
)

// Search parameters, in millimeters where applicable.
const (
	// MaxAttempts bounds the search. Place always terminates.
	MaxAttempts = 50
	// ProbeAttempts is the number of attempts spent stepping right from the
	// candidate before switching to the grid scan.
	ProbeAttempts = 25
	// Gap separates a probe from the rectangle it stepped over.
	Gap = 5.0
	// GridStep is the cell size of the fallback grid scan.
	GridStep = 20.0
	// GridColumns is the number of grid cells per row.
	GridColumns = 10
)

// Result is the outcome of a placement.
type Result struct {
	Rect edoc.Rect
	// Attempts is the number of rejected positions before Rect was accepted.
	Attempts int
	// Fallback is set when every attempt failed and Rect is the clamped
	// candidate. It may overlap earlier rectangles.
	Fallback bool
}

// Bounds returns the region elements must stay inside: the paper minus the
// page margin on every side.
func Bounds(paper edoc.Paper) edoc.Rect {
	m := units.PageMargin
	return edoc.Rect{
		Left:   m,
		Top:    m,
		Width:  paper.Width - 2*m,
		Height: paper.Height - 2*m,
	}
}

// Place finds a position for candidate that overlaps nothing in placed and
// lies inside Bounds(paper). The first ProbeAttempts attempts step right by
// width+Gap, wrapping to the left margin one row lower at the right edge;
// the rest scan a fixed GridStep grid from the top-left. When no attempt
// succeeds the candidate is clamped into bounds and returned as a fallback.
func Place(candidate edoc.Rect, paper edoc.Paper, placed []edoc.Rect) Result {
	bounds := Bounds(paper)
	r := candidate
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if r.Within(bounds) && !Overlaps(r, placed) {
			return Result{Rect: r, Attempts: attempt}
		}
		if attempt < ProbeAttempts {
			r.Left += r.Width + Gap
			if r.Right() > bounds.Right() {
				r.Left = bounds.Left
				r.Top += r.Height + Gap
			}
			continue
		}
		cell := attempt - ProbeAttempts
		r.Left = bounds.Left + float64(cell%GridColumns)*GridStep
		r.Top = bounds.Top + float64(cell/GridColumns)*GridStep
	}
	return Result{Rect: Clamp(candidate, paper), Attempts: MaxAttempts, Fallback: true}
}

// Overlaps reports whether r overlaps any rectangle in placed.
func Overlaps(r edoc.Rect, placed []edoc.Rect) bool {
	for _, p := range placed {
		if r.Overlaps(p) {
			return true
		}
	}
	return false
}

// Clamp moves r so that its upper-left corner keeps it inside Bounds(paper)
// where possible. Rectangles larger than the bounds are pinned to the
// margin.
func Clamp(r edoc.Rect, paper edoc.Paper) edoc.Rect {
	m := units.PageMargin
	r.Left = math.Max(m, math.Min(r.Left, paper.Width-r.Width-m))
	r.Top = math.Max(m, math.Min(r.Top, paper.Height-r.Height-m))
	return r
}

// Placer tracks the rectangles placed during one conversion. It is not safe
// for concurrent use.
type Placer struct {
	paper  edoc.Paper
	placed []edoc.Rect
}

// NewPlacer returns an empty Placer for paper.
func NewPlacer(paper edoc.Paper) *Placer {
	return &Placer{paper: paper}
}

// Place positions candidate against everything placed so far and records
// the result.
func (p *Placer) Place(candidate edoc.Rect) Result {
	res := Place(candidate, p.paper, p.placed)
	p.placed = append(p.placed, res.Rect)
	return res
}

// Placed returns the rectangles placed so far, in placement order.
func (p *Placer) Placed() []edoc.Rect {
	return p.placed
}

// Len returns the number of placed rectangles.
func (p *Placer) Len() int { return len(p.placed) }
