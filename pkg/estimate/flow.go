package estimate

import (
	"strings"

	"github.com/matzehuels/pagefit/pkg/design"
)

// Flow gaps between siblings, in source pixels.
const (
	HorizontalGap = 10
	VerticalGap   = 5
	ContentInset  = 20
	// SidePanelShare is the largest width share of the canvas a "groups"
	// frame may have and still be pushed to the right edge.
	SidePanelShare = 0.7
)

// Flow estimates positions for nodes that carry no coordinates by flowing
// children inside their parent frame.
type Flow struct {
	// CanvasWidth is the root canvas width in pixels.
	CanvasWidth float64
}

// NewFlow returns a Flow for a canvas of the given width.
func NewFlow(canvasWidth float64) Flow {
	if canvasWidth <= 0 {
		canvasWidth = design.DefaultCanvasWidth
	}
	return Flow{CanvasWidth: canvasWidth}
}

// Origin returns the origin n uses for itself and its children, given the
// position inherited from its parent. Only frames shift the origin:
// header/top frames stay put and narrow "groups" frames are pushed against
// the right canvas edge. Any other text/content frame is inset, wide
// "groups" frames included.
func (f Flow) Origin(n *design.Node, at Point) Point {
	if n.Type != design.TypeFrame {
		return at
	}
	name := n.LowerName()
	switch {
	case strings.Contains(name, "header"), strings.Contains(name, "top"):
		return at
	case strings.Contains(name, "groups") && n.Width < f.CanvasWidth*SidePanelShare:
		at.X += f.CanvasWidth - n.Width
		return at
	case strings.Contains(name, "text"), strings.Contains(name, "content"):
		return Point{X: at.X + ContentInset, Y: at.Y + ContentInset}
	}
	return at
}

// Walk visits root and every descendant in pre-order with its estimated
// pixel position. Siblings advance along x by width+HorizontalGap inside
// horizontal-layout parents and along y by height+VerticalGap otherwise.
func (f Flow) Walk(root *design.Node, visit func(n *design.Node, at Point)) {
	if root == nil {
		return
	}
	f.walk(root, Point{}, visit)
}

func (f Flow) walk(n *design.Node, at Point, visit func(*design.Node, Point)) {
	origin := f.Origin(n, at)
	visit(n, origin)

	next := origin
	horizontal := n.IsHorizontal()
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		f.walk(child, next, visit)
		if horizontal {
			next.X += child.Width + HorizontalGap
		} else {
			next.Y += child.Height + VerticalGap
		}
	}
}
