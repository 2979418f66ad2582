package estimate

import "github.com/matzehuels/pagefit/pkg/design"

// Point is a position. Anchors are in page millimeters; tree-flow positions
// are in source pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Query describes the element an anchor is requested for.
type Query struct {
	// Segments is the element path without the leading file segment.
	Segments []string
	// Leaf is the last path segment, the element name.
	Leaf string
	// Node is the resolved design node. It may be nil.
	Node *design.Node
}

// InSegment reports whether seg is one of the query path segments.
func (q Query) InSegment(seg string) bool {
	for _, s := range q.Segments {
		if s == seg {
			return true
		}
	}
	return false
}

// Anchorer maps an element to a default page anchor before collision
// adjustment. Implementations encode one document layout and are expected to
// be replaced per deployment.
type Anchorer interface {
	Anchor(q Query) Point
}

// AnchorFunc adapts a function to the Anchorer interface.
type AnchorFunc func(q Query) Point

// Anchor calls f(q).
func (f AnchorFunc) Anchor(q Query) Point { return f(q) }
