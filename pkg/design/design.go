package design

import "strings"

// NodeType identifies the kind of a design node.
type NodeType string

// Node types understood by the converter. Unknown types are carried through
// decoding untouched and ignored during conversion.
const (
	TypeFrame     NodeType = "FRAME"
	TypeText      NodeType = "TEXT"
	TypeRectangle NodeType = "RECTANGLE"
	TypeEllipse   NodeType = "ELLIPSE"
	TypePolygon   NodeType = "POLYGON"
	TypeVector    NodeType = "VECTOR"
	TypeImage     NodeType = "IMAGE"
)

// Layout modes governing how a frame flows its children.
const (
	LayoutHorizontal = "HORIZONTAL"
	LayoutVertical   = "VERTICAL"
)

// PaintImage is the paint type of an image fill.
const PaintImage = "IMAGE"

// Default canvas size used when the document omits width or height.
const (
	DefaultCanvasWidth  = 1024.0
	DefaultCanvasHeight = 724.0
)

// Color is an RGB(A) color with channels in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a,omitempty"`
}

// Paint is a fill or stroke descriptor.
type Paint struct {
	Type      string `json:"type,omitempty"`
	Color     *Color `json:"color,omitempty"`
	ImageHash string `json:"imageHash,omitempty"`
}

// LetterSpacing is a spacing value with its unit ("PERCENT" or "PIXELS").
type LetterSpacing struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Node is a single node of the design tree. Geometry is in source pixels.
// The converter only reads nodes; callers own them.
type Node struct {
	ID   string   `json:"id,omitempty"`
	Type NodeType `json:"type"`
	Name string   `json:"name,omitempty"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`

	Characters          string         `json:"characters,omitempty"`
	FontSize            float64        `json:"fontSize,omitempty"`
	FontWeight          float64        `json:"fontWeight,omitempty"`
	LetterSpacing       *LetterSpacing `json:"letterSpacing,omitempty"`
	TextAlignHorizontal string         `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string         `json:"textAlignVertical,omitempty"`

	Fills           []Paint `json:"fills,omitempty"`
	Strokes         []Paint `json:"strokes,omitempty"`
	BackgroundColor *Color  `json:"backgroundColor,omitempty"`

	LayoutMode string  `json:"layoutMode,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// TextContentItem is an entry of the auxiliary flat text list. Path names the
// ancestor chain of the node, starting with the source file name.
type TextContentItem struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Document is the decoded design document: the root node plus the optional
// auxiliary text list.
type Document struct {
	Node
	TextContent []TextContentItem `json:"textContent,omitempty"`
}

// CanvasSize returns the document canvas size, falling back to
// DefaultCanvasWidth x DefaultCanvasHeight for missing dimensions.
func (d *Document) CanvasSize() (w, h float64) {
	w, h = d.Width, d.Height
	if w <= 0 {
		w = DefaultCanvasWidth
	}
	if h <= 0 {
		h = DefaultCanvasHeight
	}
	return w, h
}

// HasTextContent reports whether path-indexed conversion applies.
func (d *Document) HasTextContent() bool { return len(d.TextContent) > 0 }

// DisplayName returns the node name or fallback when the name is empty.
func (n *Node) DisplayName(fallback string) string {
	if n.Name == "" {
		return fallback
	}
	return n.Name
}

// IsText reports whether n is a TEXT node carrying characters.
func (n *Node) IsText() bool {
	return n.Type == TypeText && n.Characters != ""
}

// IsShape reports whether n is a shape or image node.
func (n *Node) IsShape() bool {
	switch n.Type {
	case TypeRectangle, TypeEllipse, TypePolygon, TypeVector, TypeImage:
		return true
	}
	return false
}

// HasImageFill reports whether any fill of n is an image paint.
func (n *Node) HasImageFill() bool {
	for _, f := range n.Fills {
		if f.Type == PaintImage {
			return true
		}
	}
	return false
}

// ImageHash returns the hash of the first image fill that carries one.
func (n *Node) ImageHash() string {
	for _, f := range n.Fills {
		if f.Type == PaintImage && f.ImageHash != "" {
			return f.ImageHash
		}
	}
	return ""
}

// FirstFillColor returns the color of the first fill, if any.
func (n *Node) FirstFillColor() *Color {
	if len(n.Fills) == 0 {
		return nil
	}
	return n.Fills[0].Color
}

// FirstStrokeColor returns the color of the first stroke, if any.
func (n *Node) FirstStrokeColor() *Color {
	if len(n.Strokes) == 0 {
		return nil
	}
	return n.Strokes[0].Color
}

// IsHorizontal reports whether children flow along the x axis.
func (n *Node) IsHorizontal() bool {
	return n.LayoutMode == LayoutHorizontal
}

// LowerName returns the lower-cased node name.
func (n *Node) LowerName() string { return strings.ToLower(n.Name) }

// Walk visits n and its descendants depth-first in pre-order. Returning false
// from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node, int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool { count++; return true })
	return count
}
