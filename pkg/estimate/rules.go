package estimate

import (
	"math"
	"strings"
)

// Rule anchors elements whose name matches. All lists substrings that must
// all occur; Any lists substrings of which at least one must occur. A rule
// with both lists empty never matches.
type Rule struct {
	Name string   `toml:"name,omitempty"`
	All  []string `toml:"all,omitempty"`
	Any  []string `toml:"any,omitempty"`
	X    float64  `toml:"x"`
	Y    float64  `toml:"y"`
}

// Matches reports whether name satisfies the rule predicate.
func (r Rule) Matches(name string) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, s := range r.All {
		if !strings.Contains(name, s) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, s := range r.Any {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// Slots distributes elements over Buckets positions Step apart starting at
// Base, picking the bucket from the element name hash.
type Slots struct {
	Base    float64 `toml:"base"`
	Step    float64 `toml:"step"`
	Buckets int     `toml:"buckets"`
}

// At returns the slot position for name.
func (s Slots) At(name string) float64 {
	return s.Base + float64(bucket(name, s.Buckets))*s.Step
}

// GroupRules anchors members of a side panel identified by a path segment.
// Only Y of the member rules is used; every member shares X.
type GroupRules struct {
	Segment  string  `toml:"segment"`
	X        float64 `toml:"x"`
	Rules    []Rule  `toml:"rule"`
	Overflow Slots   `toml:"overflow"`
}

// LongText anchors elements that carry text or are taller than MinHeight.
type LongText struct {
	X         float64 `toml:"x"`
	MinHeight float64 `toml:"min_height"`
	Slots     Slots   `toml:"slots"`
}

// Fallback anchors everything else on a hash-picked cell of a left grid. The
// same bucket drives both axes; X cycles every XCycle buckets.
type Fallback struct {
	Buckets int     `toml:"buckets"`
	X       float64 `toml:"x"`
	XStep   float64 `toml:"x_step"`
	XCycle  int     `toml:"x_cycle"`
	Y       float64 `toml:"y"`
	YStep   float64 `toml:"y_step"`
}

// Bounds clamps anchors into the page content area.
type Bounds struct {
	MinX float64 `toml:"min_x"`
	MaxX float64 `toml:"max_x"`
	MinY float64 `toml:"min_y"`
	MaxY float64 `toml:"max_y"`
}

// Clamp returns p limited to b.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: math.Max(b.MinX, math.Min(p.X, b.MaxX)),
		Y: math.Max(b.MinY, math.Min(p.Y, b.MaxY)),
	}
}

// Rules is an ordered anchor table. Evaluation order is: Rules top to
// bottom, then Groups, then LongText, then Fallback; the first match wins
// and the result is clamped to Bounds.
type Rules struct {
	Rules    []Rule     `toml:"rule"`
	Groups   GroupRules `toml:"groups"`
	LongText LongText   `toml:"long_text"`
	Fallback Fallback   `toml:"fallback"`
	Bounds   Bounds     `toml:"bounds"`
}

// Anchor implements Anchorer.
func (r *Rules) Anchor(q Query) Point {
	return r.Bounds.Clamp(r.Raw(q))
}

// Raw returns the anchor for q before clamping.
func (r *Rules) Raw(q Query) Point {
	name := q.Leaf
	for _, rule := range r.Rules {
		if rule.Matches(name) {
			return Point{X: rule.X, Y: rule.Y}
		}
	}

	if r.Groups.Segment != "" && q.InSegment(r.Groups.Segment) {
		for _, rule := range r.Groups.Rules {
			if rule.Matches(name) {
				return Point{X: r.Groups.X, Y: rule.Y}
			}
		}
		return Point{X: r.Groups.X, Y: r.Groups.Overflow.At(name)}
	}

	if n := q.Node; n != nil && (n.Characters != "" || n.Height > r.LongText.MinHeight) {
		return Point{X: r.LongText.X, Y: r.LongText.Slots.At(name)}
	}

	f := r.Fallback
	b := bucket(name, f.Buckets)
	var xb int64
	if f.XCycle > 0 {
		xb = b % int64(f.XCycle)
	}
	return Point{
		X: f.X + float64(xb)*f.XStep,
		Y: f.Y + float64(b)*f.YStep,
	}
}

var _ Anchorer = (*Rules)(nil)
