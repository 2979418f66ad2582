package edoc

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 40, Height: 8}
	if r.Right() != 50 {
		t.Errorf("Right() = %v, want 50", r.Right())
	}
	if r.Bottom() != 28 {
		t.Errorf("Bottom() = %v, want 28", r.Bottom())
	}
	if r.CenterX() != 30 {
		t.Errorf("CenterX() = %v, want 30", r.CenterX())
	}
	if r.CenterY() != 24 {
		t.Errorf("CenterY() = %v, want 24", r.CenterY())
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{Left: 10, Top: 10, Width: 20, Height: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{Left: 15, Top: 12, Width: 2, Height: 2}, true},
		{"partial", Rect{Left: 25, Top: 15, Width: 20, Height: 10}, true},
		{"touching right edge", Rect{Left: 30, Top: 10, Width: 5, Height: 5}, false},
		{"touching bottom edge", Rect{Left: 10, Top: 20, Width: 5, Height: 5}, false},
		{"left of", Rect{Left: 0, Top: 10, Width: 5, Height: 5}, false},
		{"below", Rect{Left: 10, Top: 40, Width: 5, Height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps() not symmetric: %v", got)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	bounds := Rect{Left: 10, Top: 10, Width: 277, Height: 190}
	if !(Rect{Left: 10, Top: 10, Width: 277, Height: 190}).Within(bounds) {
		t.Error("rect equal to bounds should be within")
	}
	if (Rect{Left: 280, Top: 10, Width: 10, Height: 10}).Within(bounds) {
		t.Error("rect crossing right edge should not be within")
	}
	if (Rect{Left: 9.99, Top: 10, Width: 1, Height: 1}).Within(bounds) {
		t.Error("rect left of margin should not be within")
	}
}

func TestRectApplyDerivedFields(t *testing.T) {
	rects := []Rect{
		{Left: 10, Top: 10, Width: 52.9166, Height: 8},
		{Left: 123.456, Top: 77.777, Width: 13.333, Height: 22.5},
		{Left: 0.005, Top: 0.004, Width: 0.015, Height: 9.995},
	}
	for _, r := range rects {
		var o Options
		r.Apply(&o)
		checks := []struct {
			name      string
			got, want float64
		}{
			{"right", o.Right, o.Left + o.Width},
			{"bottom", o.Bottom, o.Top + o.Height},
			{"vCenter", o.VCenter, o.Left + o.Width/2},
			{"hCenter", o.HCenter, o.Top + o.Height/2},
		}
		for _, c := range checks {
			if math.Abs(c.got-c.want) > 0.01 {
				t.Errorf("%+v: %s = %v, want %v", r, c.name, c.got, c.want)
			}
		}
	}
}
