package units

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 0.011 }

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{-0.004, 0},
		{52.9166, 52.92},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !approx(got, tt.want) {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConverterFitScale(t *testing.T) {
	c := NewConverter(297, 210, 1024, 724, 1.0)

	sx := 277 / (1024 * MMPerPixel)
	sy := 190 / (724 * MMPerPixel)
	want := math.Min(sx, sy)
	if math.Abs(c.FitScale()-want) > 1e-12 {
		t.Errorf("FitScale() = %v, want %v", c.FitScale(), want)
	}

	c2 := NewConverter(297, 210, 1024, 724, 2.0)
	if math.Abs(c2.Scale()-2*want) > 1e-12 {
		t.Errorf("Scale() with factor 2 = %v, want %v", c2.Scale(), 2*want)
	}
}

func TestConverterPosition(t *testing.T) {
	c := NewConverter(297, 210, 1024, 724, 1.0)

	if got := c.Position(0); got != PageMargin {
		t.Errorf("Position(0) = %v, want %v", got, PageMargin)
	}

	px := 500.0
	want := Round2(px*MMPerPixel*c.Scale()) + PageMargin
	if got := c.Position(px); got != want {
		t.Errorf("Position(%v) = %v, want %v", px, got, want)
	}
}

func TestConverterSize(t *testing.T) {
	c := NewConverter(297, 210, 1024, 724, 1.0)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"width plain", c.Width(200), Round2(200 * MMPerPixel)},
		{"width clamped", c.Width(5000), 0.8 * (297 - 40)},
		{"width floor", c.Width(5), MinSize},
		{"height plain", c.Height(200), Round2(200 * MMPerPixel)},
		{"height clamped", c.Height(5000), 0.6 * (210 - 60)},
		{"height floor", c.Height(20), MinSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConverterSizeIgnoresFitScale(t *testing.T) {
	small := NewConverter(297, 210, 4000, 3000, 1.0)
	large := NewConverter(297, 210, 400, 300, 1.0)
	if small.Width(200) != large.Width(200) {
		t.Errorf("size depends on canvas: %v vs %v", small.Width(200), large.Width(200))
	}

	zoom := NewConverter(297, 210, 1024, 724, 2.0)
	if got, want := zoom.Width(200), Round2(400*MMPerPixel); !approx(got, want) {
		t.Errorf("Width with factor 2 = %v, want %v", got, want)
	}
}

func TestConverterFontSize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		px    float64
		want  float64
	}{
		{"plain", 1, 16, 12},
		{"floor", 1, 4, MinFontSize},
		{"ceiling", 1, 40, MaxFontSize},
		{"scaled", 1.5, 12, 13.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(297, 210, 1024, 724, tt.scale)
			if got := c.FontSize(tt.px); !approx(got, tt.want) {
				t.Errorf("FontSize(%v) = %v, want %v", tt.px, got, tt.want)
			}
		})
	}
}
