package materialize

import (
	"strings"
	"testing"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/units"
)

var a4 = edoc.Paper{Type: "A4", Width: 297, Height: 210}

func newA4() *Materializer {
	return New(units.NewConverter(a4.Width, a4.Height, 1024, 724, 1), a4)
}

func imageFill(hash string) []design.Paint {
	return []design.Paint{{Type: design.PaintImage, ImageHash: hash}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node *design.Node
		want Kind
	}{
		{"nil", nil, KindNone},
		{"frame", &design.Node{Type: design.TypeFrame}, KindNone},
		{"text", &design.Node{Type: design.TypeText, Characters: "Hi"}, KindText},
		{"empty text", &design.Node{Type: design.TypeText}, KindNone},
		{"named image", &design.Node{Type: design.TypeRectangle, Name: "Image", Width: 300, Height: 300, Fills: imageFill("h")}, KindSkipped},
		{"tiny image", &design.Node{Type: design.TypeRectangle, Name: "icon", Width: 15, Height: 15, Fills: imageFill("h")}, KindSkipped},
		{"tiny on one axis", &design.Node{Type: design.TypeRectangle, Name: "bar", Width: 15, Height: 200, Fills: imageFill("h")}, KindImage},
		{"image without hash", &design.Node{Type: design.TypeRectangle, Name: "Image", Width: 10, Height: 10, Fills: imageFill("")}, KindImage},
		{"photo", &design.Node{Type: design.TypeRectangle, Name: "photo", Width: 100, Height: 80, Fills: imageFill("h")}, KindImage},
		{"rectangle", &design.Node{Type: design.TypeRectangle, Name: "box"}, KindShape},
		{"ellipse", &design.Node{Type: design.TypeEllipse}, KindShape},
		{"image node", &design.Node{Type: design.TypeImage, Fills: imageFill("h")}, KindShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.node); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextSize(t *testing.T) {
	m := newA4()
	tests := []struct {
		name  string
		node  *design.Node
		wantW float64
		wantH float64
	}{
		{"title", &design.Node{Width: 200, Height: 20}, 52.92, 8},
		{"defaults", &design.Node{}, 21.17, 8},
		{"huge", &design.Node{Width: 5000, Height: 5000}, 205.6, 22.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := m.TextSize(tt.node)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("TextSize = %v x %v, want %v x %v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestText(t *testing.T) {
	m := newA4()
	n := &design.Node{
		Type:                design.TypeText,
		Name:                "Title",
		Characters:          "Hello",
		FontSize:            16,
		FontWeight:          700,
		TextAlignHorizontal: "CENTER",
		TextAlignVertical:   "TOP",
		LetterSpacing:       &design.LetterSpacing{Value: 5, Unit: "PERCENT"},
		Fills:               []design.Paint{{Type: "SOLID", Color: &design.Color{R: 1}}},
		Strokes:             []design.Paint{{Type: "SOLID"}},
	}
	el := m.Text(n, "", edoc.Rect{Left: 40, Top: 20, Width: 52.92, Height: 8})
	o := el.Options

	if o.Title != "Hello" {
		t.Errorf("Title = %q", o.Title)
	}
	if o.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", o.FontSize)
	}
	if o.FontWeight != "bold" || o.TextAlign != "center" || o.TextContentVerticalAlign != "top" {
		t.Errorf("style = %q %q %q", o.FontWeight, o.TextAlign, o.TextContentVerticalAlign)
	}
	if o.LetterSpacing != 5 {
		t.Errorf("LetterSpacing = %v", o.LetterSpacing)
	}
	if o.Color != "#ff0000" {
		t.Errorf("Color = %q", o.Color)
	}
	if o.BorderTop != edoc.BorderSolid || o.BorderLeft != edoc.BorderSolid {
		t.Errorf("borders not set: %+v", o)
	}
	if o.Right != 92.92 || o.Bottom != 28 || o.VCenter != 66.46 || o.HCenter != 24 {
		t.Errorf("derived = %v %v %v %v", o.Right, o.Bottom, o.VCenter, o.HCenter)
	}
	if !el.IsText() || el.PrintElementType.Title != edoc.TitleText {
		t.Errorf("type = %+v", el.PrintElementType)
	}
	if o.BorderWidth != edoc.DefaultBorderWidth {
		t.Errorf("BorderWidth = %q", o.BorderWidth)
	}
}

func TestTextTitleFallbacks(t *testing.T) {
	m := newA4()
	r := edoc.Rect{Left: 10, Top: 10, Width: 10, Height: 10}
	tests := []struct {
		name  string
		node  *design.Node
		title string
		want  string
	}{
		{"explicit", &design.Node{Characters: "c", Name: "n"}, "t", "t"},
		{"characters", &design.Node{Characters: "c", Name: "n"}, "", "c"},
		{"name", &design.Node{Name: "n"}, "", "n"},
		{"default", &design.Node{}, "", edoc.TitleText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := m.Text(tt.node, tt.title, r)
			if el.Options.Title != tt.want {
				t.Errorf("Title = %q, want %q", el.Options.Title, tt.want)
			}
			if el.Options.TextAlign != "" {
				t.Errorf("TextAlign = %q, want unset", el.Options.TextAlign)
			}
			if el.Options.TextContentVerticalAlign != "middle" {
				t.Errorf("vertical = %q, want middle", el.Options.TextContentVerticalAlign)
			}
		})
	}
}

func TestImage(t *testing.T) {
	m := newA4()
	n := &design.Node{Type: design.TypeRectangle, Name: "photo", Width: 100, Height: 80, Fills: imageFill("h")}
	first := m.Image(n, m.ShapeRect(n, 0, 0))
	second := m.Image(n, m.ShapeRect(n, 0, 0))

	if !first.IsImage() || first.PrintElementType.Title != edoc.TitleImage {
		t.Errorf("type = %+v", first.PrintElementType)
	}
	if first.Options.Field != "image_1" || second.Options.Field != "image_2" {
		t.Errorf("fields = %q %q", first.Options.Field, second.Options.Field)
	}
	if first.Options.Fit != ImageFit {
		t.Errorf("Fit = %q", first.Options.Fit)
	}
	if first.Options.Left != 10 || first.Options.Top != 10 {
		t.Errorf("position = %v,%v", first.Options.Left, first.Options.Top)
	}
	if first.Options.Width != 26.46 || first.Options.Height != 21.17 {
		t.Errorf("size = %v x %v", first.Options.Width, first.Options.Height)
	}
}

func TestShape(t *testing.T) {
	m := newA4()
	n := &design.Node{
		Type:    design.TypeEllipse,
		Name:    "Dot",
		Width:   50,
		Height:  50,
		Fills:   []design.Paint{{Type: "SOLID", Color: &design.Color{R: 1}}},
		Strokes: []design.Paint{{Type: "SOLID", Color: &design.Color{B: 1}}},
	}
	o := m.Shape(n, m.ShapeRect(n, 0, 0)).Options
	if o.Title != "[ELLIPSE] Dot" {
		t.Errorf("Title = %q", o.Title)
	}
	if o.FontSize != ShapeFontSize || o.ContentPaddingLeft != ShapePadding || o.ContentPaddingBottom != ShapePadding {
		t.Errorf("style = %+v", o)
	}
	if o.TextAlign != "center" || o.TextContentVerticalAlign != "middle" {
		t.Errorf("align = %q %q", o.TextAlign, o.TextContentVerticalAlign)
	}
	if o.BackgroundColor != "#ff0000" || o.BorderColor != "#0000ff" || o.BorderRight != edoc.BorderSolid {
		t.Errorf("colors = %q %q %q", o.BackgroundColor, o.BorderColor, o.BorderRight)
	}
	if o.Width != 13.23 || o.Right != 23.23 {
		t.Errorf("geometry = %v %v", o.Width, o.Right)
	}

	vec := &design.Node{Type: design.TypeVector}
	unnamed := m.Shape(vec, m.ShapeRect(vec, 0, 0))
	if unnamed.Options.Title != "[VECTOR] "+ShapeFallbackName {
		t.Errorf("unnamed Title = %q", unnamed.Options.Title)
	}
}

func TestSanitize(t *testing.T) {
	long := strings.Repeat("あ", 250)
	tests := []struct {
		in, want string
	}{
		{"a\r\nb\rc", "a\nb\nc"},
		{"plain", "plain"},
		{long, strings.Repeat("あ", 200)},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("日本語テキスト", 3); got != "日本語" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Errorf("Truncate = %q", got)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   *design.Color
		want string
	}{
		{nil, "#000000"},
		{&design.Color{R: 1, G: 1, B: 1}, "#ffffff"},
		{&design.Color{R: 0.5, G: 0.5, B: 0.5}, "#808080"},
		{&design.Color{R: 0.2, G: 0.4, B: 0.6}, "#336699"},
		{&design.Color{R: 2, G: -1}, "#ff0000"},
	}
	for _, tt := range tests {
		if got := HexColor(tt.in); got != tt.want {
			t.Errorf("HexColor(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlignments(t *testing.T) {
	for in, want := range map[string]string{"LEFT": "left", "CENTER": "center", "RIGHT": "right", "JUSTIFIED": "left", "": "left"} {
		if got := TextAlign(in); got != want {
			t.Errorf("TextAlign(%q) = %q, want %q", in, got, want)
		}
	}
	for in, want := range map[string]string{"TOP": "top", "CENTER": "middle", "BOTTOM": "bottom", "": "middle"} {
		if got := VerticalAlign(in); got != want {
			t.Errorf("VerticalAlign(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLetterSpacing(t *testing.T) {
	tests := []struct {
		in   *design.LetterSpacing
		want float64
	}{
		{nil, 0},
		{&design.LetterSpacing{Value: 3, Unit: "PERCENT"}, 3},
		{&design.LetterSpacing{Value: 3, Unit: "PIXELS"}, 0},
	}
	for _, tt := range tests {
		if got := LetterSpacing(tt.in); got != tt.want {
			t.Errorf("LetterSpacing(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
