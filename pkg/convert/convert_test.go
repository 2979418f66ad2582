package convert

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/estimate"
	"github.com/matzehuels/pagefit/pkg/materialize"
	"github.com/matzehuels/pagefit/pkg/units"
)

func root(children ...*design.Node) design.Node {
	return design.Node{Type: design.TypeFrame, Name: "Root", Width: 1024, Height: 724, Children: children}
}

func textNode(name, chars string, w, h float64) *design.Node {
	return &design.Node{Type: design.TypeText, Name: name, Characters: chars, Width: w, Height: h}
}

func imageNode(name string, w, h float64) *design.Node {
	return &design.Node{
		Type: design.TypeRectangle, Name: name, Width: w, Height: h,
		Fills: []design.Paint{{Type: design.PaintImage, ImageHash: "abc123"}},
	}
}

// sampleTree exercises every node kind in tree-walk mode.
func sampleTree() *design.Document {
	return &design.Document{Node: root(
		&design.Node{Type: design.TypeFrame, Name: "Header", Height: 60, Children: []*design.Node{
			textNode("Title", "契約書", 300, 40),
			textNode("Subtitle", "特定商取引法に基づく表示", 300, 20),
		}},
		&design.Node{Type: design.TypeFrame, Name: "Groups", Width: 300, Height: 400, Children: []*design.Node{
			textNode("クーリング・オフ", strings.Repeat("説明", 150), 280, 200),
			{Type: design.TypeEllipse, Name: "Dot", Width: 10, Height: 10},
		}},
		&design.Node{Type: design.TypeFrame, Name: "Content", LayoutMode: design.LayoutHorizontal, Height: 100, Children: []*design.Node{
			imageNode("photo", 200, 100),
			imageNode("Image", 200, 100),
			imageNode("icon", 12, 12),
			textNode("Body", "本文", 400, 100),
		}},
	)}
}

func TestConvertScenarioSingleText(t *testing.T) {
	doc := &design.Document{Node: root(textNode("Title", "Hello", 200, 20))}
	res, err := Convert(doc, Options{PaperType: "A4", ScaleFactor: 1})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	els := res.Elements()
	if len(els) != 1 {
		t.Fatalf("elements = %d, want 1", len(els))
	}
	o := els[0].Options
	if !els[0].IsText() || o.Title != "Hello" {
		t.Errorf("element = %+v", els[0])
	}
	if o.FontSize < units.MinFontSize || o.FontSize > units.MaxFontSize {
		t.Errorf("FontSize = %v out of range", o.FontSize)
	}
	if o.Width > 0.8*(297-40) {
		t.Errorf("Width = %v exceeds cap", o.Width)
	}
	if res.Mode != ModeTreeWalk {
		t.Errorf("Mode = %v", res.Mode)
	}
	if len(res.Records) != 1 || res.Records[0].Type != RecordText || res.Records[0].Element != 0 {
		t.Errorf("records = %+v", res.Records)
	}
}

func TestConvertScenarioSkippedImage(t *testing.T) {
	doc := &design.Document{Node: root(imageNode("Image", 15, 15))}
	res, err := Convert(doc, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n := len(res.Elements()); n != 0 {
		t.Errorf("elements = %d, want 0", n)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec.Type != RecordSkippedImage || rec.Reason != materialize.SkipReason {
		t.Errorf("record = %+v", rec)
	}
	if rec.ImageHash != "abc123" || rec.HasElement() {
		t.Errorf("record = %+v", rec)
	}
}

func TestConvertScenarioPathBased(t *testing.T) {
	doc := &design.Document{
		Node: root(textNode("説明担当者", "担当", 120, 20)),
		TextContent: []design.TextContentItem{
			{Path: "Doc/Root/説明担当者", Name: "x", Text: "Tomas"},
		},
	}
	res, err := Convert(doc, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Mode != ModePathIndexed {
		t.Errorf("Mode = %v", res.Mode)
	}
	if len(res.Records) != 1 || res.Records[0].Type != RecordPathBased {
		t.Fatalf("records = %+v", res.Records)
	}
	rec := res.Records[0]
	if *rec.Estimated != (estimate.Point{X: 180, Y: 20}) {
		t.Errorf("anchor = %+v, want clamped top-right header anchor", *rec.Estimated)
	}
	conv := units.NewConverter(297, 210, 1024, 724, 1)
	el := res.Elements()[0]
	if el.Options.Left != conv.Position(180) || el.Options.Top != conv.Position(20) {
		t.Errorf("position = %v,%v", el.Options.Left, el.Options.Top)
	}
	if el.Options.Title != "Tomas" {
		t.Errorf("Title = %q, want item text", el.Options.Title)
	}
}

func TestConvertScenarioPathNotFound(t *testing.T) {
	doc := &design.Document{
		Node: root(textNode("生徒名", "山田", 100, 20)),
		TextContent: []design.TextContentItem{
			{Path: "Doc/Root/Missing", Name: "Missing", Text: strings.Repeat("a", 60)},
		},
	}
	res, err := Convert(doc, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n := len(res.Elements()); n != 0 {
		t.Errorf("elements = %d, want 0", n)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec.Type != RecordPathNotFound || rec.Reason != ReasonPathNotFound {
		t.Errorf("record = %+v", rec)
	}
	if rec.Text != strings.Repeat("a", 50)+"..." {
		t.Errorf("Text = %q", rec.Text)
	}
}

func TestConvertScenarioCoincidingAnchors(t *testing.T) {
	doc := &design.Document{
		Node: root(
			textNode("説明担当者", "a", 120, 20),
			textNode("TOMAS", "b", 120, 20),
		),
		TextContent: []design.TextContentItem{
			{Path: "Doc/Root/説明担当者", Name: "説明担当者", Text: "a"},
			{Path: "Doc/Root/TOMAS", Name: "TOMAS", Text: "b"},
		},
	}
	res, err := Convert(doc, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	els := res.Elements()
	if len(els) != 2 {
		t.Fatalf("elements = %d, want 2", len(els))
	}
	if *res.Records[0].Estimated != *res.Records[1].Estimated {
		t.Fatalf("anchors differ: %+v %+v", *res.Records[0].Estimated, *res.Records[1].Estimated)
	}
	a, b := els[0].Rect(), els[1].Rect()
	if a.Left == b.Left && a.Top == b.Top {
		t.Errorf("second element not moved: %+v", b)
	}
	if a.Overlaps(b) {
		t.Errorf("elements overlap: %+v %+v", a, b)
	}
	if res.Records[1].Attempts == 0 {
		t.Error("second element should need placement attempts")
	}
}

func TestConvertIdempotent(t *testing.T) {
	docs := map[string]*design.Document{
		"tree": sampleTree(),
		"path": {
			Node: root(textNode("生徒名", "山田", 100, 20), textNode("学年", "3", 50, 20)),
			TextContent: []design.TextContentItem{
				{Path: "F/Root/生徒名", Name: "生徒名", Text: "山田"},
				{Path: "F/Root/学年", Name: "学年", Text: "3"},
				{Path: "F/Root/Groups/Foo", Name: "Foo", Text: "?"},
			},
		},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			first, err := Convert(doc, Options{PaperType: "A3", ScaleFactor: 1.5})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			second, err := Convert(doc, Options{PaperType: "A3", ScaleFactor: 1.5})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			a, _ := edoc.Marshal(first.Document)
			b, _ := edoc.Marshal(second.Document)
			if !bytes.Equal(a, b) {
				t.Error("conversion output differs between runs")
			}
		})
	}
}

func TestConvertInvariants(t *testing.T) {
	for _, paper := range edoc.PaperTypes() {
		for _, scale := range []float64{0.5, 1, 2, 4} {
			res, err := Convert(sampleTree(), Options{PaperType: paper, ScaleFactor: scale})
			if err != nil {
				t.Fatalf("Convert(%s, %v): %v", paper, scale, err)
			}
			p := res.Paper
			fallback := map[int]bool{}
			for _, r := range res.Records {
				if r.Fallback {
					fallback[r.Element] = true
				}
			}
			for i, el := range res.Elements() {
				o := el.Options
				for name, diff := range map[string]float64{
					"right":   o.Right - (o.Left + o.Width),
					"bottom":  o.Bottom - (o.Top + o.Height),
					"vCenter": o.VCenter - (o.Left + o.Width/2),
					"hCenter": o.HCenter - (o.Top + o.Height/2),
				} {
					if math.Abs(diff) > 0.01 {
						t.Errorf("%s x%v element %d: %s off by %v", paper, scale, i, name, diff)
					}
				}
				if fallback[i] {
					continue
				}
				if o.Left < 10 || o.Left+o.Width > p.Width-10+0.01 {
					t.Errorf("%s x%v element %d out of horizontal bounds: %v+%v", paper, scale, i, o.Left, o.Width)
				}
			}
		}
	}
}

func TestConvertNoOverlapForPlacedText(t *testing.T) {
	var items []design.TextContentItem
	var children []*design.Node
	for _, name := range []string{"ご契約者", "生徒カナ", "生徒名", "学年", "受講内容", "費用", "A", "B", "C", "D"} {
		children = append(children, textNode(name, name, 300, 30))
		items = append(items, design.TextContentItem{Path: "F/Root/" + name, Name: name, Text: name})
	}
	doc := &design.Document{Node: root(children...), TextContent: items}
	res, err := Convert(doc, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	els := res.Elements()
	for i := range els {
		if res.Records[i].Fallback {
			continue
		}
		for j := i + 1; j < len(els); j++ {
			if res.Records[j].Fallback {
				continue
			}
			if els[i].Rect().Overlaps(els[j].Rect()) {
				t.Errorf("elements %d and %d overlap", i, j)
			}
		}
	}
}

func TestConvertTreeRecords(t *testing.T) {
	res, err := Convert(sampleTree(), Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	var types []RecordType
	for _, r := range res.Records {
		types = append(types, r.Type)
	}
	want := []RecordType{
		RecordText, RecordText, // header
		RecordText, RecordType(design.TypeEllipse), // groups
		RecordType(design.TypeRectangle), RecordSkippedImage, RecordSkippedImage, RecordText, // content
	}
	if len(types) != len(want) {
		t.Fatalf("record types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, types[i], want[i])
		}
	}

	s := res.Stats()
	if s.TotalElements != 6 || s.TextElements != 5 || s.ImageElements != 1 || s.SkippedElements != 2 {
		t.Errorf("stats = %+v", s)
	}
	if s.PaperSize != "A4" || s.PaperWidth != 297 || s.PaperHeight != 210 {
		t.Errorf("paper stats = %+v", s)
	}
	long := res.Elements()[2].Options.Title
	if n := len([]rune(long)); n != materialize.MaxTitleRunes {
		t.Errorf("long title runes = %d, want %d", n, materialize.MaxTitleRunes)
	}
}

func TestConvertCustomAnchorer(t *testing.T) {
	doc := &design.Document{
		Node:        root(textNode("any", "x", 100, 20)),
		TextContent: []design.TextContentItem{{Path: "F/Root/any", Name: "any", Text: "x"}},
	}
	var seen estimate.Query
	anchorer := estimate.AnchorFunc(func(q estimate.Query) estimate.Point {
		seen = q
		return estimate.Point{X: 100, Y: 100}
	})
	res, err := Convert(doc, Options{Anchorer: anchorer})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if seen.Leaf != "any" || len(seen.Segments) != 2 || seen.Segments[0] != "Root" || seen.Node == nil {
		t.Errorf("query = %+v", seen)
	}
	if *res.Records[0].Estimated != (estimate.Point{X: 100, Y: 100}) {
		t.Errorf("anchor = %+v", *res.Records[0].Estimated)
	}
}

func TestConvertErrors(t *testing.T) {
	doc := &design.Document{Node: root()}
	tests := []struct {
		name string
		doc  *design.Document
		opts Options
		code apperr.Code
	}{
		{"nil document", nil, Options{}, apperr.ErrCodeInvalidInput},
		{"unknown paper", doc, Options{PaperType: "A5"}, apperr.ErrCodeInvalidPaper},
		{"negative scale", doc, Options{ScaleFactor: -1}, apperr.ErrCodeInvalidScale},
		{"nan scale", doc, Options{ScaleFactor: math.NaN()}, apperr.ErrCodeInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.doc, tt.opts)
			if !apperr.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestToDocument(t *testing.T) {
	doc := &design.Document{Node: root(textNode("Title", "Hello", 200, 20))}
	out, err := ToDocument(doc, "Letter", 1)
	if err != nil {
		t.Fatalf("ToDocument: %v", err)
	}
	if len(out.Panels) != 1 || out.Panels[0].PaperType != "Letter" || out.Panels[0].Width != 279 {
		t.Errorf("panel = %+v", out.Panels[0])
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.PaperType != edoc.DefaultPaperType || o.ScaleFactor != DefaultScaleFactor || o.Anchorer == nil || o.Logger == nil {
		t.Errorf("defaults = %+v", o)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short"); got != "short" {
		t.Errorf("Preview = %q", got)
	}
	if got := Preview(strings.Repeat("字", 51)); got != strings.Repeat("字", 50)+"..." {
		t.Errorf("Preview = %q", got)
	}
}
