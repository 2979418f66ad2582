package edoc

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
)

func TestLookupPaper(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"A4", 297, 210},
		{"A3", 420, 297},
		{"B4", 364, 257},
		{"B5", 257, 182},
		{"Letter", 279, 216},
		{"Legal", 356, 216},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupPaper(tt.name)
			if err != nil {
				t.Fatalf("LookupPaper(%q) error: %v", tt.name, err)
			}
			if p.Width != tt.width || p.Height != tt.height {
				t.Errorf("size = %vx%v, want %vx%v", p.Width, p.Height, tt.width, tt.height)
			}
		})
	}

	_, err := LookupPaper("a4")
	if !apperr.Is(err, apperr.ErrCodeInvalidPaper) {
		t.Errorf("LookupPaper(a4) error = %v, want INVALID_PAPER", err)
	}
}

func TestPaperTypesSorted(t *testing.T) {
	got := strings.Join(PaperTypes(), ",")
	if got != "A3,A4,B4,B5,Legal,Letter" {
		t.Errorf("PaperTypes() = %s", got)
	}
}

func TestNewDocument(t *testing.T) {
	p, _ := LookupPaper("B5")
	d := NewDocument(p)

	if len(d.Panels) != 1 {
		t.Fatalf("panels = %d, want 1", len(d.Panels))
	}
	panel := d.Panel()
	if panel.PaperHeader != 20 || !panel.PaperNumberDisabled || panel.FontFamily != "sans-serif" {
		t.Errorf("unexpected panel defaults: %+v", panel)
	}
	if d.Paper() != p {
		t.Errorf("Paper() = %+v, want %+v", d.Paper(), p)
	}
	if d.Elements() == nil {
		t.Error("Elements() should be an empty, non-nil slice")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	p, _ := LookupPaper("A4")
	d := NewDocument(p)
	el := PrintElement{PrintElementType: PrintElementType{Title: TitleText, Type: TypeText}}
	el.Options.Title = "説明担当者 <Tomas>"
	Rect{Left: 10, Top: 12, Width: 30, Height: 8}.Apply(&el.Options)
	d.Panels[0].PrintElements = append(d.Panels[0].PrintElements, el)

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"title": "説明担当者 <Tomas>"`) {
		t.Errorf("title not written verbatim:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"printElements"`) {
		t.Error("missing printElements key")
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	got := back.Elements()[0].Options
	if got.Right != 40 || got.Bottom != 20 {
		t.Errorf("derived fields lost: %+v", got)
	}
}

func TestOptionsJSONKeepsZeroTextFields(t *testing.T) {
	var o Options
	o.Title = "Hello"
	o.FontSize = 9
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{
		"letterSpacing", "qrCodeLevel",
		"contentPaddingLeft", "contentPaddingTop", "contentPaddingRight", "contentPaddingBottom",
	} {
		v, ok := fields[key]
		if !ok {
			t.Errorf("missing %q in %s", key, data)
			continue
		}
		if v != float64(0) {
			t.Errorf("%s = %v, want 0", key, v)
		}
	}
}
