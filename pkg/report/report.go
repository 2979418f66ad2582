// Package report builds mapping reports for finished conversions.
//
// A [Report] lists every print element with its page geometry and an
// estimate of where it sat in the source design, followed by the
// path-based, unresolved and skipped entries of the classification log. It
// is the serializable form archived by the API and rendered by the CLI.
package report

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/units"
)

// SummaryElements is the number of elements listed by Summarize.
const SummaryElements = 5

// Box is an axis-aligned box. Page boxes are in millimeters, source boxes
// in pixels.
type Box struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Element maps one print element back to the source design.
type Element struct {
	Index           int     `json:"index" bson:"index"`
	Title           string  `json:"title" bson:"title"`
	Type            string  `json:"type" bson:"type"`
	Page            Box     `json:"page" bson:"page"`
	Source          Box     `json:"source" bson:"source"`
	FontSize        float64 `json:"fontSize,omitempty" bson:"font_size,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" bson:"background_color,omitempty"`
}

// Report is the mapping report of one conversion.
type Report struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	// Source names the converted input, usually its file name.
	Source string `json:"source,omitempty" bson:"source,omitempty"`

	Mode        convert.Mode  `json:"mode" bson:"mode"`
	Stats       convert.Stats `json:"stats" bson:"stats"`
	Canvas      convert.Size  `json:"canvas" bson:"canvas"`
	ScaleFactor float64       `json:"scaleFactor" bson:"scale_factor"`

	Elements  []Element        `json:"elements" bson:"elements"`
	PathBased []convert.Record `json:"pathBased,omitempty" bson:"path_based,omitempty"`
	NotFound  []convert.Record `json:"notFound,omitempty" bson:"not_found,omitempty"`
	Skipped   []convert.Record `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// New builds a report for res with a fresh ID.
func New(res *convert.Result, source string) *Report {
	r := Build(res)
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	r.Source = source
	return r
}

// Build builds the report content for res without identity fields.
func Build(res *convert.Result) *Report {
	r := &Report{
		Mode:        res.Mode,
		Stats:       res.Stats(),
		Canvas:      res.Canvas,
		ScaleFactor: res.ScaleFactor,
		Elements:    []Element{},
	}
	for i, el := range res.Elements() {
		o := el.Options
		title := o.Title
		if title == "" {
			title = convert.UnnamedRecord
		}
		r.Elements = append(r.Elements, Element{
			Index:           i,
			Title:           title,
			Type:            el.PrintElementType.Type,
			Page:            Box{X: o.Left, Y: o.Top, Width: o.Width, Height: o.Height},
			Source:          SourceBox(Box{X: o.Left, Y: o.Top, Width: o.Width, Height: o.Height}, res.ScaleFactor),
			FontSize:        o.FontSize,
			BackgroundColor: o.BackgroundColor,
		})
	}
	for _, rec := range res.Records {
		switch rec.Type {
		case convert.RecordPathBased:
			r.PathBased = append(r.PathBased, rec)
		case convert.RecordPathNotFound:
			r.NotFound = append(r.NotFound, rec)
		case convert.RecordSkippedImage:
			r.Skipped = append(r.Skipped, rec)
		}
	}
	return r
}

// SourceBox estimates the source pixel box of a page box by undoing the
// millimeter conversion and the user scale. The canvas fit and the page
// margin are not undone.
func SourceBox(page Box, scale float64) Box {
	if scale == 0 {
		scale = 1
	}
	px := func(mm float64) float64 { return math.Round(units.MMToPx(mm) / scale) }
	return Box{X: px(page.X), Y: px(page.Y), Width: px(page.Width), Height: px(page.Height)}
}

// ShortPath returns the last two segments of a slash-delimited path.
func ShortPath(path string) string {
	segs := strings.Split(path, "/")
	if len(segs) > 2 {
		segs = segs[len(segs)-2:]
	}
	return strings.Join(segs, "/")
}

// Summary is the short form printed after a conversion.
type Summary struct {
	Panels   int       `json:"panels"`
	Elements int       `json:"elements"`
	Paper    string    `json:"paper"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	First    []Element `json:"first"`
}

// Summarize returns the summary of r, listing at most SummaryElements
// elements.
func Summarize(res *convert.Result) Summary {
	r := Build(res)
	first := r.Elements
	if len(first) > SummaryElements {
		first = first[:SummaryElements]
	}
	return Summary{
		Panels:   len(res.Document.Panels),
		Elements: len(r.Elements),
		Paper:    r.Stats.PaperSize,
		Width:    r.Stats.PaperWidth,
		Height:   r.Stats.PaperHeight,
		First:    first,
	}
}
