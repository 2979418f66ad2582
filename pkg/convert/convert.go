package convert

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/estimate"
	"github.com/matzehuels/pagefit/pkg/materialize"
	"github.com/matzehuels/pagefit/pkg/nodeindex"
	"github.com/matzehuels/pagefit/pkg/placement"
	"github.com/matzehuels/pagefit/pkg/units"
)

// Mode is the conversion strategy picked for a document.
type Mode string

const (
	// ModePathIndexed resolves each text-content item against the node
	// index and anchors it heuristically.
	ModePathIndexed Mode = "path"
	// ModeTreeWalk flows every node of the tree and materializes text,
	// images and shapes.
	ModeTreeWalk Mode = "tree"
)

// ModeFor returns the mode Convert uses for doc.
func ModeFor(doc *design.Document) Mode {
	if doc.HasTextContent() {
		return ModePathIndexed
	}
	return ModeTreeWalk
}

// Result is the output of a conversion.
type Result struct {
	Document *edoc.Document `json:"document"`
	Records  []Record       `json:"records"`

	Mode        Mode       `json:"mode"`
	Paper       edoc.Paper `json:"paper"`
	ScaleFactor float64    `json:"scaleFactor"`
	// FitScale is the canvas-to-paper scale before ScaleFactor.
	FitScale float64 `json:"fitScale"`
	Canvas   Size    `json:"canvas"`
}

// Elements returns the converted elements.
func (r *Result) Elements() []edoc.PrintElement { return r.Document.Elements() }

// Stats summarizes the result.
func (r *Result) Stats() Stats { return GetStats(r.Document, r.Records) }

// Convert converts a design document into a print document. It fails only
// on invalid options or a nil document; unresolved paths and skipped images
// are reported through Result.Records. Convert is deterministic: equal
// inputs give byte-identical output.
func Convert(doc *design.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "design document is nil")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	paper, err := edoc.LookupPaper(opts.PaperType)
	if err != nil {
		return nil, err
	}

	cw, ch := doc.CanvasSize()
	conv := units.NewConverter(paper.Width, paper.Height, cw, ch, opts.ScaleFactor)
	c := &converter{
		anchorer: opts.Anchorer,
		logger:   opts.Logger,
		paper:    paper,
		conv:     conv,
		mat:      materialize.New(conv, paper),
		placer:   placement.NewPlacer(paper),
		out:      edoc.NewDocument(paper),
	}

	mode := ModeFor(doc)
	c.logger.Debug("converting design",
		"mode", mode,
		"paper", paper.Type,
		"scale", opts.ScaleFactor,
		"canvas", [2]float64{cw, ch})

	switch mode {
	case ModePathIndexed:
		c.convertTextContent(doc)
	default:
		c.convertTree(doc, cw)
	}

	c.logger.Debug("conversion finished",
		"elements", len(c.out.Elements()),
		"records", len(c.records))

	return &Result{
		Document:    c.out,
		Records:     c.records,
		Mode:        mode,
		Paper:       paper,
		ScaleFactor: opts.ScaleFactor,
		FitScale:    conv.FitScale(),
		Canvas:      Size{Width: cw, Height: ch},
	}, nil
}

// ToDocument converts doc onto paperType at scaleFactor and returns only
// the print document.
func ToDocument(doc *design.Document, paperType string, scaleFactor float64) (*edoc.Document, error) {
	res, err := Convert(doc, Options{PaperType: paperType, ScaleFactor: scaleFactor})
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// converter holds the per-call state of one conversion.
type converter struct {
	anchorer estimate.Anchorer
	logger   *log.Logger
	paper    edoc.Paper
	conv     *units.Converter
	mat      *materialize.Materializer
	placer   *placement.Placer
	out      *edoc.Document
	records  []Record
}

func (c *converter) convertTextContent(doc *design.Document) {
	idx := nodeindex.Build(&doc.Node)
	c.logger.Debug("indexed design tree", "paths", idx.Len(), "items", len(doc.TextContent))

	for _, item := range doc.TextContent {
		node, key, ok := idx.Lookup(item.Path)
		if !ok {
			c.logger.Warn("no node for text item", "path", item.Path)
			c.records = append(c.records, Record{
				Type:    RecordPathNotFound,
				Name:    item.Name,
				Path:    item.Path,
				Text:    Preview(item.Text),
				Reason:  ReasonPathNotFound,
				Element: NoElement,
			})
			continue
		}

		segs := nodeindex.Split(item.Path)
		if len(segs) > 0 {
			segs = segs[1:]
		}
		anchor := c.anchorer.Anchor(estimate.Query{
			Segments: segs,
			Leaf:     nodeindex.Leaf(item.Path),
			Node:     node,
		})

		title := item.Text
		if title == "" {
			title = item.Name
		}
		if title == "" {
			title = edoc.TitleText
		}

		// Anchors are page millimeters but go through the same position
		// conversion as source pixels.
		rec := c.placeText(node, title, anchor)
		rec.Type = RecordPathBased
		rec.Name = item.Name
		rec.Path = item.Path
		rec.Text = Preview(item.Text)
		c.logger.Debug("placed text item", "path", item.Path, "node", key, "anchor", anchor, "attempts", rec.Attempts)
		c.records = append(c.records, rec)
	}
}

func (c *converter) convertTree(doc *design.Document, canvasWidth float64) {
	estimate.NewFlow(canvasWidth).Walk(&doc.Node, func(n *design.Node, at estimate.Point) {
		switch materialize.Classify(n) {
		case materialize.KindText:
			rec := c.placeText(n, "", at)
			rec.Type = RecordText
			c.records = append(c.records, rec)

		case materialize.KindImage:
			c.records = append(c.records, c.emit(n, c.mat.Image(n, c.shapeRect(n, at)), at))

		case materialize.KindShape:
			c.records = append(c.records, c.emit(n, c.mat.Shape(n, c.shapeRect(n, at)), at))

		case materialize.KindSkipped:
			c.logger.Debug("skipped decorative image", "name", n.Name, "size", [2]float64{n.Width, n.Height})
			c.records = append(c.records, Record{
				Type:       RecordSkippedImage,
				Name:       n.DisplayName(UnnamedRecord),
				Reason:     materialize.SkipReason,
				SourceSize: &Size{Width: n.Width, Height: n.Height},
				ImageHash:  n.ImageHash(),
				Element:    NoElement,
			})
		}
	})
}

// shapeRect converts the position of a shape or image and keeps it on the
// page. Shapes do not take part in collision avoidance.
func (c *converter) shapeRect(n *design.Node, at estimate.Point) edoc.Rect {
	return placement.Clamp(c.mat.ShapeRect(n, at.X, at.Y), c.paper)
}

// placeText converts the position at, resolves collisions and appends the
// text element. Only text elements take part in collision avoidance.
func (c *converter) placeText(n *design.Node, title string, at estimate.Point) Record {
	w, h := c.mat.TextSize(n)
	res := c.placer.Place(edoc.Rect{
		Left:   c.conv.Position(at.X),
		Top:    c.conv.Position(at.Y),
		Width:  w,
		Height: h,
	})
	if res.Fallback {
		c.logger.Warn("no free position for element, clamping", "name", n.Name)
	}
	rec := c.emit(n, c.mat.Text(n, title, res.Rect), at)
	rec.SourceFontSize = n.FontSize
	rec.Attempts = res.Attempts
	rec.Fallback = res.Fallback
	return rec
}

// emit appends el to the panel and returns a record describing it, typed by
// the node type.
func (c *converter) emit(n *design.Node, el edoc.PrintElement, at estimate.Point) Record {
	panel := c.out.Panel()
	panel.PrintElements = append(panel.PrintElements, el)
	estimated := at
	return Record{
		Type:       RecordType(n.Type),
		Name:       n.DisplayName(UnnamedRecord),
		SourceSize: &Size{Width: n.Width, Height: n.Height},
		Estimated:  &estimated,
		Page:       &estimate.Point{X: el.Options.Left, Y: el.Options.Top},
		Element:    len(panel.PrintElements) - 1,
	}
}
