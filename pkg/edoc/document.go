package edoc

// Element type names used in PrintElementType.Type.
const (
	TypeText  = "text"
	TypeImage = "image"
)

// Element type titles expected by the print designer.
const (
	TitleText  = "テキスト"
	TitleImage = "图片"
)

// Border style applied to every side of a stroked element.
const BorderSolid = "solid"

// DefaultBorderWidth is the border width string emitted for every element.
const DefaultBorderWidth = "0.75"

// Panel layout constants emitted unchanged on every document.
const (
	PaperHeader     = 20.0
	PaperFooter     = 566.9927622683529
	PaperNumberLeft = 811.0
	PaperNumberTop  = 573.0
	FontFamily      = "sans-serif"
)

// Document is the print-document root. It always carries exactly one panel.
type Document struct {
	Panels []Panel `json:"panels"`
}

// Panel is one printable page with its paper metadata and elements.
type Panel struct {
	Index               int              `json:"index"`
	Name                int              `json:"name"`
	PaperType           string           `json:"paperType"`
	Height              float64          `json:"height"`
	Width               float64          `json:"width"`
	PaperHeader         float64          `json:"paperHeader"`
	PaperFooter         float64          `json:"paperFooter"`
	PrintElements       []PrintElement   `json:"printElements"`
	PaperNumberLeft     float64          `json:"paperNumberLeft"`
	PaperNumberTop      float64          `json:"paperNumberTop"`
	PaperNumberDisabled bool             `json:"paperNumberDisabled"`
	PaperNumberContinue bool             `json:"paperNumberContinue"`
	FontFamily          string           `json:"fontFamily"`
	OverPrintOptions    OverPrintOptions `json:"overPrintOptions"`
	WatermarkOptions    WatermarkOptions `json:"watermarkOptions"`
}

// OverPrintOptions configures the over-print layer.
type OverPrintOptions struct {
	Content string  `json:"content"`
	Opacity float64 `json:"opacity"`
	Type    int     `json:"type"`
}

// WatermarkOptions configures the page watermark.
type WatermarkOptions struct {
	Content   string  `json:"content"`
	FillStyle string  `json:"fillStyle"`
	FontSize  string  `json:"fontSize"`
	Rotate    float64 `json:"rotate"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Timestamp bool    `json:"timestamp"`
	Format    string  `json:"format"`
}

// PrintElement is an absolutely positioned element on the page.
type PrintElement struct {
	Options          Options          `json:"options"`
	PrintElementType PrintElementType `json:"printElementType"`
}

// PrintElementType names the element kind.
type PrintElementType struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Options holds the geometry and style of a print element. Positions and
// sizes are in millimeters. Right, Bottom, VCenter and HCenter are derived
// from Left/Top/Width/Height by [Rect.Apply].
type Options struct {
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
	Width   float64 `json:"width"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
	VCenter float64 `json:"vCenter"`
	HCenter float64 `json:"hCenter"`

	BorderWidth     string `json:"borderWidth"`
	CoordinateSync  bool   `json:"coordinateSync"`
	WidthHeightSync bool   `json:"widthHeightSync"`

	Title                    string  `json:"title,omitempty"`
	FontSize                 float64 `json:"fontSize,omitempty"`
	FontWeight               string  `json:"fontWeight,omitempty"`
	LetterSpacing            float64 `json:"letterSpacing"`
	TextAlign                string  `json:"textAlign,omitempty"`
	TextContentVerticalAlign string  `json:"textContentVerticalAlign,omitempty"`
	QRCodeLevel              int     `json:"qrCodeLevel"`

	ContentPaddingLeft   float64 `json:"contentPaddingLeft"`
	ContentPaddingTop    float64 `json:"contentPaddingTop"`
	ContentPaddingRight  float64 `json:"contentPaddingRight"`
	ContentPaddingBottom float64 `json:"contentPaddingBottom"`

	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderLeft      string `json:"borderLeft,omitempty"`
	BorderTop       string `json:"borderTop,omitempty"`
	BorderRight     string `json:"borderRight,omitempty"`
	BorderBottom    string `json:"borderBottom,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`

	Fit   string `json:"fit,omitempty"`
	Src   string `json:"src,omitempty"`
	Field string `json:"field,omitempty"`
}

// SetBorders marks every side of the element with style.
func (o *Options) SetBorders(style string) {
	o.BorderLeft = style
	o.BorderTop = style
	o.BorderRight = style
	o.BorderBottom = style
}

// SetPadding sets the same content padding on every side.
func (o *Options) SetPadding(p float64) {
	o.ContentPaddingLeft = p
	o.ContentPaddingTop = p
	o.ContentPaddingRight = p
	o.ContentPaddingBottom = p
}

// Rect returns the element rectangle.
func (e PrintElement) Rect() Rect { return RectOf(e.Options) }

// IsText reports whether e is a text element.
func (e PrintElement) IsText() bool { return e.PrintElementType.Type == TypeText }

// IsImage reports whether e is an image element.
func (e PrintElement) IsImage() bool { return e.PrintElementType.Type == TypeImage }

// NewPanel returns an empty panel sized for paper with the fixed layout,
// watermark and over-print defaults.
func NewPanel(paper Paper) Panel {
	return Panel{
		Index:               0,
		Name:                1,
		PaperType:           paper.Type,
		Height:              paper.Height,
		Width:               paper.Width,
		PaperHeader:         PaperHeader,
		PaperFooter:         PaperFooter,
		PrintElements:       []PrintElement{},
		PaperNumberLeft:     PaperNumberLeft,
		PaperNumberTop:      PaperNumberTop,
		PaperNumberDisabled: true,
		PaperNumberContinue: false,
		FontFamily:          FontFamily,
		OverPrintOptions: OverPrintOptions{
			Content: "",
			Opacity: 0.7,
			Type:    1,
		},
		WatermarkOptions: WatermarkOptions{
			Content:   "",
			FillStyle: "rgba(184, 184, 184, 0.3)",
			FontSize:  "14px",
			Rotate:    25,
			Width:     200,
			Height:    200,
			Timestamp: false,
			Format:    "YYYY-MM-DD HH:mm",
		},
	}
}

// NewDocument returns a document with a single empty panel for paper.
func NewDocument(paper Paper) *Document {
	return &Document{Panels: []Panel{NewPanel(paper)}}
}

// Panel returns the first panel, or nil for an empty document.
func (d *Document) Panel() *Panel {
	if d == nil || len(d.Panels) == 0 {
		return nil
	}
	return &d.Panels[0]
}

// Elements returns the elements of the first panel.
func (d *Document) Elements() []PrintElement {
	if p := d.Panel(); p != nil {
		return p.PrintElements
	}
	return nil
}

// Paper returns the paper of the first panel.
func (d *Document) Paper() Paper {
	if p := d.Panel(); p != nil {
		return Paper{Type: p.PaperType, Width: p.Width, Height: p.Height}
	}
	return Paper{}
}
