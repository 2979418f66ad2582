package convert

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/estimate"
)

// DefaultScaleFactor is the user scale applied when none is given.
const DefaultScaleFactor = 1.0

// Options configures a conversion.
type Options struct {
	// PaperType names the target paper (A4, A3, B4, B5, Letter, Legal).
	PaperType string `json:"paper_type,omitempty"`
	// ScaleFactor multiplies every converted position and size. Zero means
	// DefaultScaleFactor.
	ScaleFactor float64 `json:"scale_factor,omitempty"`

	// Anchorer derives page anchors in path-indexed mode. Defaults to
	// estimate.DefaultRules().
	Anchorer estimate.Anchorer `json:"-"`
	// Logger receives debug and warning output. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills in zero-valued fields.
func (o *Options) SetDefaults() {
	if o.PaperType == "" {
		o.PaperType = edoc.DefaultPaperType
	}
	if o.ScaleFactor == 0 {
		o.ScaleFactor = DefaultScaleFactor
	}
	if o.Anchorer == nil {
		o.Anchorer = estimate.DefaultRules()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the paper type and scale factor.
func (o *Options) Validate() error {
	if _, err := edoc.LookupPaper(o.PaperType); err != nil {
		return err
	}
	if err := apperr.ValidateScaleFactor(o.ScaleFactor); err != nil {
		return err
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}
