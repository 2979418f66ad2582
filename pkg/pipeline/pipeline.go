// Package pipeline runs the decode → convert → render pipeline for pagefit.
//
// The CLI and the HTTP API share this package so that caching, defaults
// and artifact formats behave the same on every entry point.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Decode: read the design JSON and hash it for cache keys
//  2. Convert: map the design onto the target paper ([convert.Convert])
//  3. Render: produce the requested artifacts (JSON, SVG, PDF, PNG, ...)
//
// The conversion result and every cacheable artifact are stored in a
// [cache.Cache] keyed by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    PaperType: "A4",
//	    Formats:   []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagefit/pkg/cache"
	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/estimate"
	"github.com/matzehuels/pagefit/pkg/report"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultZoom is the PNG resolution multiplier.
	DefaultZoom = 2.0
)

// Format constants for output formats.
const (
	FormatJSON   = "json"   // print document
	FormatSVG    = "svg"    // page preview
	FormatPNG    = "png"    // page preview raster
	FormatPDF    = "pdf"    // page preview PDF
	FormatReport = "report" // mapping report JSON
	FormatDOT    = "dot"    // design tree as Graphviz DOT
	FormatTree   = "tree"   // design tree rendered to SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
	FormatReport: true,
	FormatDOT:    true,
	FormatTree:   true,
}

// FormatNames lists the supported formats in display order.
var FormatNames = []string{FormatJSON, FormatSVG, FormatPNG, FormatPDF, FormatReport, FormatDOT, FormatTree}

// Extensions maps formats to output file extensions.
var Extensions = map[string]string{
	FormatJSON:   ".json",
	FormatSVG:    ".svg",
	FormatPNG:    ".png",
	FormatPDF:    ".pdf",
	FormatReport: ".report.json",
	FormatDOT:    ".dot",
	FormatTree:   ".tree.svg",
}

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatJSON:   "application/json",
	FormatSVG:    "image/svg+xml",
	FormatPNG:    "image/png",
	FormatPDF:    "application/pdf",
	FormatReport: "application/json",
	FormatDOT:    "text/vnd.graphviz",
	FormatTree:   "image/svg+xml",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Convert options
	PaperType   string  `json:"paper_type,omitempty"`
	ScaleFactor float64 `json:"scale_factor,omitempty"`
	RulesFile   string  `json:"rules_file,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Margins bool     `json:"margins,omitempty"`
	Indexes bool     `json:"indexes,omitempty"`
	Zoom    float64  `json:"zoom,omitempty"`

	// Source names the input in the mapping report.
	Source string `json:"source,omitempty"`

	// Runtime options (not serialized)
	Rules  *estimate.Rules `json:"-"`
	Logger *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Conversion is the converted document and its classification log.
	Conversion *convert.Result

	// DesignHash is the content hash of the input design.
	DesignHash string

	// Report is the mapping report of this run.
	Report *report.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes       int
	Elements    int
	ConvertTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ConvertHit bool // Whether the conversion came from cache
	RenderHit  bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Cacheable reports whether artifacts of format can be cached. Reports
// carry a fresh ID per run and are never cached.
func Cacheable(format string) bool {
	return format != FormatReport
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields, applies defaults and loads the
// rules file. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForConvert(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForConvert validates and sets defaults for conversion.
func (o *Options) ValidateForConvert() error {
	if o.PaperType == "" {
		o.PaperType = edoc.DefaultPaperType
	}
	if o.ScaleFactor == 0 {
		o.ScaleFactor = convert.DefaultScaleFactor
	}
	if _, err := edoc.LookupPaper(o.PaperType); err != nil {
		return err
	}
	if err := apperr.ValidateScaleFactor(o.ScaleFactor); err != nil {
		return err
	}
	if o.Rules == nil && o.RulesFile != "" {
		rules, err := estimate.LoadRules(o.RulesFile)
		if err != nil {
			return err
		}
		o.Rules = rules
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Zoom <= 0 {
		o.Zoom = DefaultZoom
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ConvertOptions returns the conversion options for this run.
func (o *Options) ConvertOptions() convert.Options {
	opts := convert.Options{
		PaperType:   o.PaperType,
		ScaleFactor: o.ScaleFactor,
		Logger:      o.Logger,
	}
	if o.Rules != nil {
		opts.Anchorer = o.Rules
	}
	return opts
}

// RulesHash identifies custom rules in cache keys; empty for the built-in table.
func (o *Options) RulesHash() (string, error) {
	if o.Rules == nil {
		return "", nil
	}
	data, err := estimate.EncodeRules(o.Rules)
	if err != nil {
		return "", fmt.Errorf("encode rules: %w", err)
	}
	return cache.Hash(data), nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		opts.Margins = o.Margins
		opts.Indexes = o.Indexes
	}
	if format == FormatPNG {
		opts.Format = fmt.Sprintf("%s@%g", format, o.Zoom)
	}
	return opts
}
