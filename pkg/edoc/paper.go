package edoc

import (
	"slices"
	"strings"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
)

// Paper is a named paper size in millimeters.
type Paper struct {
	Type   string  `json:"type" toml:"type"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultPaperType is used when no paper type is requested.
const DefaultPaperType = "A4"

var papers = map[string]Paper{
	"A4":     {Type: "A4", Width: 297, Height: 210},
	"A3":     {Type: "A3", Width: 420, Height: 297},
	"B4":     {Type: "B4", Width: 364, Height: 257},
	"B5":     {Type: "B5", Width: 257, Height: 182},
	"Letter": {Type: "Letter", Width: 279, Height: 216},
	"Legal":  {Type: "Legal", Width: 356, Height: 216},
}

// LookupPaper returns the paper for name. Names are case-sensitive.
func LookupPaper(name string) (Paper, error) {
	p, ok := papers[name]
	if !ok {
		return Paper{}, apperr.New(apperr.ErrCodeInvalidPaper,
			"unknown paper type: %q (must be one of: %s)", name, strings.Join(PaperTypes(), ", "))
	}
	return p, nil
}

// PaperTypes returns the supported paper type names in sorted order.
func PaperTypes() []string {
	names := make([]string, 0, len(papers))
	for name := range papers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Papers returns every supported paper in sorted name order.
func Papers() []Paper {
	out := make([]Paper, 0, len(papers))
	for _, name := range PaperTypes() {
		out = append(out, papers[name])
	}
	return out
}
