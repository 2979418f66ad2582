package convert

import (
	"github.com/matzehuels/pagefit/pkg/estimate"
	"github.com/matzehuels/pagefit/pkg/materialize"
)

// RecordType tags a classification record. Shape records use the node type
// itself (RECTANGLE, ELLIPSE, ...).
type RecordType string

// Record types emitted by the converter.
const (
	RecordText         RecordType = "TEXT"
	RecordPathBased    RecordType = "PATH_BASED_TEXT"
	RecordPathNotFound RecordType = "PATH_NOT_FOUND"
	RecordSkippedImage RecordType = "SKIPPED_IMAGE"
)

// ReasonPathNotFound is recorded for text items whose path resolves to no
// node.
const ReasonPathNotFound = "no node matches path"

// UnnamedRecord names records for nodes without a name.
const UnnamedRecord = "Unnamed"

// PreviewRunes bounds the text carried by a record.
const PreviewRunes = 50

// NoElement is the Element value of records that produced no element.
const NoElement = -1

// Size is a source size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Record describes how one node or text item was handled. Records are
// diagnostics only; the converter never reads them back.
type Record struct {
	Type RecordType `json:"type"`
	Name string     `json:"name"`
	Path string     `json:"path,omitempty"`
	Text string     `json:"text,omitempty"`
	// Reason explains skipped and unresolved entries.
	Reason string `json:"reason,omitempty"`

	SourceSize     *Size   `json:"sourceSize,omitempty"`
	SourceFontSize float64 `json:"sourceFontSize,omitempty"`
	// Estimated is the position before unit conversion: the heuristic
	// anchor in path-indexed mode, the flowed pixel position in tree mode.
	Estimated *estimate.Point `json:"estimatedPosition,omitempty"`
	// Page is the final upper-left corner of the element in millimeters.
	Page      *estimate.Point `json:"pagePosition,omitempty"`
	ImageHash string          `json:"imageHash,omitempty"`

	// Element is the index of the produced element in the panel, or
	// NoElement.
	Element int `json:"element"`
	// Attempts is the number of positions the placer rejected.
	Attempts int `json:"attempts,omitempty"`
	// Fallback is set when the placer gave up and clamped the element.
	Fallback bool `json:"fallback,omitempty"`
}

// HasElement reports whether the record produced an element.
func (r Record) HasElement() bool { return r.Element != NoElement }

// IsShape reports whether the record is for a shape or image node.
func (r Record) IsShape() bool {
	switch r.Type {
	case RecordText, RecordPathBased, RecordPathNotFound, RecordSkippedImage:
		return false
	}
	return true
}

// Preview shortens text for a record: at most PreviewRunes runes followed
// by "..." when truncated.
func Preview(text string) string {
	short := materialize.Truncate(text, PreviewRunes)
	if short != text {
		return short + "..."
	}
	return text
}
