package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
)

// MaxInputBytes is the largest design file accepted by ImportJSON.
const MaxInputBytes = 10 * 1024 * 1024

// ReadJSON decodes a design document from r.
//
// The input is the already-decoded design tree exported by the design tool:
// a root node object (usually a FRAME with "width" and "height" describing the
// canvas) with nested "children", plus an optional "textContent" array:
//
//	{
//	  "type": "FRAME", "name": "Root", "width": 1024, "height": 724,
//	  "children": [{"type": "TEXT", "name": "Title", "characters": "Hello"}],
//	  "textContent": [{"path": "File/Root/Title", "name": "Title", "text": "Hello"}]
//	}
//
// ReadJSON only checks that the input is a JSON object; structural defaults
// (missing names, sizes) are applied during conversion. It does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode design document")
	}
	return &doc, nil
}

// Decode is ReadJSON over a byte slice.
func Decode(data []byte) (*Document, error) {
	if len(data) > MaxInputBytes {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "design document too large (%d bytes, max %d)", len(data), MaxInputBytes)
	}
	return ReadJSON(bytes.NewReader(data))
}

// ValidateInputPath checks that path names a .json file no larger than
// MaxInputBytes.
func ValidateInputPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return apperr.New(apperr.ErrCodeInvalidInput, "input must be a .json file: %s", path)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperr.New(apperr.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxInputBytes {
		return apperr.New(apperr.ErrCodeInvalidInput, "file too large: %s (%d bytes, max %d)", path, info.Size(), MaxInputBytes)
	}
	return nil
}

// ImportJSON validates and reads the design file at path.
func ImportJSON(path string) (*Document, error) {
	if err := ValidateInputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
