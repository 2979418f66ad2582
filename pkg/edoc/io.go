package edoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes d as indented JSON to w.
//
// The output is the wire contract consumed by the print designer: a
// "panels" array whose single panel carries paper metadata and
// "printElements". Encoding is deterministic for equal documents.
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the indented JSON encoding of d.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes d to the file at path, replacing any existing file.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ReadJSON decodes a print document from r. It does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// Unmarshal decodes a print document from data.
func Unmarshal(data []byte) (*Document, error) {
	return ReadJSON(bytes.NewReader(data))
}
