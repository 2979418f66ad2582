package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ConversionKeyOpts are the conversion inputs that change the output
// besides the design itself.
type ConversionKeyOpts struct {
	PaperType   string  `json:"paper_type"`
	ScaleFactor float64 `json:"scale_factor"`
	// RulesHash identifies the anchor rules in use; empty for the built-in
	// table.
	RulesHash string `json:"rules_hash,omitempty"`
}

// ArtifactKeyOpts identify a rendering of a conversion result.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Margins bool   `json:"margins,omitempty"`
	Indexes bool   `json:"indexes,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ConversionKey addresses the conversion of the design with the given
	// content hash.
	ConversionKey(designHash string, opts ConversionKeyOpts) string
	// ArtifactKey addresses an artifact rendered from a conversion result
	// with the given content hash.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ConversionKey implements Keyer.
func (DefaultKeyer) ConversionKey(designHash string, opts ConversionKeyOpts) string {
	return hashKey("conversion", designHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

// hashKey returns prefix, a colon and the hex SHA-256 of the JSON array of
// parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of the concatenation of parts.
func Hash(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
