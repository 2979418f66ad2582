package estimate

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
)

// DecodeRules parses a TOML anchor table. Each top-level section present in
// the input ([[rule]], [groups], [long_text], [fallback], [bounds]) replaces
// the matching DefaultRules section; absent sections keep the defaults.
func DecodeRules(r io.Reader) (*Rules, error) {
	var in Rules
	md, err := toml.NewDecoder(r).Decode(&in)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidRules, err, "decode anchor rules")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidRules, "unknown key %q in anchor rules", undecoded[0].String())
	}

	rules := DefaultRules()
	if md.IsDefined("rule") {
		rules.Rules = in.Rules
	}
	if md.IsDefined("groups") {
		rules.Groups = in.Groups
	}
	if md.IsDefined("long_text") {
		rules.LongText = in.LongText
	}
	if md.IsDefined("fallback") {
		rules.Fallback = in.Fallback
	}
	if md.IsDefined("bounds") {
		rules.Bounds = in.Bounds
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadRules reads a TOML anchor table from path.
func LoadRules(path string) (*Rules, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperr.New(apperr.ErrCodeFileNotFound, "rules file not found: %s", path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidRules, err, "open %s", path)
	}
	defer f.Close()
	return DecodeRules(f)
}

// WriteRules encodes r as TOML.
func WriteRules(w io.Writer, r *Rules) error {
	return toml.NewEncoder(w).Encode(r)
}

// EncodeRules is WriteRules into a byte slice.
func EncodeRules(r *Rules) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRules(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks that the table can produce anchors.
func (r *Rules) Validate() error {
	b := r.Bounds
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return apperr.New(apperr.ErrCodeInvalidRules, "bounds are inverted: x [%g,%g] y [%g,%g]", b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	for i, rule := range r.Rules {
		if len(rule.All) == 0 && len(rule.Any) == 0 {
			return apperr.New(apperr.ErrCodeInvalidRules, "rule %d (%s) has no match terms", i, rule.Name)
		}
	}
	for i, rule := range r.Groups.Rules {
		if len(rule.All) == 0 && len(rule.Any) == 0 {
			return apperr.New(apperr.ErrCodeInvalidRules, "group rule %d (%s) has no match terms", i, rule.Name)
		}
	}
	for name, n := range map[string]int{
		"groups.overflow.buckets": r.Groups.Overflow.Buckets,
		"long_text.slots.buckets": r.LongText.Slots.Buckets,
		"fallback.buckets":        r.Fallback.Buckets,
		"fallback.x_cycle":        r.Fallback.XCycle,
	} {
		if n < 0 {
			return apperr.New(apperr.ErrCodeInvalidRules, "%s must not be negative", name)
		}
	}
	return nil
}
