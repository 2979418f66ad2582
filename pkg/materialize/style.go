package materialize

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/pagefit/pkg/design"
)

// Sanitize normalizes line endings to LF and truncates s to MaxTitleRunes
// runes.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return Truncate(s, MaxTitleRunes)
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// HexColor formats c as #rrggbb. Channels are in [0,1] and are rounded to
// the nearest 8-bit value; out-of-range channels are clamped. A nil color
// is black.
func HexColor(c *design.Color) string {
	if c == nil {
		return "#000000"
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(255, math.Round(v*255))))
}

// TextAlign maps a horizontal alignment to its print value. Unknown values
// align left.
func TextAlign(align string) string {
	switch align {
	case "CENTER":
		return "center"
	case "RIGHT":
		return "right"
	}
	return "left"
}

// VerticalAlign maps a vertical alignment to its print value. Unknown and
// missing values are centered.
func VerticalAlign(align string) string {
	switch align {
	case "TOP":
		return "top"
	case "BOTTOM":
		return "bottom"
	}
	return "middle"
}

// LetterSpacing returns the spacing value for percent units and 0 for
// anything else.
func LetterSpacing(ls *design.LetterSpacing) float64 {
	if ls == nil || ls.Unit != "PERCENT" {
		return 0
	}
	return ls.Value
}
