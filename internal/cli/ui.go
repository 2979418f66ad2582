package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/edoc"
	"github.com/matzehuels/pagefit/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Conversion Output
// =============================================================================

// conversionLine formats element and record counts on a single line.
func conversionLine(mode convert.Mode, elements, notFound, skipped int, cached bool) string {
	parts := []string{
		string(mode) + " mode",
		fmt.Sprintf("%d elements", elements),
	}
	if notFound > 0 {
		parts = append(parts, fmt.Sprintf("%d paths not found", notFound))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

// newTable returns a table in the CLI's house style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		})
}

// summaryTable renders the conversion summary: document shape and the
// first elements.
func summaryTable(s report.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d panel(s), %d element(s), %s %s×%s mm\n",
		StyleTitle.Render("Summary"), s.Panels, s.Elements, s.Paper, fmtNum(s.Width), fmtNum(s.Height))
	if len(s.First) == 0 {
		return b.String()
	}
	t := newTable("#", "Title", "Type", "Left", "Top", "Width", "Height")
	for _, el := range s.First {
		t.Row(strconv.Itoa(el.Index+1), truncate(el.Title, 30), el.Type,
			fmtNum(el.Page.X), fmtNum(el.Page.Y), fmtNum(el.Page.Width), fmtNum(el.Page.Height))
	}
	b.WriteString(t.Render())
	return b.String()
}

// statsTable renders conversion statistics.
func statsTable(s convert.Stats) string {
	t := newTable("Metric", "Value")
	t.Row("Paper", fmt.Sprintf("%s (%s×%s mm)", s.PaperSize, fmtNum(s.PaperWidth), fmtNum(s.PaperHeight)))
	t.Row("Elements", strconv.Itoa(s.TotalElements))
	t.Row("Text", strconv.Itoa(s.TextElements))
	t.Row("Images", strconv.Itoa(s.ImageElements))
	t.Row("Skipped", strconv.Itoa(s.SkippedElements))
	t.Row("Path based", strconv.Itoa(s.PathBasedElements))
	t.Row("Path not found", strconv.Itoa(s.PathNotFoundElements))
	return t.Render()
}

// elementTable renders report elements with page and estimated source boxes.
func elementTable(els []report.Element) string {
	t := newTable("#", "Title", "Type", "Page (mm)", "Source (px)")
	for _, el := range els {
		t.Row(strconv.Itoa(el.Index+1), truncate(el.Title, 30), el.Type, fmtBox(el.Page), fmtBox(el.Source))
	}
	return t.Render()
}

// recordTable renders classification records.
func recordTable(recs []convert.Record) string {
	t := newTable("Name", "Path", "Text / Reason")
	for _, r := range recs {
		t.Row(truncate(r.Name, 24), report.ShortPath(r.Path), truncate(recordDetail(r), 40))
	}
	return t.Render()
}

// recordDetail returns the reason of r, or its text when it has none.
func recordDetail(r convert.Record) string {
	if r.Reason != "" {
		return r.Reason
	}
	return r.Text
}

// paperTable renders the supported paper sizes.
func paperTable(papers []edoc.Paper) string {
	t := newTable("Paper", "Width (mm)", "Height (mm)")
	for _, p := range papers {
		name := p.Type
		if name == edoc.DefaultPaperType {
			name += " (default)"
		}
		t.Row(name, fmtNum(p.Width), fmtNum(p.Height))
	}
	return t.Render()
}

// =============================================================================
// Formatting Helpers
// =============================================================================

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fmtBox(b report.Box) string {
	return fmt.Sprintf("%s,%s %s×%s", fmtNum(b.X), fmtNum(b.Y), fmtNum(b.Width), fmtNum(b.Height))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatBytes formats a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
