package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReportModel - Interactive report browser
// =============================================================================

// reportSection is one browsable list of a report.
type reportSection struct {
	name    string
	headers []string
	rows    [][]string
}

// ReportModel is the bubbletea model for browsing a mapping report.
type ReportModel struct {
	Report   *report.Report
	Section  int
	Cursor   int
	Offset   int
	Height   int
	sections []reportSection
}

// NewReportModel creates a report browser for r.
func NewReportModel(r *report.Report) ReportModel {
	return ReportModel{
		Report:   r,
		Height:   15,
		sections: reportSections(r),
	}
}

func reportSections(r *report.Report) []reportSection {
	elements := reportSection{name: "Elements", headers: []string{"#", "Title", "Type", "Page (mm)", "Source (px)"}}
	for _, el := range r.Elements {
		elements.rows = append(elements.rows, []string{
			strconv.Itoa(el.Index + 1), truncate(el.Title, 30), el.Type, fmtBox(el.Page), fmtBox(el.Source),
		})
	}

	records := func(name string, recs []convert.Record) reportSection {
		s := reportSection{name: name, headers: []string{"Name", "Path", "Text / Reason"}}
		for _, rec := range recs {
			s.rows = append(s.rows, []string{truncate(rec.Name, 24), report.ShortPath(rec.Path), truncate(recordDetail(rec), 40)})
		}
		return s
	}

	return []reportSection{
		elements,
		records("Path based", r.PathBased),
		records("Not found", r.NotFound),
		records("Skipped", r.Skipped),
	}
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchSection(1)
		case "shift+tab", "left", "h":
			m.switchSection(-1)
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.current().rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *ReportModel) switchSection(delta int) {
	n := len(m.sections)
	m.Section = ((m.Section+delta)%n + n) % n
	m.Cursor, m.Offset = 0, 0
}

func (m ReportModel) current() reportSection {
	return m.sections[m.Section]
}

func (m ReportModel) View() string {
	var b strings.Builder

	title := "Report"
	if m.Report.Source != "" {
		title += " · " + m.Report.Source
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab/←/→ section  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	for i, s := range m.sections {
		label := fmt.Sprintf(" %s (%d) ", s.name, len(s.rows))
		if i == m.Section {
			b.WriteString(listSelectedStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(listNormalStyle.Render(" " + label + " "))
		}
	}
	b.WriteString("\n")

	s := m.current()
	if len(s.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  nothing to show"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(s.rows) {
		end = len(s.rows)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(s.headers...).
		Rows(s.rows[m.Offset:end]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(s.rows))))

	return b.String()
}
