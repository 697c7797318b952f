package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/core/scan"
	"github.com/colonyops/redguard/internal/core/styles"
)

// panel chrome: rounded border plus one column of padding on each side.
const (
	panelHChrome = 4
	panelVChrome = 2
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case stateLoading:
		body = m.placeCentered(m.spinner.View() + " Loading contract analysis...")
	case stateFailed:
		body = m.placeCentered(styles.ErrorStyle.Render(styles.IconWarning + " " + m.errMsg))
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderDocumentPanel(), m.renderDetailPanel())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.help.View(m.keys),
	)
}

func (m Model) placeCentered(s string) string {
	return lipgloss.Place(m.width, m.panelHeight(), lipgloss.Center, lipgloss.Center, s)
}

func (m Model) panelHeight() int { return max(m.height-2, 3) }

func (m Model) detailPanelWidth() int { return min(m.detailWidth, m.width/2) }

func (m Model) docPanelWidth() int { return m.width - m.detailPanelWidth() }

func (m Model) docContentWidth() int { return max(m.docPanelWidth()-panelHChrome, 1) }

func (m Model) detailContentWidth() int { return max(m.detailPanelWidth()-panelHChrome, 1) }

// resize fits the document viewport to the current window. The panel title
// and scanner row sit above it.
func (m *Model) resize() {
	m.viewport.Width = m.docContentWidth()
	m.viewport.Height = max(m.panelHeight()-panelVChrome-2, 1)
	m.help.Width = m.width
}

// syncViewport re-renders the document into the viewport. With follow set the
// viewport scrolls to keep the selected segment visible.
func (m *Model) syncViewport(follow bool) {
	if m.doc.Empty() {
		return
	}

	content, line := renderDocument(m.doc.Text, m.segments, m.docContentWidth())
	m.viewport.SetContent(content)

	if follow && line >= 0 {
		if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(max(line-m.viewport.Height/3, 0))
		}
	}
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render(styles.IconShield + " redguard")
	if m.analysis.FileName != "" {
		title += styles.MutedStyle.Render("  " + m.analysis.FileName)
	}

	status := ""
	if m.state == stateReady {
		status = m.statusLine()
	}

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	return title + strings.Repeat(" ", gap) + status
}

func (m Model) statusLine() string {
	stats := m.doc.Stats()

	parts := []string{fmt.Sprintf("%d risks", stats.Located)}
	sevs := contract.Severities()
	for i := len(sevs) - 1; i >= 0; i-- {
		if n := stats.BySeverity[sevs[i]]; n > 0 {
			dot := lipgloss.NewStyle().Foreground(styles.SeverityColor(sevs[i])).Render("●")
			parts = append(parts, fmt.Sprintf("%s %d %s", dot, n, strings.ToLower(sevs[i].Label())))
		}
	}
	if stats.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d unlocated", stats.Dropped))
	}
	if m.scan.Scanning() {
		parts = append(parts, fmt.Sprintf("scanning %d%%", int(m.scan.Fraction()*100)))
	}

	return styles.MutedStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderDocumentPanel() string {
	width := m.docContentWidth()
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitleStyle.Render(truncate(m.analysis.DisplayTitle(), width)),
		scannerRow(m.scan, width),
		m.viewport.View(),
	)

	return styles.PanelStyle.
		Width(m.docPanelWidth() - 2).
		Height(m.panelHeight() - panelVChrome).
		MaxHeight(m.panelHeight()).
		Render(content)
}

func (m Model) renderDetailPanel() string {
	body := m.detail
	if body == "" {
		body = styles.MutedStyle.Render("No risks found in this document.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitleStyle.Render("Risk detail"),
		"",
		body,
	)

	return styles.PanelStyle.
		Width(m.detailPanelWidth() - 2).
		Height(m.panelHeight() - panelVChrome).
		MaxHeight(m.panelHeight()).
		Render(content)
}

// renderDetail rebuilds the detail panel body for the current selection.
func (m *Model) renderDetail() {
	issue, ok := m.selection.Issue()
	if !ok {
		m.detail = ""
		return
	}

	width := m.detailContentWidth()

	var b strings.Builder
	b.WriteString(styles.BadgeStyle(issue.Severity).Render(issue.Severity.Label()))
	b.WriteString(" ")
	b.WriteString(styles.DetailHeadingStyle.Render(issue.Title()))
	b.WriteString("\n\n")
	b.WriteString(styles.DetailLabelStyle.Render("Why it matters"))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(issue.Explanation, width))

	if issue.SuggestedFix != "" {
		fix := styles.DetailLabelStyle.Render(styles.IconLightbulb+" Suggested fix") + "\n" +
			renderMarkdown(issue.SuggestedFix, width-panelHChrome)
		b.WriteString("\n\n")
		b.WriteString(styles.FixBoxStyle.Width(width - 2).Render(fix))
	}

	if also := m.selection.Also(); len(also) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.DetailLabelStyle.Render("Also here"))
		for _, other := range also {
			b.WriteString("\n")
			b.WriteString(styles.IconChevron + " " + styles.BadgeStyle(other.Severity).Render(other.Severity.Label()) + " " + other.Title())
		}
	}

	m.detail = b.String()
}

// renderMarkdown renders src with the theme's glamour style, falling back to
// the raw text when rendering fails.
func renderMarkdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 10)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return src
	}

	out, err := renderer.Render(src)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return src
	}
	return strings.TrimSpace(out)
}

// renderDocument draws the segments wrapped to width. It returns the display
// line of the first selected segment, or -1 when nothing is selected.
func renderDocument(text string, segments []annotate.Segment, width int) (string, int) {
	spans := wrapSpans(text, width)
	lines := make([]string, len(spans))
	selectedLine := -1

	si := 0
	for li, sp := range spans {
		for si < len(segments) && segments[si].End <= sp.start {
			si++
		}

		var b strings.Builder
		for j := si; j < len(segments) && segments[j].Start < sp.end; j++ {
			seg := segments[j]
			from, to := max(seg.Start, sp.start), min(seg.End, sp.end)
			if from >= to {
				continue
			}
			b.WriteString(segmentStyle(seg).Render(text[from:to]))
			if seg.Selected && selectedLine < 0 {
				selectedLine = li
			}
		}
		lines[li] = b.String()
	}

	return strings.Join(lines, "\n"), selectedLine
}

func segmentStyle(seg annotate.Segment) lipgloss.Style {
	if seg.Kind == annotate.SegmentPlain {
		return styles.DocumentTextStyle
	}
	return styles.HighlightStyle(seg.Severity(), seg.Active, seg.Selected)
}

// scannerRow draws the sweep line for a row width columns wide. The column is
// taken from the live width on every frame.
func scannerRow(st scan.State, width int) string {
	if width <= 0 {
		return ""
	}
	if !st.Scanning() {
		return styles.DividerStyle.Render(strings.Repeat("─", width))
	}

	pos := min(st.Position(width), width-1)
	trailStart := max(pos-styles.TrailWidth, 0)

	return strings.Repeat(" ", trailStart) +
		styles.ScannerTrailStyle.Render(strings.Repeat(styles.ScannerTrail, pos-trailStart)) +
		styles.ScannerStyle.Render(styles.ScannerHead) +
		strings.Repeat(" ", width-pos-1)
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
