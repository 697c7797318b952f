package annotate

import (
	"slices"

	"github.com/colonyops/redguard/internal/core/contract"
)

// SegmentKind distinguishes plain text from highlighted text.
type SegmentKind int

const (
	SegmentPlain SegmentKind = iota
	SegmentHighlighted
)

func (k SegmentKind) String() string {
	if k == SegmentHighlighted {
		return "highlighted"
	}
	return "plain"
}

// Segment is a contiguous run of document text. Highlighted segments carry
// every highlight covering the run, ordered by start.
type Segment struct {
	Kind       SegmentKind
	Start      int
	End        int
	Text       string
	Highlights []Highlight
	Active     bool
	Selected   bool
}

// Issues returns the issues covering the segment.
func (s Segment) Issues() []contract.Issue {
	issues := make([]contract.Issue, len(s.Highlights))
	for i, h := range s.Highlights {
		issues[i] = h.Issue
	}
	return issues
}

// Severity returns the highest severity among the covering highlights.
func (s Segment) Severity() contract.Severity {
	best := contract.SeverityUnknown
	for _, h := range s.Highlights {
		if severityRank(h.Severity) > severityRank(best) {
			best = h.Severity
		}
	}
	return best
}

func severityRank(s contract.Severity) int {
	switch s {
	case contract.SeverityLow:
		return 1
	case contract.SeverityMedium:
		return 2
	case contract.SeverityHigh:
		return 3
	default:
		return 0
	}
}

// Segments partitions text into plain and highlighted runs. Overlapping
// highlights are split at every range boundary, so the returned segments are
// disjoint, ordered, and together cover text exactly once. Without overlaps
// there is one highlighted segment per highlight.
func Segments(text string, highlights []Highlight, active ActiveSet, sel Selection) []Segment {
	if text == "" {
		return nil
	}

	sorted := SortByStart(clampHighlights(highlights, len(text)))

	bounds := make([]int, 0, 2*len(sorted)+2)
	bounds = append(bounds, 0, len(text))
	for _, h := range sorted {
		bounds = append(bounds, h.Start, h.End)
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	segments := make([]Segment, 0, len(bounds))
	for i := 0; i < len(bounds)-1; i++ {
		start, end := bounds[i], bounds[i+1]

		var covering []Highlight
		for _, h := range sorted {
			if h.Start <= start && h.End >= end {
				covering = append(covering, h)
			}
		}

		seg := Segment{
			Kind:  SegmentPlain,
			Start: start,
			End:   end,
			Text:  text[start:end],
		}
		if len(covering) > 0 {
			seg.Kind = SegmentHighlighted
			seg.Highlights = covering
			for _, h := range covering {
				if active.Has(h.IssueID) {
					seg.Active = true
				}
				if sel.Covers(h) {
					seg.Selected = true
				}
			}
		}
		segments = append(segments, seg)
	}

	return segments
}

// clampHighlights drops highlights that fall outside [0, n) or are empty.
func clampHighlights(highlights []Highlight, n int) []Highlight {
	out := make([]Highlight, 0, len(highlights))
	for _, h := range highlights {
		if h.Start < 0 || h.End > n || h.Start >= h.End {
			continue
		}
		out = append(out, h)
	}
	return out
}
