package annotate

import "github.com/colonyops/redguard/internal/core/contract"

// Selection is the issue shown in the detail panel. When the selected segment
// is covered by several overlapping highlights, the first is primary and the
// rest are kept in Also.
type Selection struct {
	primary *Highlight
	also    []contract.Issue
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// DefaultSelection selects the issue of the lowest-start highlight, ties going
// to discovery order. It returns NoSelection when highlights is empty.
func DefaultSelection(highlights []Highlight) Selection {
	if len(highlights) == 0 {
		return NoSelection
	}
	first := SortByStart(highlights)[0]
	return Selection{primary: &first}
}

// None reports whether nothing is selected.
func (s Selection) None() bool { return s.primary == nil }

// Issue returns the selected issue.
func (s Selection) Issue() (contract.Issue, bool) {
	if s.primary == nil {
		return contract.Issue{}, false
	}
	return s.primary.Issue, true
}

// Highlight returns the selected highlight.
func (s Selection) Highlight() (Highlight, bool) {
	if s.primary == nil {
		return Highlight{}, false
	}
	return *s.primary, true
}

// Also returns the other issues covering the selected segment.
func (s Selection) Also() []contract.Issue { return s.also }

// Covers reports whether h is the selected highlight.
func (s Selection) Covers(h Highlight) bool {
	return s.primary != nil && s.primary.Index == h.Index && s.primary.Start == h.Start
}

// Select returns the selection after the user picks seg. Picking plain text
// leaves the selection unchanged.
func (s Selection) Select(seg Segment) Selection {
	if seg.Kind != SegmentHighlighted || len(seg.Highlights) == 0 {
		return s
	}

	primary := seg.Highlights[0]
	next := Selection{primary: &primary}
	for _, h := range seg.Highlights[1:] {
		next.also = append(next.also, h.Issue)
	}
	return next
}

// SelectHighlight selects h directly, even when h is nested inside or
// overlapped by an earlier highlight. Also lists the other highlights covering
// the segment where h starts.
func SelectHighlight(h Highlight, segments []Segment) Selection {
	next := Selection{primary: &h}
	for _, seg := range segments {
		if seg.Kind != SegmentHighlighted || seg.Start != h.Start {
			continue
		}
		for _, other := range seg.Highlights {
			if other.Index != h.Index {
				next.also = append(next.also, other.Issue)
			}
		}
		break
	}
	return next
}
