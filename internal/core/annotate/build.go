package annotate

import (
	"slices"

	"github.com/colonyops/redguard/internal/core/contract"
)

// Highlight is a located issue: the half-open range [Start, End) of the
// document text that holds the issue's snippet.
type Highlight struct {
	Start    int
	End      int
	Severity contract.Severity
	Text     string
	IssueID  string
	Issue    contract.Issue
	Index    int // discovery order: section order, then issue order
}

// Len returns the length of the highlighted range.
func (h Highlight) Len() int { return h.End - h.Start }

// Dropped records an issue that produced no highlight because its snippet was
// missing or absent from its section.
type Dropped struct {
	SectionID string `json:"sectionId"`
	IssueID   string `json:"issueId"`
}

// Document is the annotated form of an analysis.
type Document struct {
	Text       string
	Highlights []Highlight // discovery order
	Dropped    []Dropped
}

// Empty reports whether there is nothing to display.
func (d Document) Empty() bool { return d.Text == "" }

// Build joins the section texts and locates every issue snippet in its own
// section. Issues whose snippet cannot be found are left out of the
// highlights and listed in Dropped. Overlapping highlights are kept as-is.
func Build(sections []contract.Section) Document {
	offsets := SectionOffsets(sections)
	doc := Document{Text: JoinSections(sections)}

	for i, section := range sections {
		for _, issue := range section.Issues {
			local, ok := Locate(section.Text, issue.Snippet)
			if !ok {
				doc.Dropped = append(doc.Dropped, Dropped{SectionID: section.ID, IssueID: issue.ID})
				continue
			}

			start := offsets[i] + local
			doc.Highlights = append(doc.Highlights, Highlight{
				Start:    start,
				End:      start + len(issue.Snippet),
				Severity: issue.Severity,
				Text:     issue.Snippet,
				IssueID:  issue.ID,
				Issue:    issue,
				Index:    len(doc.Highlights),
			})
		}
	}

	return doc
}

// SortByStart returns a copy of highlights ordered by Start. Ties keep
// discovery order.
func SortByStart(highlights []Highlight) []Highlight {
	sorted := slices.Clone(highlights)
	slices.SortStableFunc(sorted, func(a, b Highlight) int {
		return a.Start - b.Start
	})
	return sorted
}

// Stats summarizes how many issues were located per severity.
type Stats struct {
	Located    int
	Dropped    int
	BySeverity map[contract.Severity]int
}

// Stats counts the document's located and dropped issues.
func (d Document) Stats() Stats {
	s := Stats{
		Located:    len(d.Highlights),
		Dropped:    len(d.Dropped),
		BySeverity: make(map[contract.Severity]int, 4),
	}
	for _, h := range d.Highlights {
		s.BySeverity[h.Severity]++
	}
	return s
}
