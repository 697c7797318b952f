package tui

import (
	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/scan"
)

// FinalSegments returns doc's segments as the viewer shows them once the scan
// has finished: every highlight revealed and the default selection applied.
func FinalSegments(doc annotate.Document) []annotate.Segment {
	st := scan.Tick(scan.New(0).Start(doc), 0)
	return annotate.Segments(doc.Text, doc.Highlights, st.Active, annotate.DefaultSelection(doc.Highlights))
}

// RenderStatic renders doc wrapped to width with every highlight revealed.
func RenderStatic(doc annotate.Document, width int) string {
	if doc.Empty() {
		return ""
	}
	out, _ := renderDocument(doc.Text, FinalSegments(doc), width)
	return out
}
