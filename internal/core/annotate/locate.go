// Package annotate turns analyzed contract sections into a single document text
// with highlight ranges, and renders that text as plain and highlighted segments.
//
// Offsets are byte offsets into the joined document text.
package annotate

import (
	"strings"

	"github.com/colonyops/redguard/internal/core/contract"
)

// Separator joins consecutive section texts in the document text.
const Separator = "\n\n"

// Locate returns the offset of the first occurrence of snippet in sectionText.
// Matching is exact and case-sensitive. An empty snippet is never found.
func Locate(sectionText, snippet string) (int, bool) {
	if snippet == "" {
		return 0, false
	}
	idx := strings.Index(sectionText, snippet)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// SectionOffsets returns the offset of each section's text within the joined
// document text.
func SectionOffsets(sections []contract.Section) []int {
	offsets := make([]int, len(sections))
	pos := 0
	for i, s := range sections {
		offsets[i] = pos
		pos += len(s.Text)
		if i < len(sections)-1 {
			pos += len(Separator)
		}
	}
	return offsets
}

// JoinSections concatenates section texts with Separator.
func JoinSections(sections []contract.Section) string {
	var b strings.Builder
	for i, s := range sections {
		b.WriteString(s.Text)
		if i < len(sections)-1 {
			b.WriteString(Separator)
		}
	}
	return b.String()
}
