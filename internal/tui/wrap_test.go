package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/pkg/tuitest"
)

func spanTexts(text string, spans []lineSpan) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = text[s.start:s.end]
	}
	return out
}

func TestWrapSpans(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "short line", width: 20, want: []string{"short line"}},
		{name: "word break", text: "no cap on liability", width: 10, want: []string{"no cap on", "liability"}},
		{name: "hard break", text: "indemnification", width: 6, want: []string{"indemn", "ificat", "ion"}},
		{name: "newlines kept", text: "a\n\nb", width: 10, want: []string{"a", "", "b"}},
		{name: "space at edge", text: "abc def", width: 3, want: []string{"abc", "def"}},
		{name: "wide runes", text: "合同条款", width: 4, want: []string{"合同", "条款"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spanTexts(tt.text, wrapSpans(tt.text, tt.width))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrapSpans_WidthAndOrder(t *testing.T) {
	text := "The Supplier's aggregate liability shall not be limited in any way.\n\nPayment is due Net 90 from invoice."

	for _, width := range []int{5, 12, 30, 80} {
		spans := wrapSpans(text, width)
		prev := 0
		for _, s := range spans {
			assert.GreaterOrEqual(t, s.start, prev)
			assert.LessOrEqual(t, runewidth.StringWidth(text[s.start:s.end]), width)
			prev = s.end
		}
	}
}

func TestRenderDocument(t *testing.T) {
	text := "Pay in Net 90. No cap on liability."
	hs := []annotate.Highlight{
		{Start: 7, End: 13, Severity: contract.SeverityMedium, IssueID: "a", Index: 0},
		{Start: 15, End: 34, Severity: contract.SeverityHigh, IssueID: "b", Index: 1},
	}
	sel := annotate.NoSelection.Select(annotate.Segment{Kind: annotate.SegmentHighlighted, Highlights: hs[1:]})
	segs := annotate.Segments(text, hs, annotate.NewActiveSet("a", "b"), sel)

	out, line := renderDocument(text, segs, 18)

	assert.Equal(t, "Pay in Net 90. No\ncap on liability.", tuitest.StripANSI(out))
	assert.Equal(t, 0, line)
	assert.Len(t, strings.Split(out, "\n"), 2)
}
