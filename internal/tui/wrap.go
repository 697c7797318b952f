package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// lineSpan is one display line as a byte range into the document text.
type lineSpan struct {
	start, end int
}

// wrapSpans splits text into display lines no wider than width cells.
// Newlines always break; long lines break at the last space that fits, or
// mid-word when a word is wider than the line. The space at a soft break is
// not part of either line.
func wrapSpans(text string, width int) []lineSpan {
	width = max(width, 1)

	var spans []lineSpan
	start := 0
	for {
		nl := strings.IndexByte(text[start:], '\n')
		end := len(text)
		if nl >= 0 {
			end = start + nl
		}
		spans = append(spans, wrapLine(text, start, end, width)...)
		if nl < 0 {
			return spans
		}
		start = end + 1
	}
}

func wrapLine(text string, start, end, width int) []lineSpan {
	if start == end {
		return []lineSpan{{start, end}}
	}

	var spans []lineSpan
	lineStart, col, lastSpace := start, 0, -1

	for off, r := range text[start:end] {
		i := start + off
		w := runewidth.RuneWidth(r)

		if col+w > width && i > lineStart {
			if r == ' ' {
				spans = append(spans, lineSpan{lineStart, i})
				lineStart, col, lastSpace = i+1, 0, -1
				continue
			}

			if lastSpace > lineStart {
				spans = append(spans, lineSpan{lineStart, lastSpace})
				lineStart = lastSpace + 1
				col = runewidth.StringWidth(text[lineStart:i])
			} else {
				spans = append(spans, lineSpan{lineStart, i})
				lineStart, col = i, 0
			}
			lastSpace = -1

			if col+w > width && i > lineStart {
				spans = append(spans, lineSpan{lineStart, i})
				lineStart, col = i, 0
			}
		}

		if r == ' ' {
			lastSpace = i
		}
		col += w
	}

	if lineStart == end && len(spans) > 0 {
		return spans
	}
	return append(spans, lineSpan{lineStart, end})
}
