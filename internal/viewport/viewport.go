// Package viewport windows rendered lines by a vertical line offset and a
// horizontal character offset. Lines are only cut, never reflowed.
package viewport

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jv/internal/formatter"
)

// HorizontalStep is the number of characters one horizontal scroll moves.
const HorizontalStep = 4

// Window drops the first horizontal characters of every line, then the first
// vertical lines. Lines not longer than horizontal become empty and a
// vertical offset past the end yields no lines. Negative offsets count as 0.
// The input is not modified.
func Window(lines []formatter.Line, vertical, horizontal int) []formatter.Line {
	if vertical < 0 {
		vertical = 0
	}
	if vertical >= len(lines) {
		return []formatter.Line{}
	}
	visible := lines[vertical:]
	out := make([]formatter.Line, len(visible))
	for i, l := range visible {
		out[i] = dropPrefix(l, horizontal)
	}
	return out
}

// dropPrefix removes the first n characters of l, splitting a span when the
// cut falls inside it.
func dropPrefix(l formatter.Line, n int) formatter.Line {
	if n <= 0 {
		return l
	}
	if l.Len() <= n {
		return formatter.Line{}
	}
	out := make(formatter.Line, 0, len(l))
	for _, span := range l {
		if n == 0 {
			out = append(out, span)
			continue
		}
		runes := []rune(span.Text)
		if len(runes) <= n {
			n -= len(runes)
			continue
		}
		out = append(out, formatter.Span{Kind: span.Kind, Text: string(runes[n:])})
		n = 0
	}
	return out
}

// Clip keeps at most height lines and cuts each to width terminal cells.
// A height or width of 0 leaves that dimension unbounded.
func Clip(lines []formatter.Line, height, width int) []formatter.Line {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	if width <= 0 {
		return lines
	}
	out := make([]formatter.Line, len(lines))
	for i, l := range lines {
		out[i] = truncate(l, width)
	}
	return out
}

func truncate(l formatter.Line, width int) formatter.Line {
	if Width(l) <= width {
		return l
	}
	out := make(formatter.Line, 0, len(l))
	remaining := width
	for _, span := range l {
		if remaining <= 0 {
			break
		}
		cut := 0
		used := 0
		for j, r := range span.Text {
			w := runewidth.RuneWidth(r)
			if used+w > remaining {
				cut = j
				break
			}
			used += w
			cut = j + len(string(r))
		}
		if cut > 0 {
			out = append(out, formatter.Span{Kind: span.Kind, Text: span.Text[:cut]})
		}
		remaining -= used
		if cut < len(span.Text) {
			break
		}
	}
	return out
}

// Width returns the display width of l in terminal cells.
func Width(l formatter.Line) int {
	w := 0
	for _, span := range l {
		w += runewidth.StringWidth(span.Text)
	}
	return w
}

// MaxWidth returns the widest line in cells.
func MaxWidth(lines []formatter.Line) int {
	widest := 0
	for _, l := range lines {
		if w := Width(l); w > widest {
			widest = w
		}
	}
	return widest
}

// MaxVertical is the largest vertical offset that still fills a viewport of
// height rows: max(0, total-height). A height below 1 counts as 1.
func MaxVertical(total, height int) int {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0
	}
	return total - height
}

// Clamp bounds offset to [0, limit].
func Clamp(offset, limit int) int {
	if offset < 0 || limit < 0 {
		return 0
	}
	if offset > limit {
		return limit
	}
	return offset
}
