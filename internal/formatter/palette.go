package formatter

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette maps span kinds to styles. A Palette is immutable once built and
// is passed to whoever paints lines, so sessions and tests never share
// styling state.
type Palette struct {
	styles  map[Kind]lipgloss.Style
	noColor bool
}

// NewPalette builds a palette from per-kind foreground colors. Kinds without
// a color render unstyled.
func NewPalette(colors map[Kind]color.Color) Palette {
	styles := make(map[Kind]lipgloss.Style, len(colors))
	for k, c := range colors {
		if c == nil {
			continue
		}
		styles[k] = lipgloss.NewStyle().Foreground(c)
	}
	return Palette{styles: styles}
}

// NewStyledPalette builds a palette from fully specified styles.
func NewStyledPalette(styles map[Kind]lipgloss.Style) Palette {
	copied := make(map[Kind]lipgloss.Style, len(styles))
	for k, s := range styles {
		copied[k] = s
	}
	return Palette{styles: copied}
}

// PlainPalette renders text without any escape sequences.
func PlainPalette() Palette {
	return Palette{noColor: true}
}

// NoColor reports whether the palette emits plain text.
func (p Palette) NoColor() bool {
	return p.noColor
}

// Style returns the style used for kind.
func (p Palette) Style(kind Kind) (lipgloss.Style, bool) {
	s, ok := p.styles[kind]
	return s, ok
}

// RenderLine styles each span of l. Every styled token is followed by a reset.
func (p Palette) RenderLine(l Line) string {
	if p.noColor || len(p.styles) == 0 {
		return l.Text()
	}
	var b strings.Builder
	for _, span := range l {
		style, ok := p.styles[span.Kind]
		if !ok || span.Kind == KindPlain || strings.TrimSpace(span.Text) == "" {
			b.WriteString(span.Text)
			continue
		}
		b.WriteString(style.Render(span.Text))
	}
	return b.String()
}

// RenderLines styles lines and joins them with newlines.
func (p Palette) RenderLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = p.RenderLine(l)
	}
	return strings.Join(parts, "\n")
}
