package formatter

import (
	"strings"
	"unicode/utf8"
)

// Kind tags a span with the role it plays. It only selects a display style.
type Kind int

const (
	KindPlain Kind = iota
	KindKey
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindStructural
	KindStatus
	KindMessage
)

var kindNames = map[Kind]string{
	KindPlain:      "plain",
	KindKey:        "key",
	KindString:     "string",
	KindNumber:     "number",
	KindBoolean:    "boolean",
	KindNull:       "null",
	KindStructural: "structural",
	KindStatus:     "status",
	KindMessage:    "message",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a config name such as "key" or "null" to its Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindPlain, false
}

// Span is a run of text rendered with one style.
type Span struct {
	Kind Kind
	Text string
}

// Line is one rendered row. A nil Line is an empty row.
type Line []Span

// NewLine returns a line holding a single span.
func NewLine(kind Kind, text string) Line {
	if text == "" {
		return Line{}
	}
	return Line{{Kind: kind, Text: text}}
}

// Text returns the unstyled content of the line.
func (l Line) Text() string {
	if len(l) == 1 {
		return l[0].Text
	}
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Len returns the number of characters in the line.
func (l Line) Len() int {
	n := 0
	for _, s := range l {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// Text joins the unstyled content of lines with newlines.
func Text(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}
