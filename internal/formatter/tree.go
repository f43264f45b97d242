package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/oakwood-commons/jv/pkg/document"
)

const (
	// IndentWidth is the number of spaces added per nesting level.
	IndentWidth = 2
	// Placeholder replaces the subtree of a collapsed node.
	Placeholder = "{ ... }"
)

// CollapseState reports whether the node at path renders as Placeholder.
type CollapseState interface {
	Collapsed(path string) bool
}

type expanded struct{}

func (expanded) Collapsed(string) bool { return false }

// Render lays out v as indented JSON. path is the identity of v itself and
// seeds the paths of its descendants. A nil state renders everything expanded.
//
// Members keep their source order and each line is returned as styled spans,
// so callers can window the output without parsing escape sequences.
func Render(v document.Value, path string, state CollapseState) []Line {
	if state == nil {
		state = expanded{}
	}
	b := &treeBuilder{state: state}
	b.value(v, 0, path)
	b.newline()
	return b.lines
}

type treeBuilder struct {
	state CollapseState
	lines []Line
	cur   Line
}

func (b *treeBuilder) emit(kind Kind, text string) {
	b.cur = append(b.cur, Span{Kind: kind, Text: text})
}

func (b *treeBuilder) pad(n int) {
	if n > 0 {
		b.emit(KindPlain, strings.Repeat(" ", n))
	}
}

func (b *treeBuilder) newline() {
	b.lines = append(b.lines, b.cur)
	b.cur = nil
}

// value appends v starting at the current position; nested rows are
// indented relative to indent.
func (b *treeBuilder) value(v document.Value, indent int, path string) {
	if b.state.Collapsed(path) {
		b.emit(KindStructural, Placeholder)
		return
	}

	switch v.Kind {
	case document.Object:
		if len(v.Members) == 0 {
			b.emit(KindStructural, "{}")
			return
		}
		b.emit(KindStructural, "{")
		for i, m := range v.Members {
			b.newline()
			b.pad(indent + IndentWidth)
			b.emit(KindKey, Quote(m.Key))
			b.emit(KindPlain, ": ")
			b.value(m.Value, indent+IndentWidth, ChildKey(path, m.Key))
			if i < len(v.Members)-1 {
				b.emit(KindStructural, ",")
			}
		}
		b.newline()
		b.pad(indent)
		b.emit(KindStructural, "}")

	case document.Array:
		if len(v.Items) == 0 {
			b.emit(KindStructural, "[]")
			return
		}
		b.emit(KindStructural, "[")
		for i, item := range v.Items {
			b.newline()
			b.pad(indent + IndentWidth)
			b.value(item, indent+IndentWidth, ChildIndex(path, i))
			if i < len(v.Items)-1 {
				b.emit(KindStructural, ",")
			}
		}
		b.newline()
		b.pad(indent)
		b.emit(KindStructural, "]")

	case document.String:
		b.emit(KindString, Quote(v.Str))
	case document.Boolean:
		if v.Bool {
			b.emit(KindBoolean, "true")
		} else {
			b.emit(KindBoolean, "false")
		}
	case document.Null:
		b.emit(KindNull, "null")
	default:
		b.emit(KindNumber, v.Literal)
	}
}

// Quote returns s as a JSON string literal. HTML characters are left as is
// and control characters are escaped, so the result never spans lines.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `"` + s + `"`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
