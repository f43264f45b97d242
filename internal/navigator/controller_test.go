package navigator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/pkg/document"
	"github.com/oakwood-commons/jv/pkg/loader"
	"github.com/oakwood-commons/jv/pkg/logger"
)

func mustDoc(t *testing.T, input string) document.Document {
	t.Helper()
	doc, err := loader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return doc
}

func frameText(f Frame) []string {
	out := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		out[i] = l.Text()
	}
	return out
}

// tallDoc has one record that renders to 21 lines plus the status line.
func tallDoc(t *testing.T) document.Document {
	t.Helper()
	items := make([]string, 19)
	for i := range items {
		items[i] = `"item-` + strings.Repeat("x", i) + `"`
	}
	return mustDoc(t, "["+strings.Join(items, ",")+"]")
}

func TestFrame_InitialView(t *testing.T) {
	c := New(mustDoc(t, `{"a":1,"b":[1,2]}`), WithHints("q: quit"))
	f := c.Frame()
	assert.False(t, f.Message)
	assert.Equal(t, []string{
		"{",
		`  "a": 1,`,
		`  "b": [`,
		"    1,",
		"    2",
		"  ]",
		"}",
		"[1/1] (q: quit)",
	}, frameText(f))
	assert.Equal(t, 8, f.ContentLines)
	assert.Equal(t, formatter.KindStatus, f.Lines[7][0].Kind)
}

func TestNextPrevBounds(t *testing.T) {
	c := New(mustDoc(t, "{\"id\":1}\n{\"id\":2}\n"))
	assert.True(t, strings.HasPrefix(frameText(c.Frame())[3], "[1/2]"))

	assert.False(t, c.Prev(), "prev on first record is a no-op")
	assert.Equal(t, 0, c.Index())

	assert.True(t, c.Next())
	assert.Equal(t, "[2/2]", frameText(c.Frame())[3])

	assert.False(t, c.Next(), "next on last record is a no-op")
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, "[2/2]", c.Status())
}

func TestRecordChangeResetsOffsets(t *testing.T) {
	doc := mustDoc(t, strings.Repeat(`{"a":"`+strings.Repeat("z", 40)+`","b":[1,2,3,4,5,6]}`+"\n", 3))
	c := New(doc, WithViewportHeight(3))

	require.True(t, c.LineDown())
	require.True(t, c.ScrollRight())
	v, h := c.Offsets()
	require.Equal(t, 1, v)
	require.Equal(t, 4, h)

	require.True(t, c.Next())
	v, h = c.Offsets()
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, h)

	c.PageDown()
	c.ScrollRight()
	require.True(t, c.Prev())
	v, h = c.Offsets()
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, h)
}

func TestToggleRoot(t *testing.T) {
	c := New(mustDoc(t, `{"x":{"y":1}}`))
	original := frameText(c.Frame())

	require.True(t, c.Apply(CommandToggle))
	assert.Equal(t, []string{"{ ... }", "[1/1]"}, frameText(c.Frame()))
	assert.True(t, c.Collapsed().Collapsed("0"))

	require.True(t, c.Apply(CommandToggle))
	assert.Equal(t, original, frameText(c.Frame()))
	assert.Equal(t, 0, c.Collapsed().Len())
}

func TestToggleIsPerRecordIndexAndSurvivesNavigation(t *testing.T) {
	c := New(mustDoc(t, "{\"a\":1}\n{\"b\":2}\n"))
	c.Toggle()
	c.Next()
	assert.Len(t, c.Frame().Lines, 4, "second record stays expanded")
	c.Prev()
	assert.Equal(t, []string{"{ ... }", "[1/2]"}, frameText(c.Frame()))
}

func TestTogglePathNested(t *testing.T) {
	c := New(mustDoc(t, `{"x":{"y":1},"z":2}`))
	c.TogglePath("0.x")
	assert.Equal(t, []string{"{", `  "x": { ... },`, `  "z": 2`, "}", "[1/1]"}, frameText(c.Frame()))
	c.TogglePath("0.x")
	assert.Len(t, c.Frame().Lines, 7)
}

func TestEmptyDocument(t *testing.T) {
	c := New(document.Document{})
	want := []string{NoDataMessage}
	f := c.Frame()
	assert.True(t, f.Message)
	assert.Equal(t, want, frameText(f))

	for _, cmd := range Commands() {
		assert.False(t, c.Apply(cmd), "command %s", cmd)
		assert.Equal(t, want, frameText(c.Frame()), "command %s", cmd)
	}
	assert.Equal(t, 0, c.Collapsed().Len())
}

// Vertical scrolling is bounded by max(0, total-height) for line and page
// steps alike. This deliberately corrects older behavior where line steps
// allowed roughly twice the content length and page steps the full length.
func TestVerticalClampIsUniform(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(5))
	total := c.Frame().ContentLines
	require.Equal(t, 22, total)
	limit := total - 5

	for i := 0; i < 3*total; i++ {
		c.LineDown()
	}
	v, _ := c.Offsets()
	assert.Equal(t, limit, v)
	assert.False(t, c.LineDown())

	c.Top()
	for i := 0; i < 10; i++ {
		c.PageDown()
	}
	v, _ = c.Offsets()
	assert.Equal(t, limit, v)

	f := c.Frame()
	assert.Len(t, f.Lines, 5)
	assert.Equal(t, "[1/1]", f.Lines[4].Text())
}

func TestVerticalNeverBelowZero(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(5))
	assert.False(t, c.LineUp())
	assert.False(t, c.PageUp())

	c.PageDown()
	c.LineDown()
	v, _ := c.Offsets()
	assert.Equal(t, 6, v)

	assert.True(t, c.PageUp())
	v, _ = c.Offsets()
	assert.Equal(t, 1, v)
	assert.True(t, c.PageUp())
	v, _ = c.Offsets()
	assert.Equal(t, 0, v)
}

func TestShortRecordDoesNotScroll(t *testing.T) {
	c := New(mustDoc(t, `{"a":1}`), WithViewportHeight(24))
	assert.False(t, c.LineDown())
	assert.False(t, c.PageDown())
	assert.False(t, c.Bottom())
}

func TestTopBottom(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(10))
	assert.True(t, c.Apply(CommandBottom))
	v, _ := c.Offsets()
	assert.Equal(t, 12, v)
	assert.True(t, c.Apply(CommandTop))
	v, _ = c.Offsets()
	assert.Equal(t, 0, v)
}

func TestPageSizeOverridesViewportHeight(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(10), WithPageSize(3))
	assert.Equal(t, 3, c.PageStep())
	assert.True(t, c.PageDown())
	v, _ := c.Offsets()
	assert.Equal(t, 3, v)
	assert.True(t, c.PageUp())
	v, _ = c.Offsets()
	assert.Equal(t, 0, v)

	c = New(tallDoc(t), WithViewportHeight(10), WithPageSize(0))
	assert.Equal(t, 10, c.PageStep())
}

func TestSetViewportHeightReclamps(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(2))
	c.Bottom()
	v, _ := c.Offsets()
	require.Equal(t, 20, v)

	c.SetViewportHeight(20)
	v, _ = c.Offsets()
	assert.Equal(t, 2, v)
	assert.Equal(t, 20, c.ViewportHeight())

	c.SetViewportHeight(0)
	assert.Equal(t, 1, c.ViewportHeight())
}

func TestHorizontalScroll(t *testing.T) {
	c := New(mustDoc(t, `{"key":"value"}`))
	assert.False(t, c.ScrollLeft(), "already at column 0")

	c.Apply(CommandScrollRight)
	c.Apply(CommandScrollRight)
	_, h := c.Offsets()
	assert.Equal(t, 8, h)
	assert.Equal(t, []string{"", ` "value"`, "", ""}, frameText(c.Frame()))

	for i := 0; i < 10; i++ {
		c.ScrollRight()
	}
	f := c.Frame()
	assert.Len(t, f.Lines, 4)
	for _, l := range f.Lines {
		assert.Empty(t, l.Text())
	}

	for i := 0; i < 20; i++ {
		c.Apply(CommandScrollLeft)
	}
	_, h = c.Offsets()
	assert.Equal(t, 0, h)
}

func TestToggleKeepsOffsets(t *testing.T) {
	c := New(tallDoc(t), WithViewportHeight(5))
	c.PageDown()
	c.ScrollRight()
	c.Toggle()
	v, h := c.Offsets()
	assert.Equal(t, 5, v)
	assert.Equal(t, 4, h)
	assert.Empty(t, c.Frame().Lines, "offset past the collapsed content shows nothing")

	c.LineUp()
	v, _ = c.Offsets()
	assert.Equal(t, 0, v)
}

func TestRenderPanicBecomesMessage(t *testing.T) {
	calls := 0
	boom := func(v document.Value, path string, state formatter.CollapseState) []formatter.Line {
		calls++
		if path == "1" {
			panic("bad record")
		}
		return formatter.Render(v, path, state)
	}
	var buf bytes.Buffer
	log, _ := logger.New(logger.Options{Output: &buf})
	c := New(mustDoc(t, "{\"a\":1}\n{\"b\":2}\n{\"c\":3}\n"), WithRenderer(boom), WithLogger(log))

	require.True(t, c.Next())
	f := c.Frame()
	assert.True(t, f.Message)
	require.Len(t, f.Lines, 1)
	assert.Contains(t, f.Lines[0].Text(), "error: ")
	assert.Contains(t, f.Lines[0].Text(), "bad record")
	assert.Contains(t, buf.String(), "render failed")

	// The session stays navigable.
	require.True(t, c.Next())
	assert.False(t, c.Frame().Message)
	assert.Equal(t, 2, c.Index())
	assert.Positive(t, calls)
}

func TestApplyIgnoresQuitAndNone(t *testing.T) {
	c := New(mustDoc(t, `{"a":1}`))
	assert.False(t, c.Apply(CommandQuit))
	assert.False(t, c.Apply(CommandNone))
}
