// Package navigator owns the viewer's navigation state: which record is
// shown, which paths are collapsed, and how far the view is scrolled.
package navigator

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jv/internal/collapse"
	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/viewport"
	"github.com/oakwood-commons/jv/pkg/document"
	"github.com/oakwood-commons/jv/pkg/logger"
)

const (
	// NoDataMessage is shown instead of a record when the document is empty.
	NoDataMessage = "no JSON data found"
	// DefaultViewportHeight is used until the display reports its size.
	DefaultViewportHeight = 24
)

// RenderFunc lays out one record. It matches formatter.Render.
type RenderFunc func(v document.Value, path string, state formatter.CollapseState) []formatter.Line

// Frame is the windowed content for one screen update.
type Frame struct {
	Lines []formatter.Line
	// Message is set when Lines hold a fixed message instead of a record.
	Message bool
	// Index is the 0-based record index, Total the record count.
	Index int
	Total int
	// Vertical and Horizontal are the offsets the frame was windowed with.
	Vertical   int
	Horizontal int
	// ContentLines is the unwindowed line count including the status line.
	ContentLines int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for V(1) navigation traces.
func WithLogger(log logr.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithHints sets the key summary appended to the status line.
func WithHints(hints string) Option {
	return func(c *Controller) { c.hints = hints }
}

// WithViewportHeight sets the initial number of visible rows.
func WithViewportHeight(h int) Option {
	return func(c *Controller) { c.SetViewportHeight(h) }
}

// WithPageSize fixes the page step. Zero or less pages by viewport height.
func WithPageSize(n int) Option {
	return func(c *Controller) { c.pageSize = n }
}

// WithCollapseState shares an existing collapse set with the controller.
func WithCollapseState(s *collapse.Set) Option {
	return func(c *Controller) {
		if s != nil {
			c.collapsed = s
		}
	}
}

// WithRenderer replaces the tree formatter.
func WithRenderer(fn RenderFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.render = fn
		}
	}
}

// Controller is the navigation state machine. It is driven by one event at
// a time and is not safe for concurrent use.
type Controller struct {
	doc        document.Document
	collapsed  *collapse.Set
	render     RenderFunc
	log        logr.Logger
	hints      string
	index      int
	vertical   int
	horizontal int
	height     int
	pageSize   int
}

// New returns a controller positioned on the first record.
func New(doc document.Document, opts ...Option) *Controller {
	c := &Controller{
		doc:       doc,
		collapsed: collapse.New(),
		render:    formatter.Render,
		log:       *logger.GetNoopLogger(),
		height:    DefaultViewportHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the current record index.
func (c *Controller) Index() int { return c.index }

// Len returns the number of records.
func (c *Controller) Len() int { return c.doc.Len() }

// Offsets returns the vertical line offset and horizontal character offset.
func (c *Controller) Offsets() (vertical, horizontal int) {
	return c.vertical, c.horizontal
}

// ViewportHeight returns the number of visible rows used for paging.
func (c *Controller) ViewportHeight() int { return c.height }

// Collapsed exposes the collapse set.
func (c *Controller) Collapsed() *collapse.Set { return c.collapsed }

// SetViewportHeight records the number of visible rows and re-clamps the
// vertical offset to the new bound.
func (c *Controller) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.height = h
	if c.doc.Empty() {
		return
	}
	c.vertical = viewport.Clamp(c.vertical, c.maxVertical())
}

// Apply dispatches cmd and reports whether the view changed. CommandQuit
// and CommandNone change nothing; quitting is up to the caller.
func (c *Controller) Apply(cmd Command) bool {
	switch cmd {
	case CommandNextRecord:
		return c.Next()
	case CommandPrevRecord:
		return c.Prev()
	case CommandToggle:
		return c.Toggle()
	case CommandLineDown:
		return c.LineDown()
	case CommandLineUp:
		return c.LineUp()
	case CommandPageDown:
		return c.PageDown()
	case CommandPageUp:
		return c.PageUp()
	case CommandScrollLeft:
		return c.ScrollLeft()
	case CommandScrollRight:
		return c.ScrollRight()
	case CommandTop:
		return c.Top()
	case CommandBottom:
		return c.Bottom()
	default:
		return false
	}
}

// Next moves to the following record. It is a no-op on the last record.
func (c *Controller) Next() bool {
	if c.index >= c.doc.Len()-1 {
		return false
	}
	c.moveTo(c.index + 1)
	return true
}

// Prev moves to the preceding record. It is a no-op on the first record.
func (c *Controller) Prev() bool {
	if c.index <= 0 {
		return false
	}
	c.moveTo(c.index - 1)
	return true
}

func (c *Controller) moveTo(i int) {
	c.index = i
	c.vertical = 0
	c.horizontal = 0
	c.log.V(1).Info("record selected", logger.RecordKey, i)
}

// Toggle collapses or expands the current record's root.
func (c *Controller) Toggle() bool {
	if c.doc.Empty() {
		return false
	}
	return c.TogglePath(formatter.RootPath(c.index))
}

// TogglePath collapses or expands the node at path. Any path string is
// accepted; paths that match no node simply never render as collapsed.
func (c *Controller) TogglePath(path string) bool {
	collapsed := c.collapsed.Toggle(path)
	if c.log.V(1).Enabled() {
		kind := "unresolved"
		if v, err := Resolve(c.doc, path); err == nil {
			kind = v.Kind.String()
		}
		c.log.V(1).Info("collapse toggled", logger.PathKey, path, "collapsed", collapsed, "kind", kind)
	}
	return true
}

// LineDown scrolls one line toward the end of the record.
func (c *Controller) LineDown() bool {
	return c.setVertical(c.vertical + 1)
}

// LineUp scrolls one line toward the start of the record.
func (c *Controller) LineUp() bool {
	return c.setVertical(c.vertical - 1)
}

// PageDown scrolls one page down.
func (c *Controller) PageDown() bool {
	return c.setVertical(c.vertical + c.PageStep())
}

// PageUp scrolls one page up.
func (c *Controller) PageUp() bool {
	return c.setVertical(c.vertical - c.PageStep())
}

// PageStep is the configured page size, or the viewport height if unset.
func (c *Controller) PageStep() int {
	if c.pageSize > 0 {
		return c.pageSize
	}
	return c.height
}

// Top scrolls to the first line.
func (c *Controller) Top() bool {
	return c.setVertical(0)
}

// Bottom scrolls so the last line sits at the bottom of the viewport.
func (c *Controller) Bottom() bool {
	return c.setVertical(c.maxVertical())
}

// ScrollLeft moves the view one step toward column 0.
func (c *Controller) ScrollLeft() bool {
	if c.doc.Empty() || c.horizontal == 0 {
		return false
	}
	c.horizontal = viewport.Clamp(c.horizontal-viewport.HorizontalStep, c.horizontal)
	return true
}

// ScrollRight moves the view one step right. There is no right bound; lines
// shorter than the offset render empty.
func (c *Controller) ScrollRight() bool {
	if c.doc.Empty() {
		return false
	}
	c.horizontal += viewport.HorizontalStep
	return true
}

// setVertical applies the shared vertical bound max(0, total-height) to
// every scroll operation.
func (c *Controller) setVertical(offset int) bool {
	if c.doc.Empty() {
		return false
	}
	next := viewport.Clamp(offset, c.maxVertical())
	if next == c.vertical {
		return false
	}
	c.vertical = next
	return true
}

func (c *Controller) maxVertical() int {
	lines, err := c.content()
	if err != nil {
		return 0
	}
	return viewport.MaxVertical(len(lines), c.height)
}

// Status returns the record position, e.g. "[2/5]".
func (c *Controller) Status() string {
	return fmt.Sprintf("[%d/%d]", c.index+1, c.doc.Len())
}

func (c *Controller) statusLine() formatter.Line {
	text := c.Status()
	if c.hints != "" {
		text += " (" + c.hints + ")"
	}
	return formatter.NewLine(formatter.KindStatus, text)
}

// content renders the current record followed by the status line. A panic
// in the renderer is returned as an error.
func (c *Controller) content() (lines []formatter.Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("render record %d: %v", c.index+1, r)
		}
	}()
	record, ok := c.doc.Record(c.index)
	if !ok {
		return nil, fmt.Errorf("record %d out of range", c.index+1)
	}
	lines = c.render(record, formatter.RootPath(c.index), c.collapsed)
	return append(lines, c.statusLine()), nil
}

// Frame re-renders the current record and windows it by the current offsets.
func (c *Controller) Frame() (frame Frame) {
	frame = Frame{
		Index:      c.index,
		Total:      c.doc.Len(),
		Vertical:   c.vertical,
		Horizontal: c.horizontal,
	}
	if c.doc.Empty() {
		frame.Message = true
		frame.Lines = []formatter.Line{formatter.NewLine(formatter.KindMessage, NoDataMessage)}
		return frame
	}

	lines, err := c.content()
	if err == nil {
		err = func() (werr error) {
			defer func() {
				if r := recover(); r != nil {
					werr = fmt.Errorf("window record %d: %v", c.index+1, r)
				}
			}()
			frame.ContentLines = len(lines)
			frame.Lines = viewport.Window(lines, c.vertical, c.horizontal)
			return nil
		}()
	}
	if err != nil {
		c.log.Error(err, "render failed", logger.RecordKey, c.index)
		frame.Message = true
		frame.ContentLines = 0
		frame.Lines = []formatter.Line{formatter.NewLine(formatter.KindMessage, "error: "+err.Error())}
	}
	return frame
}
