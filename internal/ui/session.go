package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/navigator"
	"github.com/oakwood-commons/jv/internal/viewport"
)

// Sink paints frames.
type Sink interface {
	Render(frame navigator.Frame) error
}

// Source delivers user commands one at a time. It returns io.EOF when no
// more input will arrive.
type Source interface {
	NextEvent() (navigator.Command, error)
}

// RunSession paints the initial frame, then applies commands from src until
// quit, io.EOF, or ctx cancellation. A frame is painted after every command
// that changed the view.
func RunSession(ctx context.Context, ctrl *navigator.Controller, src Source, sink Sink) error {
	if err := sink.Render(ctrl.Frame()); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, err := src.NextEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if cmd == navigator.CommandQuit {
			return nil
		}
		if !ctrl.Apply(cmd) {
			continue
		}
		if err := sink.Render(ctrl.Frame()); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
	}
}

// ScriptSource replays a fixed list of commands.
type ScriptSource struct {
	commands []navigator.Command
	pos      int
}

// NewScriptSource returns a Source that yields cmds in order, then io.EOF.
func NewScriptSource(cmds ...navigator.Command) *ScriptSource {
	return &ScriptSource{commands: cmds}
}

// NextEvent implements Source.
func (s *ScriptSource) NextEvent() (navigator.Command, error) {
	if s.pos >= len(s.commands) {
		return navigator.CommandNone, io.EOF
	}
	cmd := s.commands[s.pos]
	s.pos++
	return cmd, nil
}

// FrameRecorder is a Sink that keeps every frame it is given.
type FrameRecorder struct {
	Frames []navigator.Frame
}

// Render implements Sink.
func (r *FrameRecorder) Render(frame navigator.Frame) error {
	r.Frames = append(r.Frames, frame)
	return nil
}

// Last returns the most recent frame.
func (r *FrameRecorder) Last() (navigator.Frame, bool) {
	if len(r.Frames) == 0 {
		return navigator.Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// WriterSink paints frames as text, clipped to Width x Height when set.
type WriterSink struct {
	W       io.Writer
	Palette formatter.Palette
	Width   int
	Height  int
}

// Render implements Sink.
func (s WriterSink) Render(frame navigator.Frame) error {
	_, err := io.WriteString(s.W, PaintFrame(frame, s.Palette, s.Width, s.Height)+"\n")
	return err
}

// PaintFrame clips a frame to the display and styles it.
func PaintFrame(frame navigator.Frame, palette formatter.Palette, width, height int) string {
	lines := viewport.Clip(frame.Lines, height, width)
	return strings.TrimRight(palette.RenderLines(lines), "\n")
}
