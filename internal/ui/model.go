package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/navigator"
)

// Model adapts a navigator.Controller to Bubble Tea. It is also a Sink: the
// last frame it was given is what View paints.
type Model struct {
	ctrl     *navigator.Controller
	keys     KeyMap
	palette  formatter.Palette
	frame    navigator.Frame
	width    int
	height   int
	quitting bool
}

// NewModel returns a model showing ctrl's current frame.
func NewModel(ctrl *navigator.Controller, keys KeyMap, palette formatter.Palette) *Model {
	m := &Model{ctrl: ctrl, keys: keys, palette: palette}
	_ = m.Render(ctrl.Frame())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.SetViewportHeight(msg.Height)
		_ = m.Render(m.ctrl.Frame())
	case tea.KeyPressMsg:
		cmd := m.keys.CommandFor(msg)
		if cmd == navigator.CommandQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.ctrl.Apply(cmd) {
			_ = m.Render(m.ctrl.Frame())
		}
	}
	return m, nil
}

// Render implements Sink.
func (m *Model) Render(frame navigator.Frame) error {
	m.frame = frame
	return nil
}

// Frame returns the frame currently on screen.
func (m *Model) Frame() navigator.Frame {
	return m.frame
}

// Quitting reports whether a quit key was pressed.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Content returns the painted text without the tea.View wrapper.
func (m *Model) Content() string {
	if m.quitting {
		return ""
	}
	return PaintFrame(m.frame, m.palette, m.width, m.height)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Content())
	v.AltScreen = true
	return v
}
