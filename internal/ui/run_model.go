package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/navigator"
)

// RunModel runs the interactive viewer until the user quits. Terminal setup
// and teardown belong to Bubble Tea; opts can redirect its input and output.
func RunModel(ctrl *navigator.Controller, keys KeyMap, palette formatter.Palette, opts ...tea.ProgramOption) error {
	m := NewModel(ctrl, keys, palette)
	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
