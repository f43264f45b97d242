package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/navigator"
)

// SnapshotConfig configures a headless render of the viewer.
type SnapshotConfig struct {
	Width     int
	Height    int
	Keys      KeyMap
	Palette   formatter.Palette
	StartKeys []string
}

// RenderSnapshot drives the same Model the terminal uses: it reports the
// size, replays StartKeys, and returns the screen as text. Replay stops at
// a quit key.
func RenderSnapshot(ctrl *navigator.Controller, cfg SnapshotConfig) (string, error) {
	msgs, err := StartupKeyMsgs(cfg.StartKeys)
	if err != nil {
		return "", err
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = navigator.DefaultViewportHeight
	}

	m := NewModel(ctrl, cfg.Keys, cfg.Palette)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	for _, msg := range msgs {
		m.Update(msg)
		if m.Quitting() {
			break
		}
	}
	// A quit key would blank the screen; the snapshot keeps the last frame.
	return PaintFrame(m.Frame(), cfg.Palette, width, height), nil
}
