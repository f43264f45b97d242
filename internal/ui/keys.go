package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/jv/internal/navigator"
)

// KeyMap binds keys to navigator commands.
type KeyMap struct {
	Quit        key.Binding
	NextRecord  key.Binding
	PrevRecord  key.Binding
	Toggle      key.Binding
	LineDown    key.Binding
	LineUp      key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Top         key.Binding
	Bottom      key.Binding
}

// DefaultKeyMap returns the default bindings. Page scrolling has several
// bindings each so it works with and without paging keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextRecord: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next record"),
		),
		PrevRecord: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous record"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "collapse"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "line down"),
		),
		LineUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "line up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("f", "pgdown", "ctrl+f"),
			key.WithHelp("f", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("b", "pgup", "ctrl+b"),
			key.WithHelp("b", "page up"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "scroll right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// binding returns the binding that triggers cmd.
func (k *KeyMap) binding(cmd navigator.Command) *key.Binding {
	switch cmd {
	case navigator.CommandQuit:
		return &k.Quit
	case navigator.CommandNextRecord:
		return &k.NextRecord
	case navigator.CommandPrevRecord:
		return &k.PrevRecord
	case navigator.CommandToggle:
		return &k.Toggle
	case navigator.CommandLineDown:
		return &k.LineDown
	case navigator.CommandLineUp:
		return &k.LineUp
	case navigator.CommandPageDown:
		return &k.PageDown
	case navigator.CommandPageUp:
		return &k.PageUp
	case navigator.CommandScrollLeft:
		return &k.ScrollLeft
	case navigator.CommandScrollRight:
		return &k.ScrollRight
	case navigator.CommandTop:
		return &k.Top
	case navigator.CommandBottom:
		return &k.Bottom
	default:
		return nil
	}
}

// CommandFor returns the command bound to the pressed key, or CommandNone.
func (k KeyMap) CommandFor(msg fmt.Stringer) navigator.Command {
	for _, cmd := range navigator.Commands() {
		if b := k.binding(cmd); b != nil && key.Matches(msg, *b) {
			return cmd
		}
	}
	return navigator.CommandNone
}

// Rebind replaces the keys for the action named by a config file, e.g.
// "page_down": ["space", "f"]. The first key becomes the help label.
func (k *KeyMap) Rebind(action string, keys []string) error {
	cmd, ok := navigator.ParseCommand(action)
	if !ok || cmd == navigator.CommandNone {
		return fmt.Errorf("unknown key action %q", action)
	}
	cleaned := make([]string, 0, len(keys))
	for _, raw := range keys {
		if s := strings.TrimSpace(raw); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("key action %q has no keys", action)
	}
	b := k.binding(cmd)
	b.SetKeys(cleaned...)
	b.SetHelp(cleaned[0], b.Help().Desc)
	return nil
}

// Conflicts reports the first key bound to more than one command.
func (k KeyMap) Conflicts() error {
	owner := make(map[string]navigator.Command)
	for _, cmd := range navigator.Commands() {
		b := k.binding(cmd)
		if b == nil {
			continue
		}
		for _, name := range b.Keys() {
			if prev, ok := owner[name]; ok && prev != cmd {
				return fmt.Errorf("key %q is bound to both %s and %s", name, prev, cmd)
			}
			owner[name] = cmd
		}
	}
	return nil
}

// Hints summarizes the main bindings for the status line.
func (k KeyMap) Hints() string {
	groups := []struct {
		label    string
		bindings []key.Binding
	}{
		{"record", []key.Binding{k.PrevRecord, k.NextRecord}},
		{"line", []key.Binding{k.LineDown, k.LineUp}},
		{"page", []key.Binding{k.PageDown, k.PageUp}},
		{"scroll", []key.Binding{k.ScrollLeft, k.ScrollRight}},
		{"collapse", []key.Binding{k.Toggle}},
		{"quit", []key.Binding{k.Quit}},
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		var labels []string
		for _, b := range g.bindings {
			if b.Enabled() && b.Help().Key != "" {
				labels = append(labels, b.Help().Key)
			}
		}
		if len(labels) == 0 {
			continue
		}
		parts = append(parts, strings.Join(labels, "/")+": "+g.label)
	}
	return strings.Join(parts, ", ")
}
