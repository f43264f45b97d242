package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oakwood-commons/jv/internal/formatter"
)

// Config is the user-facing configuration file. Both YAML and TOML files
// decode into it.
type Config struct {
	Theme     string              `yaml:"theme" toml:"theme"`
	Colors    map[string]string   `yaml:"colors" toml:"colors"`
	Keys      map[string][]string `yaml:"keys" toml:"keys"`
	PageSize  int                 `yaml:"page_size" toml:"page_size"`
	ShowHints *bool               `yaml:"show_hints" toml:"show_hints"`
}

// Merge returns c with every field set in override applied on top.
func (c Config) Merge(override Config) Config {
	out := Config{
		Theme:     c.Theme,
		Colors:    make(map[string]string, len(c.Colors)+len(override.Colors)),
		Keys:      make(map[string][]string, len(c.Keys)+len(override.Keys)),
		PageSize:  c.PageSize,
		ShowHints: c.ShowHints,
	}
	for k, v := range c.Colors {
		out.Colors[k] = v
	}
	for k, v := range c.Keys {
		out.Keys[k] = append([]string(nil), v...)
	}
	if strings.TrimSpace(override.Theme) != "" {
		out.Theme = override.Theme
	}
	for k, v := range override.Colors {
		out.Colors[k] = v
	}
	for k, v := range override.Keys {
		out.Keys[k] = append([]string(nil), v...)
	}
	if override.PageSize != 0 {
		out.PageSize = override.PageSize
	}
	if override.ShowHints != nil {
		v := *override.ShowHints
		out.ShowHints = &v
	}
	return out
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	}
	for name := range c.Colors {
		if kind, ok := formatter.ParseKind(name); !ok || kind == formatter.KindPlain {
			return fmt.Errorf("unknown color kind %q", name)
		}
	}
	_, err := c.KeyMap()
	return err
}

// HintsEnabled reports whether the status line carries key hints.
func (c Config) HintsEnabled() bool {
	return c.ShowHints == nil || *c.ShowHints
}

// KeyMap returns the default key map with the configured overrides applied.
// Actions are applied in sorted order so errors are deterministic. A key left
// on two commands, including one kept from the defaults, is an error.
func (c Config) KeyMap() (KeyMap, error) {
	km := DefaultKeyMap()
	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		if err := km.Rebind(action, c.Keys[action]); err != nil {
			return KeyMap{}, err
		}
	}
	if err := km.Conflicts(); err != nil {
		return KeyMap{}, err
	}
	return km, nil
}
