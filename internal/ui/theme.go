package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jv/internal/formatter"
)

// Theme assigns a foreground color to each span kind.
type Theme struct {
	Name   string
	Colors map[formatter.Kind]color.Color
}

// DefaultThemeName is used when no theme is configured.
const DefaultThemeName = "dark"

// themePresets returns fresh copies so callers can customize them freely.
func themePresets() map[string]Theme {
	return map[string]Theme{
		"dark": {
			Name: "dark",
			Colors: map[formatter.Kind]color.Color{
				formatter.KindKey:        lipgloss.Color("6"), // cyan
				formatter.KindString:     lipgloss.Color("2"), // green
				formatter.KindNumber:     lipgloss.Color("3"), // yellow
				formatter.KindBoolean:    lipgloss.Color("5"), // magenta
				formatter.KindNull:       lipgloss.Color("1"), // red
				formatter.KindStructural: lipgloss.Color("7"), // white
				formatter.KindStatus:     lipgloss.Color("244"),
				formatter.KindMessage:    lipgloss.Color("203"),
			},
		},
		"light": {
			Name: "light",
			Colors: map[formatter.Kind]color.Color{
				formatter.KindKey:        lipgloss.Color("25"),
				formatter.KindString:     lipgloss.Color("28"),
				formatter.KindNumber:     lipgloss.Color("130"),
				formatter.KindBoolean:    lipgloss.Color("90"),
				formatter.KindNull:       lipgloss.Color("160"),
				formatter.KindStructural: lipgloss.Color("238"),
				formatter.KindStatus:     lipgloss.Color("242"),
				formatter.KindMessage:    lipgloss.Color("160"),
			},
		},
		"mono": {
			Name:   "mono",
			Colors: map[formatter.Kind]color.Color{},
		},
	}
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	presets := themePresets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadTheme returns the named preset with per-kind overrides applied.
// Override keys are kind names ("key", "string", ...) and values are
// lipgloss colors ("6", "203", "#ff8800").
func LoadTheme(name string, overrides map[string]string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultThemeName
	}
	theme, ok := themePresets()[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	for kindName, value := range overrides {
		kind, ok := formatter.ParseKind(kindName)
		if !ok || kind == formatter.KindPlain {
			return Theme{}, fmt.Errorf("unknown color kind %q", kindName)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			delete(theme.Colors, kind)
			continue
		}
		theme.Colors[kind] = lipgloss.Color(value)
	}
	return theme, nil
}

// Palette builds the immutable palette for this theme. noColor yields a
// palette that emits no escape sequences.
func (t Theme) Palette(noColor bool) formatter.Palette {
	if noColor {
		return formatter.PlainPalette()
	}
	styles := make(map[formatter.Kind]lipgloss.Style, len(t.Colors)+1)
	for kind, c := range t.Colors {
		styles[kind] = lipgloss.NewStyle().Foreground(c)
	}
	if s, ok := styles[formatter.KindMessage]; ok {
		styles[formatter.KindMessage] = s.Bold(true)
	}
	return formatter.NewStyledPalette(styles)
}
