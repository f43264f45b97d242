package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jv/internal/ui"
	"github.com/oakwood-commons/jv/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() (ui.Config, error)
}

var cfgLoader = configLoader{defaultConfig: ui.EmbeddedDefaultConfig}

func loadMergedConfig(cfgPath string) (ui.Config, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

// loadMergedConfig returns the embedded defaults with cfgPath merged on top.
// An empty cfgPath yields the defaults.
func (l configLoader) loadMergedConfig(cfgPath string) (ui.Config, error) {
	cfg, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	user, err := decodeConfig(cfgPath, data)
	if err != nil {
		return cfg, err
	}
	merged := cfg.Merge(user)
	if err := merged.Validate(); err != nil {
		return merged, fmt.Errorf("%s: %w", cfgPath, err)
	}
	return merged, nil
}

// decodeConfig picks the decoder from the file extension. Anything that is
// not .toml is treated as YAML. Unknown fields are rejected so typos surface.
func decodeConfig(path string, data []byte) (ui.Config, error) {
	var cfg ui.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return cfg, nil
}

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG
// path ($XDG_CONFIG_HOME/jv/config.yaml) or ~/.config/jv/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
