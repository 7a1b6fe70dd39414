package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/pkg/paint"
)

// FileName is the config file looked up in the working and config directories.
const FileName = "padforge.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	return LoadWith(cli)
}

// LoadWith is Load with explicit overrides.
func LoadWith(f Flags) (*Config, error) {
	cfg, err := fromFile(f.Config)
	if err != nil {
		return nil, err
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads defaults merged with the file at path, ignoring
// command-line flags. An empty path searches the standard locations.
func LoadFile(path string) (*Config, error) {
	cfg, err := fromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func fromFile(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "padforge")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "padforge")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "padforge")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "padforge")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate reports every setting that would make the application misbehave.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Model.Path == "" {
		errs = append(errs, errors.New("model.path is empty"))
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera distance range [%g, %g]", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%g, %g]", c.Camera.Near, c.Camera.Far))
	}
	if c.Shadow.Enabled && c.Shadow.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("shadow resolution %d", c.Shadow.Resolution))
	}
	if c.Render.Samples < 0 {
		errs = append(errs, fmt.Errorf("render.samples %d", c.Render.Samples))
	}
	switch c.Render.ToneMapping {
	case "aces", "none":
	default:
		errs = append(errs, fmt.Errorf("render.tone_mapping %q", c.Render.ToneMapping))
	}
	switch c.Screenshot.Format {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("screenshot.format %q", c.Screenshot.Format))
	}

	colors := map[string]string{
		"render.background":            c.Render.Background,
		"lighting.ambient_color":       c.Lighting.AmbientColor,
		"configurator.highlight_color": c.Configurator.HighlightColor,
	}
	for i, l := range c.Lighting.Lights {
		colors[fmt.Sprintf("lighting.lights[%d].color", i)] = l.Color
	}
	for name, m := range c.Model.MaterialOverrides {
		colors["model.material_overrides."+name+".color"] = m.Color
	}
	for key, v := range colors {
		if _, err := paint.ParseHex(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if _, err := c.Configurator.BuildPalette(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// BuildPalette parses the configured swatches.
func (c ConfiguratorConfig) BuildPalette() (*paint.Palette, error) {
	p, err := paint.NewPalette(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("configurator.palette: %w", err)
	}
	return p, nil
}

// BuildMaterialOverrides converts the configured materials by part name.
// A non-positive opacity means fully opaque.
func (c ModelConfig) BuildMaterialOverrides() (map[string]*scene.Material, error) {
	out := make(map[string]*scene.Material, len(c.MaterialOverrides))
	for name, mc := range c.MaterialOverrides {
		col, err := paint.ParseHex(mc.Color)
		if err != nil {
			return nil, fmt.Errorf("model.material_overrides.%s: %w", name, err)
		}
		mat := scene.NewMaterial(name, col)
		mat.Metalness = mc.Metalness
		mat.Roughness = mc.Roughness
		mat.Opacity = mc.Opacity
		if mat.Opacity <= 0 {
			mat.Opacity = 1
		}
		mat.Transparent = mc.Transparent
		mat.Transmission = mc.Transmission
		mat.Clearcoat = mc.Clearcoat
		mat.DoubleSided = mc.Transparent
		out[name] = mat
	}
	return out, nil
}
