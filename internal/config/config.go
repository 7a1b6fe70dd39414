// Package config handles padforge configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/padforge/pkg/paint"
)

// Config holds all application settings.
type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Model        ModelConfig        `yaml:"model"`
	Camera       CameraConfig       `yaml:"camera"`
	Lighting     LightingConfig     `yaml:"lighting"`
	Shadow       ShadowConfig       `yaml:"shadow"`
	Render       RenderConfig       `yaml:"render"`
	Configurator ConfiguratorConfig `yaml:"configurator"`
	Screenshot   ScreenshotConfig   `yaml:"screenshot"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ModelConfig describes the model file and how it is placed in the scene.
type ModelConfig struct {
	Path       string   `yaml:"path"`
	SearchDirs []string `yaml:"search_dirs"` // tried in order for relative paths

	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler XYZ, radians
	Scale    float32    `yaml:"scale"`

	// MaterialOverrides replaces the loaded material of a part by name.
	MaterialOverrides map[string]MaterialConfig `yaml:"material_overrides"`
}

// MaterialConfig is a material described in configuration.
type MaterialConfig struct {
	Color        string  `yaml:"color"`
	Metalness    float32 `yaml:"metalness"`
	Roughness    float32 `yaml:"roughness"`
	Opacity      float32 `yaml:"opacity"`
	Transparent  bool    `yaml:"transparent"`
	Transmission float32 `yaml:"transmission"`
	Clearcoat    float32 `yaml:"clearcoat"`
}

// CameraConfig holds the perspective camera and orbit control settings.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	Damping     float32    `yaml:"damping"` // 0 disables damping
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	RotateSpeed float32    `yaml:"rotate_speed"`
	ZoomSpeed   float32    `yaml:"zoom_speed"`
	AutoFit     bool       `yaml:"auto_fit"` // frame the loaded model instead of Position
}

// LightConfig is one directional light. Position is where the light shines
// from; it always points at the origin.
type LightConfig struct {
	Name       string     `yaml:"name"`
	Color      string     `yaml:"color"`
	Intensity  float32    `yaml:"intensity"`
	Position   [3]float32 `yaml:"position"`
	CastShadow bool       `yaml:"cast_shadow"`
}

// LightingConfig holds the light rig.
type LightingConfig struct {
	AmbientColor     string        `yaml:"ambient_color"`
	AmbientIntensity float32       `yaml:"ambient_intensity"`
	Lights           []LightConfig `yaml:"lights"`
}

// ShadowConfig holds the shadow map and the ground shadow receiver settings.
type ShadowConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Resolution    int     `yaml:"resolution"`
	Extent        float32 `yaml:"extent"` // half-size of the light's ortho box
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
	Radius        float32 `yaml:"radius"` // PCF filter radius in texels
	Bias          float32 `yaml:"bias"`
	GroundSize    float32 `yaml:"ground_size"`
	GroundOpacity float32 `yaml:"ground_opacity"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Background  string  `yaml:"background"`
	ToneMapping string  `yaml:"tone_mapping"` // "aces" or "none"
	Exposure    float32 `yaml:"exposure"`
	PanelWidth  float32 `yaml:"panel_width"`
	Samples     int     `yaml:"samples"`     // MSAA samples, 0 or 1 disables
	ShowBounds  bool    `yaml:"show_bounds"` // outline the selected part
}

// ConfiguratorConfig holds the part/color controller settings.
type ConfiguratorConfig struct {
	Palette        []paint.Swatch    `yaml:"palette"`
	ExcludedParts  []string          `yaml:"excluded_parts"`
	DisplayNames   map[string]string `yaml:"display_names"`
	HighlightDelay time.Duration     `yaml:"highlight_delay"`
	HighlightColor string            `yaml:"highlight_color"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // "png" or "webp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock controller model setup.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "padforge",
			Width:  1280,
			Height: 800,
			VSync:  true,
		},
		Model: ModelConfig{
			Path:       "models/controller.glb",
			SearchDirs: []string{".", "assets"},
			Position:   [3]float32{0, 1.5, 0},
			Rotation:   [3]float32{0.5, 0, 0},
			Scale:      1,
			MaterialOverrides: map[string]MaterialConfig{
				"button_outer": {
					Color:        "#ffffff",
					Metalness:    0,
					Roughness:    0,
					Opacity:      1,
					Transparent:  true,
					Transmission: 1,
					Clearcoat:    1,
				},
			},
		},
		Camera: CameraConfig{
			FOV:         75,
			Near:        0.1,
			Far:         1000,
			Position:    [3]float32{0, 2, 5},
			Target:      [3]float32{0, 1.5, 0},
			Damping:     0.02,
			MinDistance: 2,
			MaxDistance: 5,
			RotateSpeed: 0.005,
			ZoomSpeed:   0.1,
		},
		Lighting: LightingConfig{
			AmbientColor:     "#ffffff",
			AmbientIntensity: 0.6,
			Lights: []LightConfig{
				{Name: "main", Color: "#ffffff", Intensity: 1, Position: [3]float32{0, 8, 5}, CastShadow: true},
				{Name: "fill", Color: "#ffffff", Intensity: 0.4, Position: [3]float32{-5, 5, -5}},
				{Name: "rim", Color: "#ffffff", Intensity: 0.5, Position: [3]float32{0, 8, -10}},
				{Name: "under", Color: "#ffffff", Intensity: 0.2, Position: [3]float32{0, -5, 0}},
			},
		},
		Shadow: ShadowConfig{
			Enabled:       true,
			Resolution:    4096,
			Extent:        10,
			Near:          0.5,
			Far:           50,
			Radius:        2,
			Bias:          0.0015,
			GroundSize:    200,
			GroundOpacity: 0.3,
		},
		Render: RenderConfig{
			Background:  "#ffffff",
			ToneMapping: "aces",
			Exposure:    1.2,
			PanelWidth:  420,
			Samples:     4,
		},
		Configurator: ConfiguratorConfig{
			Palette: []paint.Swatch{
				{Name: "Charcoal", Hex: "#4e4e4e"},
				{Name: "Sand", Hex: "#C0AF9C"},
				{Name: "Teal", Hex: "#089DA4"},
				{Name: "Silver", Hex: "#C3C2C7"},
				{Name: "Coral", Hex: "#E86E61"},
				{Name: "Berry", Hex: "#A8416B"},
				{Name: "Lavender", Hex: "#988FC6"},
			},
			ExcludedParts: []string{"decal_bottom", "decal_rear"},
			DisplayNames: map[string]string{
				"button_inner":     "Button Inner",
				"button_outer":     "Button Outer Glass",
				"button_text":      "Button Text",
				"d-pad":            "D-Pad",
				"decal_bottom":     "Bottom Decal",
				"decal_rear":       "Rear Decal",
				"joystick_grip":    "Joystick Grip",
				"joystick_inner":   "Joystick Shaft",
				"mode_buttons_1":   "Mode Button Color 1",
				"mode_buttons_2":   "Mode Button Color 2",
				"shell_bottom":     "Shell Bottom",
				"shell_bottom_1":   "Screws",
				"shell_bottom_2":   "Gulikit Logo",
				"shell_bottom_3":   "Shell Top",
				"shoulder_buttons": "Shoulder Buttons",
			},
			HighlightDelay: 500 * time.Millisecond,
			HighlightColor: "#ffffff",
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "padforge",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
