package config

import "flag"

// Flags holds command-line overrides. Zero values keep the file setting.
type Flags struct {
	Config     string
	Model      string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	Samples    int
	Bounds     bool
	ShotDir    string
}

var cli Flags

// Register binds f to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Model, "model", "", "Path to the glTF/GLB model")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Samples, "samples", -1, "MSAA samples, 0 disables")
	fs.BoolVar(&f.Bounds, "bounds", false, "Outline the selected part")
	fs.StringVar(&f.ShotDir, "shots", "", "Screenshot directory")
}

// ParseFlags parses os.Args into the process-wide overrides used by Load.
func ParseFlags() {
	cli.Register(flag.CommandLine)
	flag.Parse()
}

func (f Flags) apply(cfg *Config) {
	if f.Model != "" {
		cfg.Model.Path = f.Model
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	switch {
	case f.Fullscreen:
		cfg.Window.Fullscreen = true
	case f.Windowed:
		cfg.Window.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Samples >= 0 {
		cfg.Render.Samples = f.Samples
	}
	if f.Bounds {
		cfg.Render.ShowBounds = true
	}
	if f.ShotDir != "" {
		cfg.Screenshot.Dir = f.ShotDir
	}
}
