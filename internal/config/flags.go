package config

import "flag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config     *string
	Debug      *bool
	Strategy   *string
	Radius     *float64
	Radial     *int
	Tolerance  *float64
	VScale     *float64
	Windowed   *bool
	Fullscreen *bool
	Width      *int
	Height     *int
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:     fs.String("config", "", "Path to config file"),
		Debug:      fs.Bool("debug", false, "Enable debug logging"),
		Strategy:   fs.String("strategy", "", "Near mesh strategy: ring or patch"),
		Radius:     fs.Float64("radius", 0, "Tube radius"),
		Radial:     fs.Int("radial", 0, "Vertices per ring"),
		Tolerance:  fs.Float64("tolerance", -1, "Curve simplification tolerance"),
		VScale:     fs.Float64("vscale", 0, "Vertical (Z) exaggeration"),
		Windowed:   fs.Bool("windowed", false, "Run the viewer in a window"),
		Fullscreen: fs.Bool("fullscreen", false, "Run the viewer fullscreen"),
		Width:      fs.Int("width", 0, "Window or image width"),
		Height:     fs.Int("height", 0, "Window or image height"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.Strategy != "" {
		cfg.Tube.Strategy = *f.Strategy
	}
	if *f.Radius > 0 {
		cfg.Tube.Radius = float32(*f.Radius)
	}
	if *f.Radial > 0 {
		cfg.Tube.RadialVertices = *f.Radial
	}
	if *f.Tolerance >= 0 {
		cfg.Tube.CurveTolerance = float32(*f.Tolerance)
	}
	if *f.VScale > 0 {
		cfg.Tube.VerticalScale = float32(*f.VScale)
	}
	if *f.Windowed {
		cfg.Viewer.Fullscreen = false
	}
	if *f.Fullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *f.Width > 0 {
		cfg.Viewer.Width = *f.Width
		cfg.Preview.Width = *f.Width
	}
	if *f.Height > 0 {
		cfg.Viewer.Height = *f.Height
		cfg.Preview.Height = *f.Height
	}
}
