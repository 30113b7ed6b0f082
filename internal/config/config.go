// Package config handles tube generation, viewer and preview settings.
package config

import (
	"fmt"

	"github.com/Faultbox/tubegen/pkg/tube"
)

// Config holds all settings.
type Config struct {
	Tube    TubeConfig    `yaml:"tube"`
	Flux    FluxConfig    `yaml:"flux"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// TubeConfig holds the geometry parameters passed to the tube builder.
type TubeConfig struct {
	Radius         float32    `yaml:"radius"`
	RadialVertices int        `yaml:"radial_vertices"`
	VerticalScale  float32    `yaml:"vertical_scale"`
	CurveTolerance float32    `yaml:"curve_tolerance"`
	Strategy       string     `yaml:"strategy"` // ring or patch
	LineWidth      float32    `yaml:"line_width"`
	Color          [4]float32 `yaml:"color"`
}

// FluxConfig holds the moving highlight animation settings.
type FluxConfig struct {
	Enabled bool       `yaml:"enabled"`
	Up      bool       `yaml:"up"`    // highlight travels towards the end of the tube
	Speed   float32    `yaml:"speed"` // timer ticks per second
	Step    int        `yaml:"step"`  // ticks per cycle
	Color   [4]float32 `yaml:"color"`
}

// ViewerConfig holds window settings for the interactive viewer.
type ViewerConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	LODDistance   float32 `yaml:"lod_distance"` // camera distance where the polyline takes over, 0 for auto
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// PreviewConfig holds offline preview image settings.
type PreviewConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Format      string `yaml:"format"` // png or webp
	Plane       string `yaml:"plane"`  // xy, xz or yz
	Padding     int    `yaml:"padding"`
	Supersample int    `yaml:"supersample"` // render scale before downsampling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tube: TubeConfig{
			Radius:         0.1,
			RadialVertices: 10,
			VerticalScale:  1,
			CurveTolerance: tube.DefaultCurveTolerance,
			Strategy:       "ring",
			LineWidth:      4,
			Color:          [4]float32{1, 0, 0, 1},
		},
		Flux: FluxConfig{
			Enabled: true,
			Up:      true,
			Speed:   20,
			Step:    8,
			Color:   [4]float32{1, 1, 1, 1},
		},
		Viewer: ViewerConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			LODDistance:   0,
			ScreenshotDir: "screenshots",
		},
		Preview: PreviewConfig{
			Width:       800,
			Height:      600,
			Format:      "png",
			Plane:       "xy",
			Padding:     20,
			Supersample: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting the tools cannot work with.
func (c *Config) Validate() error {
	if _, err := c.Tube.Options(); err != nil {
		return err
	}
	if c.Flux.Step <= 0 {
		return fmt.Errorf("flux.step must be positive, got %d", c.Flux.Step)
	}
	if c.Flux.Speed <= 0 {
		return fmt.Errorf("flux.speed must be positive, got %v", c.Flux.Speed)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.LODDistance < 0 {
		return fmt.Errorf("viewer.lod_distance must not be negative, got %v", c.Viewer.LODDistance)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	if 2*c.Preview.Padding >= c.Preview.Width || 2*c.Preview.Padding >= c.Preview.Height {
		return fmt.Errorf("preview padding %d leaves no room to draw", c.Preview.Padding)
	}
	if c.Preview.Supersample < 1 || c.Preview.Supersample > 4 {
		return fmt.Errorf("preview.supersample must be between 1 and 4, got %d", c.Preview.Supersample)
	}
	switch c.Preview.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("unknown preview format %q", c.Preview.Format)
	}
	switch c.Preview.Plane {
	case "xy", "xz", "yz":
	default:
		return fmt.Errorf("unknown preview plane %q", c.Preview.Plane)
	}
	return nil
}

// Options converts the tube settings into builder options.
func (t TubeConfig) Options() (tube.Options, error) {
	strategy, err := tube.ParseStrategy(t.Strategy)
	if err != nil {
		return tube.Options{}, err
	}
	if !(t.Radius > 0) {
		return tube.Options{}, fmt.Errorf("%w: tube.radius must be positive, got %v", tube.ErrInvalidInput, t.Radius)
	}
	if t.RadialVertices < tube.MinRadialVertices {
		return tube.Options{}, fmt.Errorf("%w: tube.radial_vertices must be at least %d, got %d",
			tube.ErrInvalidInput, tube.MinRadialVertices, t.RadialVertices)
	}
	if t.CurveTolerance < 0 {
		return tube.Options{}, fmt.Errorf("%w: tube.curve_tolerance must not be negative, got %v",
			tube.ErrInvalidInput, t.CurveTolerance)
	}
	return tube.Options{
		Strategy:       strategy,
		Radius:         t.Radius,
		RadialVertices: t.RadialVertices,
	}, nil
}
