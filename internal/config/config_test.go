package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tubegen/pkg/tube"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Tube defaults
	if cfg.Tube.Radius != 0.1 {
		t.Errorf("expected radius 0.1, got %f", cfg.Tube.Radius)
	}
	if cfg.Tube.RadialVertices != 10 {
		t.Errorf("expected 10 radial vertices, got %d", cfg.Tube.RadialVertices)
	}
	if cfg.Tube.CurveTolerance != tube.DefaultCurveTolerance {
		t.Errorf("expected tolerance %f, got %f", tube.DefaultCurveTolerance, cfg.Tube.CurveTolerance)
	}
	if cfg.Tube.Strategy != "ring" {
		t.Errorf("expected strategy 'ring', got %s", cfg.Tube.Strategy)
	}

	// Flux defaults
	if !cfg.Flux.Up {
		t.Error("expected flux to travel up by default")
	}
	if cfg.Flux.Step != 8 {
		t.Errorf("expected flux step 8, got %d", cfg.Flux.Step)
	}

	// Viewer defaults
	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Preview defaults
	if cfg.Preview.Format != "png" {
		t.Errorf("expected preview format 'png', got %s", cfg.Preview.Format)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tube:
  radius: 0.5
  radial_vertices: 16
  vertical_scale: 3
  curve_tolerance: 0.01
  strategy: patch

flux:
  up: false
  step: 12

viewer:
  width: 1920
  height: 1080
  fullscreen: true

preview:
  format: webp
  plane: xz

logging:
  level: "debug"
  log_file: "tube.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tube.Radius != 0.5 {
		t.Errorf("expected radius 0.5, got %f", cfg.Tube.Radius)
	}
	if cfg.Tube.RadialVertices != 16 {
		t.Errorf("expected 16 radial vertices, got %d", cfg.Tube.RadialVertices)
	}
	if cfg.Tube.VerticalScale != 3 {
		t.Errorf("expected vertical scale 3, got %f", cfg.Tube.VerticalScale)
	}
	if cfg.Tube.Strategy != "patch" {
		t.Errorf("expected strategy 'patch', got %s", cfg.Tube.Strategy)
	}
	if cfg.Flux.Up {
		t.Error("expected flux.up to be false")
	}
	if cfg.Flux.Step != 12 {
		t.Errorf("expected flux step 12, got %d", cfg.Flux.Step)
	}
	// Values absent from the file keep their defaults.
	if cfg.Flux.Speed != 20 {
		t.Errorf("expected flux speed 20, got %f", cfg.Flux.Speed)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Preview.Format != "webp" || cfg.Preview.Plane != "xz" {
		t.Errorf("expected webp/xz, got %s/%s", cfg.Preview.Format, cfg.Preview.Plane)
	}
	if cfg.Logging.LogFile != "tube.log" {
		t.Errorf("expected log file 'tube.log', got %s", cfg.Logging.LogFile)
	}

	opts, err := cfg.Tube.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Strategy != tube.StrategyPatch || opts.Radius != 0.5 || opts.RadialVertices != 16 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
tube:
  radius: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero radius", func(c *Config) { c.Tube.Radius = 0 }, true},
		{"two radial vertices", func(c *Config) { c.Tube.RadialVertices = 2 }, true},
		{"negative tolerance", func(c *Config) { c.Tube.CurveTolerance = -1 }, true},
		{"zero tolerance", func(c *Config) { c.Tube.CurveTolerance = 0 }, false},
		{"unknown strategy", func(c *Config) { c.Tube.Strategy = "sphere" }, true},
		{"zero flux step", func(c *Config) { c.Flux.Step = 0 }, true},
		{"zero flux speed", func(c *Config) { c.Flux.Speed = 0 }, true},
		{"negative viewer width", func(c *Config) { c.Viewer.Width = -1 }, true},
		{"negative lod distance", func(c *Config) { c.Viewer.LODDistance = -1 }, true},
		{"preview format", func(c *Config) { c.Preview.Format = "gif" }, true},
		{"preview plane", func(c *Config) { c.Preview.Plane = "xw" }, true},
		{"padding too large", func(c *Config) { c.Preview.Padding = 400 }, true},
		{"no supersampling", func(c *Config) { c.Preview.Supersample = 1 }, false},
		{"supersample zero", func(c *Config) { c.Preview.Supersample = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTubeOptionsWrapsInvalidInput(t *testing.T) {
	cfg := Default()
	cfg.Tube.Radius = -2
	_, err := cfg.Tube.Options()
	if !errors.Is(err, tube.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's real config out of the search.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("tubegen.yaml", []byte("tube:\n  radius: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find tubegen.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "tube flags",
			args: []string{"-radius", "0.75", "-radial", "24", "-strategy", "patch", "-vscale", "2"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Tube.Radius != 0.75 {
					t.Errorf("expected radius 0.75, got %f", cfg.Tube.Radius)
				}
				if cfg.Tube.RadialVertices != 24 {
					t.Errorf("expected 24 radial vertices, got %d", cfg.Tube.RadialVertices)
				}
				if cfg.Tube.Strategy != "patch" {
					t.Errorf("expected strategy 'patch', got %s", cfg.Tube.Strategy)
				}
				if cfg.Tube.VerticalScale != 2 {
					t.Errorf("expected vertical scale 2, got %f", cfg.Tube.VerticalScale)
				}
			},
		},
		{
			name: "zero tolerance is an override",
			args: []string{"-tolerance", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Tube.CurveTolerance != 0 {
					t.Errorf("expected tolerance 0, got %f", cfg.Tube.CurveTolerance)
				}
			},
		},
		{
			name: "no tolerance flag keeps default",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Tube.CurveTolerance != tube.DefaultCurveTolerance {
					t.Errorf("expected default tolerance, got %f", cfg.Tube.CurveTolerance)
				}
			},
		},
		{
			name: "fullscreen flag",
			args: []string{"-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Preview.Width != 2560 {
					t.Errorf("expected width 2560, got %d/%d", cfg.Viewer.Width, cfg.Preview.Width)
				}
				if cfg.Viewer.Height != 1440 || cfg.Preview.Height != 1440 {
					t.Errorf("expected height 1440, got %d/%d", cfg.Viewer.Height, cfg.Preview.Height)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tube:
  radius: 0.4
  radial_vertices: 12
logging:
  level: "warn"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-radius", "0.9"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	// Flag beats file.
	if cfg.Tube.Radius != 0.9 {
		t.Errorf("expected radius 0.9 from flag, got %f", cfg.Tube.Radius)
	}
	// File beats default.
	if cfg.Tube.RadialVertices != 12 {
		t.Errorf("expected 12 radial vertices from file, got %d", cfg.Tube.RadialVertices)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' from file, got %s", cfg.Logging.Level)
	}
	// Default survives.
	if cfg.Preview.Plane != "xy" {
		t.Errorf("expected default plane 'xy', got %s", cfg.Preview.Plane)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("tube:\n  radial_vertices: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if _, err := Load(flags); !errors.Is(err, tube.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Tube.Radius = 1.5
	cfg.Preview.Plane = "yz"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Tube.Radius != 1.5 || loaded.Preview.Plane != "yz" {
		t.Errorf("saved values not restored: %+v %+v", loaded.Tube, loaded.Preview)
	}
}
