// tubeview shows a trajectory as an animated tube in an OpenGL window.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tubegen/internal/config"
	"github.com/Faultbox/tubegen/internal/flux"
	"github.com/Faultbox/tubegen/internal/gpu"
	"github.com/Faultbox/tubegen/internal/logger"
	"github.com/Faultbox/tubegen/internal/trajectory"
	"github.com/Faultbox/tubegen/internal/viewer"
	"github.com/Faultbox/tubegen/pkg/tube"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	trajPath := flag.String("traj", "", "Trajectory YAML file (default: demo helix)")
	helixPoints := flag.Int("helix", 600, "Points in the demo helix when no trajectory is given")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tube Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	traj := trajectory.Helix(*helixPoints)
	if *trajPath != "" {
		if traj, err = trajectory.Load(*trajPath); err != nil {
			logger.Error("failed to load trajectory", zap.Error(err))
			os.Exit(1)
		}
	}

	if err := run(cfg, traj); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, traj *trajectory.Trajectory) error {
	opts, err := cfg.Tube.Options()
	if err != nil {
		return err
	}

	b := tube.NewBuilder(tube.WithLogger(logger.Named("tube")))
	if err := b.SetTrajectory(traj.Points, cfg.Tube.VerticalScale, cfg.Tube.CurveTolerance); err != nil {
		return fmt.Errorf("trajectory %q: %w", traj.Name, err)
	}
	lod, err := b.Build(opts)
	if err != nil {
		return err
	}

	title := "tubeview"
	if traj.Name != "" {
		title += " - " + traj.Name
	}
	lo, hi := b.Sections().Bounds()

	return viewer.Run(lod, lo, hi, viewer.Options{
		Window: viewer.WindowConfig{
			Title:      title,
			Width:      cfg.Viewer.Width,
			Height:     cfg.Viewer.Height,
			Fullscreen: cfg.Viewer.Fullscreen,
			VSync:      cfg.Viewer.VSync,
		},
		Style: gpu.Style{
			Color:          cfg.Tube.Color,
			FluxColor:      cfg.Flux.Color,
			FluxStep:       cfg.Flux.Step,
			Radius:         cfg.Tube.Radius,
			RadialVertices: cfg.Tube.RadialVertices,
			LineWidth:      cfg.Tube.LineWidth,
		},
		Flux:        flux.NewTimer(cfg.Flux.Up, cfg.Flux.Step, cfg.Flux.Speed),
		FluxEnabled: cfg.Flux.Enabled,
		LODDistance: cfg.Viewer.LODDistance,
		Background:  [4]float32{0.1, 0.1, 0.15, 1},
		Screenshots: viewer.Screenshots{
			Dir:    cfg.Viewer.ScreenshotDir,
			Prefix: "tubeview",
			Format: cfg.Preview.Format,
		},
	}, logger.Named("viewer"))
}
