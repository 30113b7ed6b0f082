// tubetool is a CLI utility for inspecting trajectories and exporting
// tube meshes without a GPU.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/tubegen/internal/config"
	"github.com/Faultbox/tubegen/internal/export"
	"github.com/Faultbox/tubegen/internal/flux"
	"github.com/Faultbox/tubegen/internal/logger"
	"github.com/Faultbox/tubegen/internal/preview"
	"github.com/Faultbox/tubegen/internal/trajectory"
	"github.com/Faultbox/tubegen/pkg/tube"
)

// errUsage means the command line was wrong; the usage text has already
// been printed.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "export":
		err = cmdExport(args, os.Stdout)
	case "preview":
		err = cmdPreview(args, os.Stdout)
	case "helix":
		err = cmdHelix(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `tubetool - trajectory to tube mesh utility

Usage:
  tubetool <command> [options] <args>

Commands:
  info <traj.yaml>                  Show trajectory and mesh statistics
  export <traj.yaml> <out.obj>      Write the ring mesh as Wavefront OBJ
  preview <traj.yaml> <out.png>     Render a flat preview (.png or .webp)
  helix <points> <out.yaml>         Write the demo helix trajectory

A trajectory argument of "helix" uses the 600-point demo helix.
Every command accepts the shared options, e.g. -config, -radius,
-radial, -tolerance, -strategy, -vscale, -debug.

Examples:
  tubetool info path.yaml
  tubetool export -radius 0.2 path.yaml path.obj
  tubetool preview -plane xz -flux 3 helix helix.webp
  tubetool helix 200 helix.yaml`)
}

// command is the state shared by the subcommands: parsed flags, loaded
// config and an initialized logger.
type command struct {
	fs    *flag.FlagSet
	flags *config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newCommand(name string) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &command{fs: fs, flags: config.RegisterFlags(fs)}
}

// parse parses args, loads config and starts logging. want is the number
// of positional arguments and usage their synopsis.
func (c *command) parse(args []string, want int, usage string) error {
	c.fs.Usage = func() {
		fmt.Fprintf(c.fs.Output(), "Usage: tubetool %s [options] %s\n", c.fs.Name(), usage)
		c.fs.PrintDefaults()
	}
	if err := c.fs.Parse(args); err != nil {
		return errUsage
	}
	if c.fs.NArg() != want {
		c.fs.Usage()
		return errUsage
	}

	cfg, err := config.Load(c.flags)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	c.log = logger.Named(c.fs.Name())
	return nil
}

// load reads a trajectory file, or the demo helix for "helix".
func (c *command) load(path string) (*trajectory.Trajectory, error) {
	if path == "helix" {
		return trajectory.Helix(600), nil
	}
	return trajectory.Load(path)
}

// build runs the tube builder over traj with the configured options.
func (c *command) build(traj *trajectory.Trajectory, strategy tube.Strategy) (*tube.Builder, *tube.LOD, error) {
	opts, err := c.cfg.Tube.Options()
	if err != nil {
		return nil, nil, err
	}
	opts.Strategy = strategy

	b := tube.NewBuilder(tube.WithLogger(logger.Named("tube")))
	if err := b.SetTrajectory(traj.Points, c.cfg.Tube.VerticalScale, c.cfg.Tube.CurveTolerance); err != nil {
		return nil, nil, err
	}
	lod, err := b.Build(opts)
	if err != nil {
		return nil, nil, err
	}
	return b, lod, nil
}

func cmdInfo(args []string, out io.Writer) error {
	c := newCommand("info")
	if err := c.parse(args, 1, "<traj.yaml>"); err != nil {
		return err
	}

	traj, err := c.load(c.fs.Arg(0))
	if err != nil {
		return err
	}
	b, lod, err := c.build(traj, tube.StrategyRing)
	if err != nil {
		return err
	}
	patches, err := b.Patches()
	if err != nil {
		return err
	}

	sections := b.Sections()
	lo, hi := sections.Bounds()

	fmt.Fprintf(out, "Trajectory: %s\n", c.fs.Arg(0))
	if traj.Name != "" {
		fmt.Fprintf(out, "Name:       %s\n", traj.Name)
	}
	fmt.Fprintf(out, "Points:     %d\n", len(traj.Points))
	fmt.Fprintf(out, "Sections:   %d (%d culled, tolerance %g)\n",
		len(sections), len(traj.Points)-len(sections), c.cfg.Tube.CurveTolerance)
	fmt.Fprintf(out, "Length:     %.3f\n", sections.Length())
	fmt.Fprintf(out, "Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Meshes:")
	fmt.Fprintf(out, "  ring      %d vertices, %d quads (%d radial)\n",
		lod.Ring.VertexCount(), lod.Ring.QuadCount(), lod.Ring.Radial)
	fmt.Fprintf(out, "  patch     %d control points, %d patches\n", patches.VertexCount(), patches.PatchCount())
	fmt.Fprintf(out, "  polyline  %d vertices\n", lod.Far.VertexCount())
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	c := newCommand("export")
	far := c.fs.Bool("far", false, "Export the far-view polyline instead of the ring mesh")
	if err := c.parse(args, 2, "<traj.yaml> <out.obj>"); err != nil {
		return err
	}

	traj, err := c.load(c.fs.Arg(0))
	if err != nil {
		return err
	}
	_, lod, err := c.build(traj, tube.StrategyRing)
	if err != nil {
		return err
	}

	path := c.fs.Arg(1)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if *far {
		err = export.WritePolylineOBJ(f, traj.Name, lod.Far)
	} else {
		err = export.WriteOBJ(f, traj.Name, lod.Ring)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	c.log.Info("mesh exported", zap.String("path", path), zap.Bool("far", *far))
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func cmdPreview(args []string, out io.Writer) error {
	c := newCommand("preview")
	plane := c.fs.String("plane", "", "Projection plane: xy, xz or yz (default from config)")
	rings := c.fs.Int("rings", 0, "Outline every Nth ring of the tube (0 = none)")
	at := c.fs.Float64("flux", -1, "Draw the flux band as it is this many seconds in (negative = off)")
	if err := c.parse(args, 2, "<traj.yaml> <out.png|out.webp>"); err != nil {
		return err
	}

	traj, err := c.load(c.fs.Arg(0))
	if err != nil {
		return err
	}
	_, lod, err := c.build(traj, tube.StrategyRing)
	if err != nil {
		return err
	}

	opts := previewOptions(c.cfg)
	if *plane != "" {
		opts.Plane = preview.Plane(*plane)
	}
	opts.RingStride = *rings
	if *at >= 0 {
		timer := flux.NewTimer(c.cfg.Flux.Up, c.cfg.Flux.Step, c.cfg.Flux.Speed)
		opts.FluxStep = timer.Step
		opts.FluxValue = timer.Value(*at)
	}

	img, err := preview.Render(lod, opts)
	if err != nil {
		return err
	}

	path := c.fs.Arg(1)
	format := preview.FormatFromPath(path)
	if err := preview.Save(path, img, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	c.log.Info("preview written", zap.String("path", path), zap.String("format", format),
		zap.String("plane", string(opts.Plane)))
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func cmdHelix(args []string, out io.Writer) error {
	c := newCommand("helix")
	if err := c.parse(args, 2, "<points> <out.yaml>"); err != nil {
		return err
	}

	n, err := strconv.Atoi(c.fs.Arg(0))
	if err != nil || n < tube.MinTrajectoryPoints {
		return fmt.Errorf("points must be an integer >= %d, got %q", tube.MinTrajectoryPoints, c.fs.Arg(0))
	}

	path := c.fs.Arg(1)
	if err := trajectory.Helix(n).Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d points to %s\n", n, path)
	return nil
}
