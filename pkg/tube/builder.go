package tube

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tubegen/pkg/math"
)

// Strategy selects how the near (close-view) mesh is generated.
type Strategy int

const (
	// StrategyRing builds explicit rings and quad indices on the CPU.
	StrategyRing Strategy = iota
	// StrategyPatch emits control points for GPU tessellation.
	StrategyPatch
)

// String returns the config name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyRing:
		return "ring"
	case StrategyPatch:
		return "patch"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a config name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ring", "":
		return StrategyRing, nil
	case "patch":
		return StrategyPatch, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, name)
	}
}

// Options controls Builder.Build.
type Options struct {
	Strategy       Strategy
	Radius         float32
	RadialVertices int
}

// DefaultOptions returns the ring strategy with ten radial vertices.
func DefaultOptions() Options {
	return Options{
		Strategy:       StrategyRing,
		Radius:         1,
		RadialVertices: 10,
	}
}

// LOD bundles the close-view mesh with the far-view polyline. Exactly one
// of Ring and Patch is set, according to Strategy. Picking which one to
// draw is left to the renderer.
type LOD struct {
	Strategy Strategy
	Ring     *RingMesh
	Patch    *PatchMesh
	Far      *PolylineMesh
}

// Near returns the close-view mesh.
func (l *LOD) Near() Mesh {
	if l.Strategy == StrategyPatch {
		return l.Patch
	}
	return l.Ring
}

// Builder owns the section sequence of a single tube.
//
// SetTrajectory replaces the sequence; the mesh methods only read it and
// may run concurrently with each other.
type Builder struct {
	mu       sync.RWMutex
	sections Sections
	log      *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger routes builder diagnostics to log.
func WithLogger(log *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder creates a builder with no trajectory.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetTrajectory simplifies trajectory into the builder's section sequence.
// On error the previous sequence is kept.
func (b *Builder) SetTrajectory(trajectory []math.Vec3, verticalScale, curveTolerance float32) error {
	sections, err := Propagate(trajectory, verticalScale, curveTolerance)
	if err != nil {
		b.log.Warn("trajectory rejected", zap.Int("points", len(trajectory)), zap.Error(err))
		return err
	}

	b.mu.Lock()
	b.sections = sections
	b.mu.Unlock()

	b.log.Debug("trajectory set",
		zap.Int("points", len(trajectory)),
		zap.Int("sections", len(sections)),
		zap.Int("culled", len(trajectory)-len(sections)),
		zap.Float32("verticalScale", verticalScale),
		zap.Float32("curveTolerance", curveTolerance),
		zap.Float32("length", sections.Length()),
	)
	return nil
}

// Sections returns a copy of the current section sequence.
func (b *Builder) Sections() Sections {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sections.Clone()
}

// Ring builds the explicit ring mesh for the current sequence.
func (b *Builder) Ring(radius float32, radialVertices int) (*RingMesh, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	mesh, err := BuildRing(b.sections, radius, radialVertices)
	if err != nil {
		return nil, err
	}
	b.log.Debug("ring mesh built",
		zap.Int("rings", mesh.Rings),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("quads", mesh.QuadCount()),
	)
	return mesh, nil
}

// Patches builds the tessellation control point stream.
func (b *Builder) Patches() (*PatchMesh, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	mesh, err := BuildPatches(b.sections)
	if err != nil {
		return nil, err
	}
	b.log.Debug("patch mesh built",
		zap.Int("controlPoints", mesh.VertexCount()),
		zap.Int("patches", mesh.PatchCount()),
	)
	return mesh, nil
}

// Polyline builds the far-view line strip.
func (b *Builder) Polyline() (*PolylineMesh, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BuildPolyline(b.sections)
}

// Build produces the near mesh selected by opts.Strategy together with the
// far polyline.
func (b *Builder) Build(opts Options) (*LOD, error) {
	lod := &LOD{Strategy: opts.Strategy}

	var err error
	switch opts.Strategy {
	case StrategyRing:
		lod.Ring, err = b.Ring(opts.Radius, opts.RadialVertices)
	case StrategyPatch:
		lod.Patch, err = b.Patches()
	default:
		err = fmt.Errorf("%w: unknown strategy %v", ErrInvalidInput, opts.Strategy)
	}
	if err != nil {
		return nil, err
	}

	lod.Far, err = b.Polyline()
	if err != nil {
		return nil, err
	}
	return lod, nil
}
