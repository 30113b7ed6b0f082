// Package preview renders a flat picture of a tube without a GPU.
//
// The far polyline, and optionally ring outlines of the near mesh, are
// projected onto one of the axis planes and stroked with gogpu/gg. The
// stroke color follows the arc length from the start of the tube, and
// segments inside the flux band are drawn in the flux color.
package preview

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/Faultbox/tubegen/internal/flux"
	"github.com/Faultbox/tubegen/pkg/math"
	"github.com/Faultbox/tubegen/pkg/tube"
)

// ErrBadOptions is returned for unusable render options.
var ErrBadOptions = errors.New("bad preview options")

// Plane selects the two axes kept by the projection.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

func (p Plane) project(v math.Vec3) math.Vec2 {
	switch p {
	case PlaneXZ:
		return v.XZ()
	case PlaneYZ:
		return v.YZ()
	default:
		return v.XY()
	}
}

// Options controls Render.
type Options struct {
	Width, Height int
	Plane         Plane
	Padding       int
	Supersample   int
	LineWidth     float64
	Background    gg.RGBA
	Color         gg.RGBA
	FluxColor     gg.RGBA

	// FluxStep > 0 highlights the band selected by FluxValue.
	FluxStep  int
	FluxValue float32

	// RingStride > 0 outlines every RingStride-th ring of the near mesh.
	RingStride int
}

// DefaultOptions returns a 800x600 top view of a red tube on black.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Plane:       PlaneXY,
		Padding:     20,
		Supersample: 2,
		LineWidth:   2,
		Background:  gg.RGB(0, 0, 0),
		Color:       gg.RGB(1, 0, 0),
		FluxColor:   gg.RGB(1, 1, 1),
	}
}

func (o Options) validate() error {
	switch o.Plane {
	case PlaneXY, PlaneXZ, PlaneYZ:
	default:
		return fmt.Errorf("%w: plane %q", ErrBadOptions, o.Plane)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrBadOptions, o.Width, o.Height)
	}
	if 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return fmt.Errorf("%w: padding %d", ErrBadOptions, o.Padding)
	}
	if o.Supersample < 1 {
		return fmt.Errorf("%w: supersample %d", ErrBadOptions, o.Supersample)
	}
	return nil
}

// viewport maps projected points to pixel coordinates.
type viewport struct {
	min    math.Vec2
	scale  float32
	offset math.Vec2
	height float32
}

func fit(points []math.Vec2, width, height, padding int) viewport {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	extent := hi.Sub(lo)
	availW := float32(width - 2*padding)
	availH := float32(height - 2*padding)

	scale := float32(1)
	switch {
	case extent.X > 0 && extent.Y > 0:
		scale = min(availW/extent.X, availH/extent.Y)
	case extent.X > 0:
		scale = availW / extent.X
	case extent.Y > 0:
		scale = availH / extent.Y
	}

	// Center the drawing inside the padded area.
	offset := math.Vec2{
		X: float32(padding) + (availW-extent.X*scale)/2,
		Y: float32(padding) + (availH-extent.Y*scale)/2,
	}
	return viewport{min: lo, scale: scale, offset: offset, height: float32(height)}
}

func (v viewport) pixel(p math.Vec2) (float64, float64) {
	q := p.Sub(v.min).Scale(v.scale).Add(v.offset)
	// Image rows grow downwards.
	return float64(q.X), float64(v.height - q.Y)
}

// Render draws lod and returns an opts.Width x opts.Height image.
func Render(lod *tube.LOD, opts Options) (image.Image, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if lod == nil || lod.Far == nil || lod.Far.VertexCount() == 0 {
		return nil, tube.ErrEmptySequence
	}

	s := opts.Supersample
	w, h := opts.Width*s, opts.Height*s

	points := make([]math.Vec2, 0, lod.Far.VertexCount())
	for _, p := range lod.Far.Positions {
		points = append(points, opts.Plane.project(p))
	}
	var ring []math.Vec2
	if opts.RingStride > 0 && lod.Ring != nil {
		ring = make([]math.Vec2, len(lod.Ring.Vertices))
		for i, p := range lod.Ring.Vertices {
			ring[i] = opts.Plane.project(p)
		}
	}
	vp := fit(append(points[:len(points):len(points)], ring...), w, h, opts.Padding*s)

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(opts.Background)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	if ring != nil {
		if err := drawRings(dc, vp, lod.Ring, ring, opts); err != nil {
			return nil, err
		}
	}
	if err := drawPolyline(dc, vp, lod.Far, points, opts); err != nil {
		return nil, err
	}

	img := dc.Image()
	if s == 1 {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// segmentColor ramps from a dimmed base color at the start of the tube to
// the full base color at its end.
func segmentColor(arc, length float32, opts Options) gg.RGBA {
	if opts.FluxStep > 0 && flux.Lit(arc, opts.FluxValue, opts.FluxStep) {
		return opts.FluxColor
	}
	t := float64(0)
	if length > 0 {
		t = float64(arc / length)
	}
	return opts.Color.Lerp(opts.Background, 0.6).Lerp(opts.Color, t)
}

func drawPolyline(dc *gg.Context, vp viewport, line *tube.PolylineMesh, points []math.Vec2, opts Options) error {
	dc.SetLineWidth(opts.LineWidth * float64(opts.Supersample))
	length := line.ArcLengths[len(line.ArcLengths)-1]

	if collapsed(points) {
		x, y := vp.pixel(points[0])
		c := segmentColor(0, length, opts)
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.DrawCircle(x, y, opts.LineWidth*float64(opts.Supersample))
		return dc.Fill()
	}

	for i := 1; i < len(points); i++ {
		c := segmentColor(line.ArcLengths[i-1], length, opts)
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.MoveTo(vp.pixel(points[i-1]))
		dc.LineTo(vp.pixel(points[i]))
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke segment %d: %w", i, err)
		}
	}
	return nil
}

// collapsed reports whether every point projects to the same spot, as a
// line viewed end-on does.
func collapsed(points []math.Vec2) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return false
		}
	}
	return true
}

func drawRings(dc *gg.Context, vp viewport, mesh *tube.RingMesh, ring []math.Vec2, opts Options) error {
	dc.SetLineWidth(float64(opts.Supersample))
	c := opts.Color.Lerp(opts.Background, 0.5)
	dc.SetRGBA(c.R, c.G, c.B, c.A)

	for r := 0; r < mesh.Rings; r += opts.RingStride {
		base := r * mesh.Radial
		dc.MoveTo(vp.pixel(ring[base]))
		for j := 1; j < mesh.Radial; j++ {
			dc.LineTo(vp.pixel(ring[base+j]))
		}
		dc.LineTo(vp.pixel(ring[base]))
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke ring %d: %w", r, err)
		}
	}
	return nil
}

// FormatFromPath returns "webp" for .webp files and "png" otherwise.
func FormatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		return "webp"
	}
	return "png"
}
