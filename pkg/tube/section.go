// Package tube turns 3D trajectories into tube geometry.
//
// A trajectory is simplified into a sequence of oriented cross-sections
// (Sections) by parallel-transporting a frame along the curve. The
// sequence then feeds one of three builders: explicit rings with quad
// indices, a patch-ordered control point stream for GPU tessellation, or
// a plain polyline for distant views.
package tube

import (
	"github.com/Faultbox/tubegen/pkg/math"
)

// Section is one oriented cross-section of the tube.
// Normal, Binormal and the tangent form an orthonormal frame at Position.
type Section struct {
	Position math.Vec3
	Normal   math.Vec3
	Binormal math.Vec3

	tangent math.Vec3
}

// Tangent returns the curve direction the section's frame was built for.
func (s Section) Tangent() math.Vec3 {
	return s.tangent
}

// Sections is an ordered, simplified cross-section sequence in curve order.
type Sections []Section

// Positions returns the section positions in order.
func (s Sections) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(s))
	for i := range s {
		out[i] = s[i].Position
	}
	return out
}

// ArcLengths returns, for every section, the cumulative distance of its
// position from the first section's position.
func (s Sections) ArcLengths() []float32 {
	out := make([]float32, len(s))
	var total float32
	for i := 1; i < len(s); i++ {
		total += s[i].Position.Distance(s[i-1].Position)
		out[i] = total
	}
	return out
}

// Length returns the total arc length of the simplified curve.
func (s Sections) Length() float32 {
	if len(s) == 0 {
		return 0
	}
	arcs := s.ArcLengths()
	return arcs[len(arcs)-1]
}

// Bounds returns the axis-aligned box enclosing the section positions.
func (s Sections) Bounds() (lo, hi math.Vec3) {
	if len(s) == 0 {
		return
	}
	lo, hi = s[0].Position, s[0].Position
	for _, sec := range s[1:] {
		lo = lo.Min(sec.Position)
		hi = hi.Max(sec.Position)
	}
	return lo, hi
}

// Clone returns an independent copy of the sequence.
func (s Sections) Clone() Sections {
	if s == nil {
		return nil
	}
	out := make(Sections, len(s))
	copy(out, s)
	return out
}

// frame is the accumulator carried along the curve during propagation.
type frame struct {
	position math.Vec3
	tangent  math.Vec3
	normal   math.Vec3
	binormal math.Vec3
}

func (f frame) section() Section {
	return Section{
		Position: f.position,
		Normal:   f.normal,
		Binormal: f.binormal,
		tangent:  f.tangent,
	}
}
