package tube

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tubegen/pkg/math"
)

// MinTrajectoryPoints is the smallest trajectory Propagate accepts.
const MinTrajectoryPoints = 3

// DefaultCurveTolerance is the squared rotation-axis length below which a
// point counts as collinear with its neighbours.
const DefaultCurveTolerance = 0.001

// Propagate simplifies a trajectory into oriented cross-sections.
//
// The Z coordinate of every point is multiplied by verticalScale first. The
// first and last points are always kept; an interior point is kept only when
// the curve bends there enough that |prevTangent x tangent|^2 reaches
// curveTolerance. Frames are carried from one kept point to the next by
// rotating about the bend axis, so the tube does not twist.
func Propagate(trajectory []math.Vec3, verticalScale, curveTolerance float32) (Sections, error) {
	n := len(trajectory)
	if n < MinTrajectoryPoints {
		return nil, fmt.Errorf("%w: trajectory has %d points, need at least %d",
			ErrInvalidInput, n, MinTrajectoryPoints)
	}

	points := make([]math.Vec3, n)
	for i, p := range trajectory {
		points[i] = math.Vec3{X: p.X, Y: p.Y, Z: p.Z * verticalScale}
	}

	// Skip successors that sit on top of the anchor.
	second := 1
	for second < n && points[second] == points[0] {
		second++
	}
	if second == n {
		return nil, fmt.Errorf("%w: all %d trajectory points are coincident", ErrInvalidInput, n)
	}

	prev := anchorFrame(points[0], points[second])
	sections := Sections{prev.section()}

	for i := second; i < n-1; i++ {
		next, ok := prev.advance(points[i], points[i+1], curveTolerance)
		if !ok {
			continue
		}
		sections = append(sections, next.section())
		prev = next
	}

	// The last point has no successor: mirror the final segment past it.
	last := points[n-1]
	virtual := last.Add(last.Sub(points[n-2]))
	end, ok := prev.advance(last, virtual, curveTolerance)
	if !ok {
		end = prev
		end.position = last
	}
	sections = append(sections, end.section())

	return sections, nil
}

// anchorFrame builds the frame at the first point from the direction
// towards its first distinct successor.
func anchorFrame(p0, next math.Vec3) frame {
	t := next.Sub(p0).Normalize()

	normal := math.Vec3{X: -t.Y + t.Z, Y: t.X + t.Z, Z: -t.X - t.Y}.Normalize()
	if normal.IsZero() {
		// t is parallel to (-1,1,1), where the combination above vanishes.
		normal = t.Cross(leastAlignedAxis(t)).Normalize()
	}

	return frame{
		position: p0,
		tangent:  t,
		normal:   normal,
		binormal: t.Cross(normal),
	}
}

// leastAlignedAxis returns the world axis with the smallest component in v.
func leastAlignedAxis(v math.Vec3) math.Vec3 {
	ax, ay, az := math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)
	switch {
	case ax <= ay && ax <= az:
		return math.Vec3{X: 1}
	case ay <= az:
		return math.Vec3{Y: 1}
	default:
		return math.Vec3{Z: 1}
	}
}

// advance computes the frame at pos given the point that follows it.
// It returns false when pos adds no direction information: either the
// neighbour directions cancel out or the bend is under tolerance.
func (f frame) advance(pos, next math.Vec3, tolerance float32) (frame, bool) {
	toNext := next.Sub(pos).Normalize()
	toPrev := f.position.Sub(pos).Normalize()

	tangent := toNext.Sub(toPrev)
	if tangent.IsZero() {
		return frame{}, false
	}
	tangent = tangent.Normalize()

	axis := f.tangent.Cross(tangent)
	if axis.LengthSq() < tolerance {
		return frame{}, false
	}

	rot := math.QuatFromAxisAngle(axis.Normalize(), math.AngleBetween(f.tangent, tangent))
	return frame{
		position: pos,
		tangent:  tangent,
		normal:   rot.Rotate(f.normal).Normalize(),
		binormal: rot.Rotate(f.binormal).Normalize(),
	}, true
}
