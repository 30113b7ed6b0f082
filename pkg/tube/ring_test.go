package tube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tubegen/pkg/math"
)

// straightSections returns n axis-aligned frames along +X spaced one unit apart.
func straightSections(n int) Sections {
	s := make(Sections, n)
	for i := range n {
		s[i] = Section{
			Position: math.Vec3{X: float32(i)},
			Normal:   math.Vec3{Y: 1},
			Binormal: math.Vec3{Z: 1},
			tangent:  math.Vec3{X: 1},
		}
	}
	return s
}

func TestBuildRingCounts(t *testing.T) {
	mesh, err := BuildRing(straightSections(3), 0.5, 4)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 12)
	assert.Len(t, mesh.Normals, 12)
	assert.Len(t, mesh.ArcLengths, 12)
	assert.Len(t, mesh.Indices, 32)
	assert.Equal(t, 8, mesh.QuadCount())
	assert.Equal(t, 3, mesh.Rings)
	assert.Equal(t, 4, mesh.Radial)
}

func TestBuildRingIndexLayout(t *testing.T) {
	mesh, err := BuildRing(straightSections(3), 1, 4)
	require.NoError(t, err)

	want := []uint32{
		0, 1, 5, 4,
		1, 2, 6, 5,
		2, 3, 7, 6,
		3, 0, 4, 7,
		4, 5, 9, 8,
		5, 6, 10, 9,
		6, 7, 11, 10,
		7, 4, 8, 11,
	}
	assert.Equal(t, want, mesh.Indices)
}

func TestBuildRingSingleSection(t *testing.T) {
	mesh, err := BuildRing(straightSections(1), 1, 6)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 6)
	assert.Empty(t, mesh.Indices)
}

func TestBuildRingGeometry(t *testing.T) {
	sections, err := Propagate(helix(50), 1, DefaultCurveTolerance)
	require.NoError(t, err)

	const radius = 0.25
	mesh, err := BuildRing(sections, radius, 12)
	require.NoError(t, err)

	for i, s := range sections {
		for j := range mesh.Radial {
			k := i*mesh.Radial + j
			v, n := mesh.Vertices[k], mesh.Normals[k]
			offset := v.Sub(s.Position)

			assert.InDelta(t, radius, offset.Length(), 1e-4, "vertex %d distance", k)
			assert.InDelta(t, 1, n.Length(), 1e-4, "normal %d length", k)
			assert.InDelta(t, radius, offset.Dot(n), 1e-4, "normal %d points outward", k)
			assert.InDelta(t, 0, n.Dot(s.Tangent()), frameTol, "normal %d lies in the section plane", k)
		}
	}
}

func TestBuildRingFirstColumnFollowsNormal(t *testing.T) {
	mesh, err := BuildRing(straightSections(2), 2, 4)
	require.NoError(t, err)

	// theta = 0 sits on the normal, theta = pi/2 on the binormal.
	assert.InDelta(t, 2, mesh.Vertices[0].Y, 1e-6)
	assert.InDelta(t, 0, mesh.Vertices[0].Z, 1e-6)
	assert.InDelta(t, 0, mesh.Vertices[1].Y, 1e-6)
	assert.InDelta(t, 2, mesh.Vertices[1].Z, 1e-6)
}

func TestBuildRingIsIdempotent(t *testing.T) {
	sections, err := Propagate(wobble(80, 11), 1, DefaultCurveTolerance)
	require.NoError(t, err)

	a, err := BuildRing(sections, 0.3, 10)
	require.NoError(t, err)
	b, err := BuildRing(sections, 0.3, 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildRingArcLengths(t *testing.T) {
	sections, err := Propagate(helix(40), 1, DefaultCurveTolerance)
	require.NoError(t, err)

	mesh, err := BuildRing(sections, 0.1, 5)
	require.NoError(t, err)

	arcs := sections.ArcLengths()
	for i := range mesh.ArcLengths {
		ring := i / mesh.Radial
		assert.Equal(t, arcs[ring], mesh.ArcLengths[i])
		if i > 0 {
			assert.GreaterOrEqual(t, mesh.ArcLengths[i], mesh.ArcLengths[i-1])
		}
	}
	assert.Equal(t, float32(0), mesh.ArcLengths[0])
}

func TestBuildRingErrors(t *testing.T) {
	_, err := BuildRing(nil, 1, 8)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = BuildRing(straightSections(2), 1, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildRing(straightSections(2), 0, 8)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRingTriangles(t *testing.T) {
	mesh, err := BuildRing(straightSections(2), 1, 3)
	require.NoError(t, err)

	tris := mesh.Triangles()
	require.Len(t, tris, mesh.QuadCount()*6)
	assert.Equal(t, []uint32{0, 1, 4, 0, 4, 3}, tris[:6])
	for _, idx := range tris {
		assert.Less(t, int(idx), mesh.VertexCount())
	}
}

func TestRingAttributes(t *testing.T) {
	mesh, err := BuildRing(straightSections(3), 1, 4)
	require.NoError(t, err)

	attrs := mesh.Attributes()
	require.Len(t, attrs, 3)
	for _, a := range attrs {
		assert.Equal(t, mesh.VertexCount(), a.Count(), a.Name)
	}

	pos, ok := FindAttribute(mesh, AttrPosition)
	require.True(t, ok)
	assert.Equal(t, 3, pos.Components)
	assert.Equal(t, mesh.Vertices[5].X, pos.Data[15])

	arc, ok := FindAttribute(mesh, AttrArcLength)
	require.True(t, ok)
	assert.Equal(t, 1, arc.Components)

	_, ok = FindAttribute(mesh, AttrBinormal)
	assert.False(t, ok)
}
