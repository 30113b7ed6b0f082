package tube

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tubegen/pkg/math"
)

// MinRadialVertices is the smallest ring that still encloses a volume.
const MinRadialVertices = 3

// RingMesh is an explicit tube surface: one ring of Radial vertices per
// section, stitched by quads.
type RingMesh struct {
	Vertices   []math.Vec3
	Normals    []math.Vec3
	ArcLengths []float32

	// Indices holds quads, four entries each. Vertex (ring, column) lives at
	// ring*Radial + column.
	Indices []uint32

	Radial int
	Rings  int
}

// BuildRing expands every section into a ring of radialVertexCount vertices
// at the given radius and joins adjacent rings with quads.
func BuildRing(sections Sections, radius float32, radialVertexCount int) (*RingMesh, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("ring mesh: %w", ErrEmptySequence)
	}
	if radialVertexCount < MinRadialVertices {
		return nil, fmt.Errorf("%w: ring needs at least %d radial vertices, got %d",
			ErrInvalidInput, MinRadialVertices, radialVertexCount)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: tube radius must be positive, got %v", ErrInvalidInput, radius)
	}

	n := radialVertexCount
	rings := len(sections)
	total := rings * n

	// Angles are the same for every ring.
	cos := make([]float32, n)
	sin := make([]float32, n)
	step := 2 * math32.Pi / float32(n)
	for j := range n {
		theta := step * float32(j)
		cos[j] = radius * math32.Cos(theta)
		sin[j] = radius * math32.Sin(theta)
	}

	mesh := &RingMesh{
		Vertices:   make([]math.Vec3, 0, total),
		Normals:    make([]math.Vec3, 0, total),
		ArcLengths: make([]float32, 0, total),
		Indices:    make([]uint32, 0, (rings-1)*n*4),
		Radial:     n,
		Rings:      rings,
	}

	arcs := sections.ArcLengths()
	for i, s := range sections {
		for j := range n {
			offset := s.Normal.Scale(cos[j]).Add(s.Binormal.Scale(sin[j]))
			mesh.Vertices = append(mesh.Vertices, s.Position.Add(offset))
			mesh.Normals = append(mesh.Normals, offset.Normalize())
			mesh.ArcLengths = append(mesh.ArcLengths, arcs[i])
		}
	}

	for i := 0; i < rings-1; i++ {
		for j := range n {
			jn := (j + 1) % n
			mesh.Indices = append(mesh.Indices,
				ringIndex(n, i, j),
				ringIndex(n, i, jn),
				ringIndex(n, i+1, jn),
				ringIndex(n, i+1, j),
			)
		}
	}

	return mesh, nil
}

func ringIndex(rowSize, ring, column int) uint32 {
	return uint32(ring*rowSize + column)
}

// QuadCount returns the number of quads in the index buffer.
func (m *RingMesh) QuadCount() int {
	return len(m.Indices) / 4
}

// Triangles splits every quad (a,b,c,d) into (a,b,c) and (a,c,d) for APIs
// without a quad primitive.
func (m *RingMesh) Triangles() []uint32 {
	tris := make([]uint32, 0, m.QuadCount()*6)
	for q := 0; q+3 < len(m.Indices); q += 4 {
		a, b, c, d := m.Indices[q], m.Indices[q+1], m.Indices[q+2], m.Indices[q+3]
		tris = append(tris, a, b, c, a, c, d)
	}
	return tris
}

// VertexCount implements Mesh.
func (m *RingMesh) VertexCount() int {
	return len(m.Vertices)
}

// Attributes implements Mesh.
func (m *RingMesh) Attributes() []Attribute {
	return []Attribute{
		vec3Attribute(AttrPosition, m.Vertices),
		vec3Attribute(AttrNormal, m.Normals),
		scalarAttribute(AttrArcLength, m.ArcLengths),
	}
}
