package tube

import (
	"fmt"

	"github.com/Faultbox/tubegen/pkg/math"
)

// PatchSize is the number of control points per GPU tessellation patch.
const PatchSize = 32

// PatchMesh is a control point stream for GPU-side tube tessellation.
// There is no index buffer: the renderer consumes consecutive groups of
// PatchSize entries.
type PatchMesh struct {
	Positions  []math.Vec3
	Normals    []math.Vec3
	Binormals  []math.Vec3
	ArcLengths []float32
}

// BuildPatches emits one control point per section. Whenever the output
// length reaches a multiple of PatchSize, the current entry is written a
// second time so the next patch starts where the previous one ended.
// Duplicates count towards the running length.
func BuildPatches(sections Sections) (*PatchMesh, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("patch mesh: %w", ErrEmptySequence)
	}

	capacity := len(sections) + len(sections)/(PatchSize-1) + 1
	mesh := &PatchMesh{
		Positions:  make([]math.Vec3, 0, capacity),
		Normals:    make([]math.Vec3, 0, capacity),
		Binormals:  make([]math.Vec3, 0, capacity),
		ArcLengths: make([]float32, 0, capacity),
	}

	arcs := sections.ArcLengths()
	for i, s := range sections {
		mesh.push(s, arcs[i])
		if len(mesh.Positions)%PatchSize == 0 {
			mesh.push(s, arcs[i])
		}
	}

	return mesh, nil
}

func (m *PatchMesh) push(s Section, arc float32) {
	m.Positions = append(m.Positions, s.Position)
	m.Normals = append(m.Normals, s.Normal)
	m.Binormals = append(m.Binormals, s.Binormal)
	m.ArcLengths = append(m.ArcLengths, arc)
}

// PatchCount returns how many patches the stream spans, counting a
// trailing partial patch.
func (m *PatchMesh) PatchCount() int {
	return (len(m.Positions) + PatchSize - 1) / PatchSize
}

// VertexCount implements Mesh.
func (m *PatchMesh) VertexCount() int {
	return len(m.Positions)
}

// Attributes implements Mesh.
func (m *PatchMesh) Attributes() []Attribute {
	return []Attribute{
		vec3Attribute(AttrPosition, m.Positions),
		vec3Attribute(AttrNormal, m.Normals),
		vec3Attribute(AttrBinormal, m.Binormals),
		scalarAttribute(AttrArcLength, m.ArcLengths),
	}
}
