package tube

import (
	"fmt"

	"github.com/Faultbox/tubegen/pkg/math"
)

// PolylineMesh is the far-view line strip: one vertex per section.
type PolylineMesh struct {
	Positions  []math.Vec3
	ArcLengths []float32
}

// BuildPolyline emits the section positions as a connected line strip.
func BuildPolyline(sections Sections) (*PolylineMesh, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("polyline: %w", ErrEmptySequence)
	}
	return &PolylineMesh{
		Positions:  sections.Positions(),
		ArcLengths: sections.ArcLengths(),
	}, nil
}

// VertexCount implements Mesh.
func (m *PolylineMesh) VertexCount() int {
	return len(m.Positions)
}

// Attributes implements Mesh.
func (m *PolylineMesh) Attributes() []Attribute {
	return []Attribute{
		vec3Attribute(AttrPosition, m.Positions),
		scalarAttribute(AttrArcLength, m.ArcLengths),
	}
}
