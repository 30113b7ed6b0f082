package tube

import "github.com/Faultbox/tubegen/pkg/math"

// Vertex attribute names shared with shader programs. Renderers resolve
// them to locations by name instead of relying on fixed slot numbers.
const (
	AttrPosition  = "position"
	AttrNormal    = "normal"
	AttrBinormal  = "binormal"
	AttrArcLength = "distanceTo0"
)

// Attribute is one named, tightly packed per-vertex float buffer.
type Attribute struct {
	Name       string
	Components int
	Data       []float32
}

// Count returns the number of vertices the attribute covers.
func (a Attribute) Count() int {
	if a.Components == 0 {
		return 0
	}
	return len(a.Data) / a.Components
}

// Mesh is the renderer-facing view of any tube mesh.
type Mesh interface {
	// Attributes returns every per-vertex buffer of the mesh.
	Attributes() []Attribute
	// VertexCount returns the number of vertices in each attribute.
	VertexCount() int
}

// FindAttribute returns the attribute with the given name from m.
func FindAttribute(m Mesh, name string) (Attribute, bool) {
	for _, a := range m.Attributes() {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func vec3Attribute(name string, vs []math.Vec3) Attribute {
	data := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		data = append(data, v.X, v.Y, v.Z)
	}
	return Attribute{Name: name, Components: 3, Data: data}
}

func scalarAttribute(name string, fs []float32) Attribute {
	data := make([]float32, len(fs))
	copy(data, fs)
	return Attribute{Name: name, Components: 1, Data: data}
}
