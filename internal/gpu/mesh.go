package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tubegen/pkg/tube"
)

// ErrNoPosition is returned when a program does not consume the position
// attribute, so nothing it draws could depend on the mesh.
var ErrNoPosition = errors.New("program has no position attribute")

// binding pairs a mesh attribute with its program location.
type binding struct {
	attr     tube.Attribute
	location uint32
}

// bindAttributes resolves attributes by name. Attributes the program does
// not consume are returned in skipped.
func bindAttributes(attrs []tube.Attribute, locate func(string) int32) (bound []binding, skipped []string, err error) {
	var hasPosition bool
	for _, a := range attrs {
		loc := locate(a.Name)
		if loc < 0 {
			skipped = append(skipped, a.Name)
			continue
		}
		if a.Name == tube.AttrPosition {
			hasPosition = true
		}
		bound = append(bound, binding{attr: a, location: uint32(loc)})
	}
	if !hasPosition {
		return nil, nil, ErrNoPosition
	}
	return bound, skipped, nil
}

// padToPatches repeats the final vertex of every attribute until the
// vertex count is a multiple of size. GL drops a trailing partial patch;
// the repeated points only add zero-length segments.
func padToPatches(attrs []tube.Attribute, vertexCount, size int) ([]tube.Attribute, int) {
	rem := vertexCount % size
	if vertexCount == 0 || rem == 0 {
		return attrs, vertexCount
	}
	extra := size - rem

	out := make([]tube.Attribute, len(attrs))
	for i, a := range attrs {
		data := make([]float32, len(a.Data), len(a.Data)+extra*a.Components)
		copy(data, a.Data)
		last := a.Data[len(a.Data)-a.Components:]
		for range extra {
			data = append(data, last...)
		}
		out[i] = tube.Attribute{Name: a.Name, Components: a.Components, Data: data}
	}
	return out, vertexCount + extra
}

// Mesh is a tube mesh resident on the GPU.
type Mesh struct {
	vao       uint32
	vbos      []uint32
	ebo       uint32
	mode      uint32
	count     int32
	indexed   bool
	patchSize int32

	// Skipped lists attributes the program ignored.
	Skipped []string
}

func upload(p *Program, attrs []tube.Attribute, vertexCount int, indices []uint32, mode uint32) (*Mesh, error) {
	if vertexCount == 0 {
		return nil, tube.ErrEmptySequence
	}
	bound, skipped, err := bindAttributes(attrs, p.Attrib)
	if err != nil {
		return nil, err
	}

	m := &Mesh{mode: mode, count: int32(vertexCount), Skipped: skipped}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	// One tightly packed VBO per attribute.
	m.vbos = make([]uint32, len(bound))
	gl.GenBuffers(int32(len(bound)), &m.vbos[0])
	for i, b := range bound {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(b.attr.Data)*4, unsafe.Pointer(&b.attr.Data[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(b.location, int32(b.attr.Components), gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(b.location)
	}

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
		m.indexed = true
		m.count = int32(len(indices))
	}

	gl.BindVertexArray(0)
	return m, nil
}

// UploadRing uploads the ring mesh as indexed triangles.
func UploadRing(p *Program, ring *tube.RingMesh) (*Mesh, error) {
	if ring == nil {
		return nil, tube.ErrEmptySequence
	}
	tris := ring.Triangles()
	if len(tris) == 0 {
		return nil, fmt.Errorf("%w: ring mesh has a single ring", tube.ErrInvalidInput)
	}
	return upload(p, ring.Attributes(), ring.VertexCount(), tris, gl.TRIANGLES)
}

// UploadPatches uploads the control point stream for the tessellation
// program, padded to whole patches.
func UploadPatches(p *Program, patches *tube.PatchMesh) (*Mesh, error) {
	if patches == nil {
		return nil, tube.ErrEmptySequence
	}
	attrs, n := padToPatches(patches.Attributes(), patches.VertexCount(), tube.PatchSize)
	m, err := upload(p, attrs, n, nil, gl.PATCHES)
	if err != nil {
		return nil, err
	}
	m.patchSize = tube.PatchSize
	return m, nil
}

// UploadPolyline uploads the far-view line strip.
func UploadPolyline(p *Program, line *tube.PolylineMesh) (*Mesh, error) {
	if line == nil {
		return nil, tube.ErrEmptySequence
	}
	return upload(p, line.Attributes(), line.VertexCount(), nil, gl.LINE_STRIP)
}

// Draw issues the draw call. The caller binds the program and uniforms.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	switch {
	case m.mode == gl.PATCHES:
		gl.PatchParameteri(gl.PATCH_VERTICES, m.patchSize)
		gl.DrawArrays(gl.PATCHES, 0, m.count)
	case m.indexed:
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	default:
		gl.DrawArrays(m.mode, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GPU buffers.
func (m *Mesh) Delete() {
	if len(m.vbos) > 0 {
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteVertexArrays(1, &m.vao)
}
