// Package export writes tube meshes as Wavefront OBJ.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/tubegen/pkg/tube"
)

// WriteOBJ writes the ring mesh with per-vertex normals and one quad face
// per ring segment. Indices in the file are 1-based.
func WriteOBJ(w io.Writer, name string, mesh *tube.RingMesh) error {
	if mesh == nil || mesh.VertexCount() == 0 {
		return tube.ErrEmptySequence
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tube: %d rings x %d radial vertices\n", mesh.Rings, mesh.Radial)
	fmt.Fprintf(bw, "# arc length: %g..%g\n", mesh.ArcLengths[0], mesh.ArcLengths[len(mesh.ArcLengths)-1])
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for q := 0; q+3 < len(mesh.Indices); q += 4 {
		a, b, c, d := mesh.Indices[q]+1, mesh.Indices[q+1]+1, mesh.Indices[q+2]+1, mesh.Indices[q+3]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d %d//%d\n", a, a, b, b, c, c, d, d)
	}
	return bw.Flush()
}

// WritePolylineOBJ writes the far-view line as a single OBJ line element.
func WritePolylineOBJ(w io.Writer, name string, line *tube.PolylineMesh) error {
	if line == nil || line.VertexCount() == 0 {
		return tube.ErrEmptySequence
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# polyline: %d vertices, length %g\n", line.VertexCount(), line.ArcLengths[len(line.ArcLengths)-1])
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range line.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	bw.WriteString("l")
	for i := range line.Positions {
		fmt.Fprintf(bw, " %d", i+1)
	}
	bw.WriteString("\n")
	return bw.Flush()
}
