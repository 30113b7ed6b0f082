// Package trajectory loads point sequences for the tube builder and
// generates the demo curves.
package trajectory

import (
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tubegen/pkg/math"
)

// ErrBadPoint is returned when a point does not have exactly three
// finite coordinates.
var ErrBadPoint = errors.New("bad trajectory point")

// Trajectory is a named, ordered list of 3D points.
type Trajectory struct {
	Name   string      `yaml:"name,omitempty"`
	Points []math.Vec3 `yaml:"-"`
}

// document is the on-disk layout: points are written as [x, y, z] lists.
type document struct {
	Name   string      `yaml:"name,omitempty"`
	Points [][]float32 `yaml:"points,flow"`
}

// Load reads a trajectory from a YAML file.
func Load(path string) (*Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trajectory: %w", err)
	}
	tr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tr, nil
}

// Parse decodes a trajectory from YAML.
func Parse(data []byte) (*Trajectory, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	tr := &Trajectory{Name: doc.Name, Points: make([]math.Vec3, len(doc.Points))}
	for i, p := range doc.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates", ErrBadPoint, i, len(p))
		}
		for _, c := range p {
			if math32.IsNaN(c) || math32.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: point %d is not finite", ErrBadPoint, i)
			}
		}
		tr.Points[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return tr, nil
}

// Marshal encodes the trajectory as YAML.
func (t *Trajectory) Marshal() ([]byte, error) {
	doc := document{Name: t.Name, Points: make([][]float32, len(t.Points))}
	for i, p := range t.Points {
		doc.Points[i] = []float32{p.X, p.Y, p.Z}
	}
	return yaml.Marshal(&doc)
}

// Save writes the trajectory to path.
func (t *Trajectory) Save(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Bounds returns the axis-aligned box enclosing all points.
func (t *Trajectory) Bounds() (min, max math.Vec3) {
	if len(t.Points) == 0 {
		return
	}
	min, max = t.Points[0], t.Points[0]
	for _, p := range t.Points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Helix returns n points of a helix around the Y axis:
// point i is (sin 0.2i, 0.2i, cos 0.2i).
func Helix(n int) *Trajectory {
	pts := make([]math.Vec3, n)
	for i := range n {
		d := 0.2 * float32(i)
		pts[i] = math.Vec3{X: math32.Sin(d), Y: d, Z: math32.Cos(d)}
	}
	return &Trajectory{Name: "helix", Points: pts}
}

// Line returns n points spaced step apart along +X.
func Line(n int, step float32) *Trajectory {
	pts := make([]math.Vec3, n)
	for i := range n {
		pts[i] = math.Vec3{X: step * float32(i)}
	}
	return &Trajectory{Name: "line", Points: pts}
}
