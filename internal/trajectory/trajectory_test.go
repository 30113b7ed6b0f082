package trajectory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tubegen/pkg/math"
)

func TestParse(t *testing.T) {
	data := []byte(`
name: bend
points:
  - [0, 0, 0]
  - [1, 0, 0]
  - [2, 0.5, -1]
`)
	tr, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "bend", tr.Name)
	assert.Equal(t, []math.Vec3{{}, {X: 1}, {X: 2, Y: 0.5, Z: -1}}, tr.Points)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"two coordinates":  "points:\n  - [0, 0]\n",
		"four coordinates": "points:\n  - [0, 0, 0, 1]\n",
		"not finite":       "points:\n  - [0, .inf, 0]\n",
		"nan":              "points:\n  - [.nan, 0, 0]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrBadPoint)
		})
	}

	_, err := Parse([]byte("points: [oops"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	tr, err := Parse([]byte("name: nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, tr.Points)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helix.yaml")
	want := Helix(25)
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Points, got.Points)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHelix(t *testing.T) {
	tr := Helix(32)
	require.Len(t, tr.Points, 32)
	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: 1}, tr.Points[0])

	// Every point sits on the unit cylinder around Y.
	for i, p := range tr.Points {
		assert.InDelta(t, 1, p.X*p.X+p.Z*p.Z, 1e-5, "point %d", i)
		assert.InDelta(t, 0.2*float32(i), p.Y, 1e-5, "point %d", i)
	}
}

func TestLine(t *testing.T) {
	tr := Line(4, 0.5)
	assert.Equal(t, []math.Vec3{{}, {X: 0.5}, {X: 1}, {X: 1.5}}, tr.Points)
	assert.Empty(t, Line(0, 1).Points)
}

func TestBounds(t *testing.T) {
	tr := &Trajectory{Points: []math.Vec3{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 5}}}
	min, max := tr.Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: -2, Z: 0}, min)
	assert.Equal(t, math.Vec3{X: 1, Y: 4, Z: 5}, max)

	min, max = (&Trajectory{}).Bounds()
	assert.Equal(t, math.Vec3{}, min)
	assert.Equal(t, math.Vec3{}, max)
}
