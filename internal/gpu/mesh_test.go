package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tubegen/internal/gpu/shaders"
	"github.com/Faultbox/tubegen/pkg/math"
	"github.com/Faultbox/tubegen/pkg/tube"
)

func locations(m map[string]int32) func(string) int32 {
	return func(name string) int32 {
		if loc, ok := m[name]; ok {
			return loc
		}
		return -1
	}
}

func TestBindAttributesByName(t *testing.T) {
	attrs := []tube.Attribute{
		{Name: tube.AttrPosition, Components: 3},
		{Name: tube.AttrNormal, Components: 3},
		{Name: tube.AttrArcLength, Components: 1},
	}

	// Locations are whatever the linker picked, not attribute order.
	bound, skipped, err := bindAttributes(attrs, locations(map[string]int32{
		tube.AttrArcLength: 0,
		tube.AttrPosition:  2,
	}))
	require.NoError(t, err)
	require.Len(t, bound, 2)
	assert.Equal(t, tube.AttrPosition, bound[0].attr.Name)
	assert.Equal(t, uint32(2), bound[0].location)
	assert.Equal(t, tube.AttrArcLength, bound[1].attr.Name)
	assert.Equal(t, uint32(0), bound[1].location)
	assert.Equal(t, []string{tube.AttrNormal}, skipped)
}

func TestBindAttributesNeedsPosition(t *testing.T) {
	attrs := []tube.Attribute{{Name: tube.AttrNormal, Components: 3}}
	_, _, err := bindAttributes(attrs, locations(map[string]int32{tube.AttrNormal: 1}))
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestPadToPatches(t *testing.T) {
	sections := make(tube.Sections, 40)
	for i := range sections {
		sections[i] = tube.Section{
			Position: math.Vec3{X: float32(i)},
			Normal:   math.Vec3{Y: 1},
			Binormal: math.Vec3{Z: 1},
		}
	}
	patches, err := tube.BuildPatches(sections)
	require.NoError(t, err)
	require.Equal(t, 41, patches.VertexCount())

	attrs, n := padToPatches(patches.Attributes(), patches.VertexCount(), tube.PatchSize)
	assert.Equal(t, 64, n)
	for _, a := range attrs {
		assert.Equal(t, 64, a.Count(), a.Name)
	}

	pos, ok := findAttr(attrs, tube.AttrPosition)
	require.True(t, ok)
	assert.Equal(t, float32(39), pos.Data[3*40])
	assert.Equal(t, float32(39), pos.Data[3*63])

	// Source buffers are left alone.
	orig, _ := tube.FindAttribute(patches, tube.AttrPosition)
	assert.Len(t, orig.Data, 41*3)
}

func TestPadToPatchesWholePatches(t *testing.T) {
	attrs := []tube.Attribute{{Name: tube.AttrArcLength, Components: 1, Data: make([]float32, 64)}}
	out, n := padToPatches(attrs, 64, 32)
	assert.Equal(t, 64, n)
	assert.Equal(t, attrs, out)

	out, n = padToPatches(nil, 0, 32)
	assert.Zero(t, n)
	assert.Empty(t, out)
}

func TestShaderSourcesUseAttributeNames(t *testing.T) {
	sources := map[string][]string{
		shaders.TubeVertexShader:  {tube.AttrPosition, tube.AttrNormal, tube.AttrArcLength},
		shaders.PatchVertexShader: {tube.AttrPosition, tube.AttrNormal, tube.AttrBinormal, tube.AttrArcLength},
		shaders.LineVertexShader:  {tube.AttrPosition, tube.AttrArcLength},
	}
	for src, names := range sources {
		for _, name := range names {
			assert.Regexp(t, `in (float|vec3) `+name+`;`, src)
		}
	}
	assert.Contains(t, shaders.PatchControlShader, "layout(vertices = 32) out;")
}

func findAttr(attrs []tube.Attribute, name string) (tube.Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return tube.Attribute{}, false
}
