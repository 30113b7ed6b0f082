package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubegen/internal/gpu/shaders"
	"github.com/Faultbox/tubegen/pkg/math"
	"github.com/Faultbox/tubegen/pkg/tube"
)

// Style holds the per-tube uniforms.
type Style struct {
	Color          [4]float32
	FluxColor      [4]float32
	FluxStep       int // 0 disables the flux band
	Radius         float32
	RadialVertices int
	LineWidth      float32
}

// TubeRenderer draws one tube: the near mesh of its strategy when close,
// the polyline when far.
type TubeRenderer struct {
	style   Style
	fluxOff bool

	nearProg *Program
	lineProg *Program
	near     *Mesh
	far      *Mesh
}

// NewTubeRenderer compiles the programs for lod.Strategy and uploads lod.
func NewTubeRenderer(lod *tube.LOD, style Style, log *zap.Logger) (*TubeRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &TubeRenderer{style: style}

	var (
		id  uint32
		err error
	)
	switch lod.Strategy {
	case tube.StrategyPatch:
		id, err = CompileTessProgram(shaders.PatchVertexShader, shaders.PatchControlShader,
			shaders.PatchEvalShader, shaders.TubeFragmentShader)
	default:
		id, err = CompileProgram(shaders.TubeVertexShader, shaders.TubeFragmentShader)
	}
	if err != nil {
		return nil, fmt.Errorf("tube program: %w", err)
	}
	r.nearProg = NewProgram(id)

	id, err = CompileProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		r.nearProg.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.lineProg = NewProgram(id)

	if lod.Strategy == tube.StrategyPatch {
		r.near, err = UploadPatches(r.nearProg, lod.Patch)
	} else {
		r.near, err = UploadRing(r.nearProg, lod.Ring)
	}
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("upload near mesh: %w", err)
	}
	r.far, err = UploadPolyline(r.lineProg, lod.Far)
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("upload polyline: %w", err)
	}

	log.Info("tube uploaded",
		zap.Stringer("strategy", lod.Strategy),
		zap.Int("nearVertices", lod.Near().VertexCount()),
		zap.Int("farVertices", lod.Far.VertexCount()),
		zap.Strings("unusedNear", r.near.Skipped),
		zap.Strings("unusedFar", r.far.Skipped),
	)
	return r, nil
}

// Render draws the tube. eye is the camera position and also the light
// position, fluxValue the current flux timer value.
func (r *TubeRenderer) Render(viewProj math.Mat4, eye math.Vec3, fluxValue float32, far bool) {
	p, mesh := r.nearProg, r.near
	if far {
		p, mesh = r.lineProg, r.far
		gl.LineWidth(r.style.LineWidth)
	}

	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec4("uColor", r.style.Color)
	p.SetVec4("uFluxColor", r.style.FluxColor)
	step := float32(r.style.FluxStep)
	if r.fluxOff {
		step = 0
	}
	p.SetFloat("uFluxStep", step)
	p.SetFloat("uTime", fluxValue)
	if !far {
		p.SetVec3("uLightPos", eye)
		p.SetFloat("uRadius", r.style.Radius)
		p.SetFloat("uRadial", float32(r.style.RadialVertices))
	}
	mesh.Draw()
}

// SetFlux turns the flux band on or off without touching the style.
func (r *TubeRenderer) SetFlux(on bool) {
	r.fluxOff = !on
}

// Destroy releases all GPU resources.
func (r *TubeRenderer) Destroy() {
	if r.near != nil {
		r.near.Delete()
	}
	if r.far != nil {
		r.far.Delete()
	}
	if r.nearProg != nil {
		r.nearProg.Delete()
	}
	if r.lineProg != nil {
		r.lineProg.Delete()
	}
}
