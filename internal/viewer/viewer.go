// Package viewer shows a tube in an interactive SDL2 window.
//
// Left-drag orbits, the wheel zooms. F toggles the flux band, L forces the
// far polyline, F12 saves a screenshot and Escape quits.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubegen/internal/flux"
	"github.com/Faultbox/tubegen/internal/gpu"
	"github.com/Faultbox/tubegen/pkg/math"
	"github.com/Faultbox/tubegen/pkg/tube"
)

const fovY = 0.785398 // 45 degrees

// Options configures Run.
type Options struct {
	Window      WindowConfig
	Style       gpu.Style
	Flux        flux.Timer
	FluxEnabled bool
	LODDistance float32 // 0 switches at twice the initial camera distance
	Background  [4]float32
	Screenshots Screenshots
}

// state is the interactive part of the viewer, kept apart from SDL so the
// event handling can be driven directly.
type state struct {
	camera    *OrbitCamera
	dragging  bool
	fluxOn    bool
	forceFar  bool
	running   bool
	lodFar    bool
	threshold float32
	capture   bool
}

func (s *state) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			s.dragging = e.State == sdl.PRESSED
		}

	case *sdl.MouseMotionEvent:
		if s.dragging {
			s.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
		}

	case *sdl.MouseWheelEvent:
		s.camera.HandleZoom(float32(e.Y))

	case *sdl.KeyboardEvent:
		if e.State != sdl.PRESSED || e.Repeat != 0 {
			return
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE:
			s.running = false
		case sdl.K_f:
			s.fluxOn = !s.fluxOn
		case sdl.K_l:
			s.forceFar = !s.forceFar
		case sdl.K_F12:
			s.capture = true
		}
	}
}

// far reports whether the polyline is drawn this frame and whether that
// changed since the last call.
func (s *state) far() (far, changed bool) {
	far = s.forceFar || farView(s.camera.Distance, s.threshold)
	changed = far != s.lodFar
	s.lodFar = far
	return far, changed
}

// Run opens a window and draws lod until the user quits. lo and hi bound
// the tube and frame the initial view.
func Run(lod *tube.LOD, lo, hi math.Vec3, opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	win, err := NewWindow(opts.Window, log)
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL init: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	renderer, err := gpu.NewTubeRenderer(lod, opts.Style, log)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	cam := NewOrbitCamera()
	cam.FitToBounds(lo, hi, fovY)
	s := &state{
		camera:    cam,
		fluxOn:    opts.FluxEnabled,
		running:   true,
		threshold: lodThreshold(opts.LODDistance, cam.Distance),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)

	start := time.Now()
	for s.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			s.handle(event)
		}

		w, h := win.DrawableSize()
		if w == 0 || h == 0 {
			sdl.Delay(16) // minimized
			continue
		}
		gl.Viewport(0, 0, w, h)
		bg := opts.Background
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		near := max(cam.Distance*0.001, 0.001)
		proj := math.Perspective(fovY, float32(w)/float32(h), near, cam.Distance*10)
		viewProj := proj.Mul(cam.ViewMatrix())

		far, changed := s.far()
		if changed {
			log.Debug("level of detail changed", zap.Bool("far", far), zap.Float32("distance", cam.Distance))
		}

		var value float32
		if s.fluxOn {
			value = opts.Flux.Value(time.Since(start).Seconds())
		}
		renderer.SetFlux(s.fluxOn)
		renderer.Render(viewProj, cam.Position(), value, far)

		if s.capture {
			s.capture = false
			pixels := make([]byte, int(w)*int(h)*4)
			gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
			if path, err := opts.Screenshots.Capture(pixels, int(w), int(h)); err != nil {
				log.Warn("screenshot failed", zap.Error(err))
			} else {
				log.Info("screenshot saved", zap.String("path", path))
			}
		}

		win.SwapBuffers()
	}

	log.Info("viewer closed")
	return nil
}
