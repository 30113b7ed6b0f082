// Package flux drives the moving highlight drawn along a tube.
//
// The highlight is a band of the surface whose arc length falls in a
// window that advances once per tick. The renderer receives the current
// tick offset as a uniform; the geometry never changes.
package flux

import "github.com/chewxy/math32"

// Timer maps wall-clock time to the tick offset of the highlight.
type Timer struct {
	Up    bool    // offset counts 0..Step instead of Step..0
	Step  int     // ticks per cycle
	Speed float32 // ticks per second
}

// NewTimer returns a timer; non-positive step or speed fall back to the
// defaults of 8 ticks at 20 ticks per second.
func NewTimer(up bool, step int, speed float32) Timer {
	if step <= 0 {
		step = 8
	}
	if !(speed > 0) {
		speed = 20
	}
	return Timer{Up: up, Step: step, Speed: speed}
}

// Tick returns the offset within the current cycle, in [0, Step].
func (t Timer) Tick(seconds float64) int {
	if t.Step <= 0 || seconds < 0 {
		return 0
	}
	ticks := int64(seconds * float64(t.Speed))
	elapsed := int(ticks % int64(t.Step+1))
	if t.Up {
		return elapsed
	}
	return t.Step - elapsed
}

// Value returns Tick as the float the shader consumes.
func (t Timer) Value(seconds float64) float32 {
	return float32(t.Tick(seconds))
}

// Lit reports whether a point at arcLength is inside the highlight band
// for the given tick value. It mirrors the fragment shader test so that
// offline renderers agree with the GPU.
func Lit(arcLength, value float32, step int) bool {
	if step <= 0 {
		return false
	}
	period := float32(step + 1)
	phase := math32.Mod(arcLength-value, period)
	if phase < 0 {
		phase += period
	}
	return phase < 1
}
