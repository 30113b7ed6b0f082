// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TubeVertexShader transforms the explicit ring mesh.
//
//go:embed tube.vert
var TubeVertexShader string

// TubeFragmentShader lights the tube surface and draws the flux band.
// It is shared by the ring and patch programs.
//
//go:embed tube.frag
var TubeFragmentShader string

// PatchVertexShader passes control points through to tessellation.
//
//go:embed patch.vert
var PatchVertexShader string

// PatchControlShader sets tessellation levels for each 32-point patch.
//
//go:embed patch.tesc
var PatchControlShader string

// PatchEvalShader extrudes the tube surface from the control points.
//
//go:embed patch.tese
var PatchEvalShader string

// LineVertexShader transforms the far-view polyline.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader colors the polyline and its flux band.
//
//go:embed line.frag
var LineFragmentShader string
