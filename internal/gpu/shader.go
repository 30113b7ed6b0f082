// Package gpu uploads tube meshes to OpenGL and compiles the programs that
// draw them. Every function here needs a current GL 4.1 context.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return link(
		stage{vertexSrc, gl.VERTEX_SHADER, "vertex"},
		stage{fragmentSrc, gl.FRAGMENT_SHADER, "fragment"},
	)
}

// CompileTessProgram links a program with tessellation control and
// evaluation stages between the vertex and fragment shaders.
func CompileTessProgram(vertexSrc, controlSrc, evalSrc, fragmentSrc string) (uint32, error) {
	return link(
		stage{vertexSrc, gl.VERTEX_SHADER, "vertex"},
		stage{controlSrc, gl.TESS_CONTROL_SHADER, "tess control"},
		stage{evalSrc, gl.TESS_EVALUATION_SHADER, "tess evaluation"},
		stage{fragmentSrc, gl.FRAGMENT_SHADER, "fragment"},
	)
}

type stage struct {
	source string
	kind   uint32
	name   string
}

func link(stages ...stage) (uint32, error) {
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, st := range stages {
		s, err := compileShader(st.source, st.kind, st.name)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}
