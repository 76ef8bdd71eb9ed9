// Package shader provides OpenGL shader compilation, source loading and
// hot reload.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage names a pipeline stage in build errors.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// BuildError carries the driver's info log for a failed compile or link.
type BuildError struct {
	Stage Stage
	Log   string
}

func (e *BuildError) Error() string {
	if e.Stage == StageLink {
		return "link: " + e.Log
	}
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// CompileProgram compiles a vertex and fragment shader and links them.
// A *BuildError is returned when the driver rejects either step.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		kind  uint32
		stage Stage
		src   string
	}{
		{gl.VERTEX_SHADER, StageVertex, vertexSrc},
		{gl.FRAGMENT_SHADER, StageFragment, fragmentSrc},
	}

	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		s, err := compileShader(st.src, st.kind, st.stage)
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
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf []byte) { gl.GetProgramInfoLog(program, logLen, nil, &buf[0]) })
		gl.DeleteProgram(program)
		return 0, &BuildError{Stage: StageLink, Log: log}
	}

	return program, nil
}

func compileShader(source string, kind uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf []byte) { gl.GetShaderInfoLog(shader, logLen, nil, &buf[0]) })
		gl.DeleteShader(shader)
		return 0, &BuildError{Stage: stage, Log: log}
	}

	return shader, nil
}

// infoLog reads a GL info log of n bytes. Some drivers report zero length
// for a failed compile.
func infoLog(n int32, read func([]byte)) string {
	if n <= 0 {
		return "(no log)"
	}
	buf := make([]byte, n)
	read(buf)
	return strings.TrimRight(string(buf), "\x00\n")
}

// GetUniform returns the location of a uniform, or -1 if the linker
// dropped it or it does not exist.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
