// Package shader compiles and links the GLSL programs the renderer uses.
package shader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrMissingUniform is returned by RequireUniform for names the linked
// program does not expose.
var ErrMissingUniform = errors.New("uniform not found")

// LoadProgram reads a vertex and a fragment shader from disk and links
// them. Errors name the offending file.
func LoadProgram(vertexPath, fragmentPath string) (uint32, error) {
	vertexSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, fmt.Errorf("reading vertex shader: %w", err)
	}
	fragmentSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("reading fragment shader: %w", err)
	}

	return compileProgram(string(vertexSrc), string(fragmentSrc), vertexPath, fragmentPath)
}

// compileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func compileProgram(vertexSrc, fragmentSrc, vertexName, fragmentName string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, vertexName)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, fragmentName)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program, err := link(vertShader, fragShader)
	if err != nil {
		return 0, fmt.Errorf("%s + %s: %w", vertexName, fragmentName, err)
	}
	return program, nil
}

func link(vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}

	return program, nil
}

// compileShader compiles a single shader of the given type. name labels
// errors: a stage name or a file path.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compiling %s: %s", name, log)
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1 if
// the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// RequireUniform is like GetUniform but fails for missing uniforms.
func RequireUniform(program uint32, name string) (int32, error) {
	loc := GetUniform(program, name)
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q in program %d", ErrMissingUniform, name, program)
	}
	return loc, nil
}

// DeleteProgram frees a linked program.
func DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func shaderLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return "(no log)"
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return gl.GoStr(&log[0])
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return "(no log)"
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return gl.GoStr(&log[0])
}
