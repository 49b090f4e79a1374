//go:build !nogpu

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plotgpu/batch"
)

//go:embed shaders/mesh.wgsl
var meshShaderSource string

//go:embed shaders/shape.wgsl
var shapeShaderSource string

//go:embed shaders/curve.wgsl
var curveShaderSource string

// shaderSource returns the WGSL program of a pipeline kind.
func shaderSource(kind batch.Kind) string {
	switch kind {
	case batch.KindMesh:
		return meshShaderSource
	case batch.KindShape:
		return shapeShaderSource
	case batch.KindCurve:
		return curveShaderSource
	default:
		return ""
	}
}

// compileSPIRV compiles WGSL to SPIR-V words with naga.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not word aligned", ErrShaderCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// createShader creates the shader module for kind, from WGSL or, when
// spirv is set, from naga's SPIR-V output.
func createShader(device hal.Device, kind batch.Kind, spirv bool) (hal.ShaderModule, error) {
	src := shaderSource(kind)
	if src == "" {
		return nil, fmt.Errorf("%w: %s shader source is empty", ErrShaderCompile, kind)
	}

	desc := &hal.ShaderModuleDescriptor{
		Label:  kind.String() + "_shader",
		Source: hal.ShaderSource{WGSL: src},
	}
	if spirv {
		words, err := compileSPIRV(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		desc.Source = hal.ShaderSource{SPIRV: words}
	}

	module, err := device.CreateShaderModule(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, kind, err)
	}
	return module, nil
}
