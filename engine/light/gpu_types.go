package light

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// MaxLights is the number of lights the mesh shader evaluates. Extra lights are ignored.
const MaxLights = 4

// GPULight is the GPU-aligned representation of one light.
// Size: 48 bytes (three vec4<f32>).
//
//	struct Light {
//	    color_intensity: vec4<f32>,  // rgb colour, w intensity
//	    position_type:   vec4<f32>,  // xyz position, w type (0 dir, 1 ambient, 2 point)
//	    direction_range: vec4<f32>,  // xyz direction, w range
//	};
type GPULight struct {
	ColorIntensity [4]float32
	PositionType   [4]float32
	DirectionRange [4]float32
}

// GPULightSize is the byte size of a GPULight.
const GPULightSize = 48

// GPULightBlockSize is the byte size of the light uniform block: a vec4<u32> header holding
// the light count followed by MaxLights lights.
const GPULightBlockSize = 16 + MaxLights*GPULightSize

// ToGPU converts a light into its GPU representation.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GPULight: the packed light
func ToGPU(l Light) GPULight {
	c := l.Color()
	p := l.Position()
	d := l.Direction()
	return GPULight{
		ColorIntensity: [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(l.Intensity())},
		PositionType:   [4]float32{float32(p.X), float32(p.Y), float32(p.Z), float32(l.Type())},
		DirectionRange: [4]float32{float32(d.X), float32(d.Y), float32(d.Z), float32(l.Range())},
	}
}

// Collect gathers the lights of every visible KindLight node in the subtree.
//
// Parameters:
//   - root: the scene root
//
// Returns:
//   - []Light: the lights in traversal order
func Collect(root node.Node) []Light {
	var out []Light
	node.TraverseVisible(root, func(n node.Node) {
		if n.Kind() != node.KindLight {
			return
		}
		if l, ok := n.Payload().(Light); ok {
			out = append(out, l)
		}
	})
	return out
}

// MarshalBlock packs up to MaxLights lights into the light uniform block.
//
// Parameters:
//   - lights: the lights to pack
//
// Returns:
//   - []byte: GPULightBlockSize bytes
func MarshalBlock(lights []Light) []byte {
	buf := make([]byte, GPULightBlockSize)
	n := min(len(lights), MaxLights)
	binary.LittleEndian.PutUint32(buf[0:], uint32(n))
	for i := 0; i < n; i++ {
		g := ToGPU(lights[i])
		off := 16 + i*GPULightSize
		for j, v := range append(append(g.ColorIntensity[:], g.PositionType[:]...), g.DirectionRange[:]...) {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v))
		}
	}
	return buf
}
