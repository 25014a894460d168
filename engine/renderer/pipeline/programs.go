package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/mesh.wgsl
var meshSource string

//go:embed shaders/mesh_textured.wgsl
var meshTexturedSource string

//go:embed shaders/line.wgsl
var lineSource string

//go:embed shaders/point_trail.wgsl
var pointTrailSource string

//go:embed shaders/sprite.wgsl
var spriteSource string

// Uniform block sizes shared with the WGSL programs.
const (
	// FrameUniformSize holds view_proj, view, proj (mat4x4<f32> each) and viewport (vec4<f32>).
	FrameUniformSize = 3*64 + 16
	// ObjectUniformSize holds model (mat4x4<f32>), color and params (vec4<f32> each).
	ObjectUniformSize = 64 + 16 + 16
)

// Vertex strides in bytes per program.
const (
	MeshStride         = 24 // position, normal
	MeshTexturedStride = 32 // position, normal, uv
	LineStride         = 28 // position, color
	PointTrailStride   = 40 // position, color, corner, percent
	SpriteStride       = 28 // position, corner, uv
)

// State is the fixed-function state a material asks for.
type State struct {
	Transparent bool
	DepthTest   bool
	DepthWrite  bool
}

// Key returns the cache key of a program under a state.
//
// Parameters:
//   - program: the program
//   - state: the fixed-function state
//
// Returns:
//   - string: the key
func Key(program Program, state State) string {
	return fmt.Sprintf("%s/blend=%t/test=%t/write=%t", program, state.Transparent, state.DepthTest, state.DepthWrite)
}

// For builds the pipeline description for a program under a state.
//
// Parameters:
//   - program: the program
//   - state: the fixed-function state
//
// Returns:
//   - Pipeline: the description
//   - error: error if the program is unknown
func For(program Program, state State) (Pipeline, error) {
	opts := []PipelineBuilderOption{
		WithBlendEnabled(state.Transparent),
		WithDepthTestEnabled(state.DepthTest),
		WithDepthWriteEnabled(state.DepthWrite),
	}

	switch program {
	case ProgramMesh:
		opts = append(opts,
			WithSource(meshSource),
			WithCullMode(wgpu.CullModeBack),
			WithVertexLayout(wgpu.VertexBufferLayout{
				ArrayStride: MeshStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}),
		)
	case ProgramMeshTextured:
		opts = append(opts,
			WithSource(meshTexturedSource),
			WithCullMode(wgpu.CullModeBack),
			WithTextured(true),
			WithVertexLayout(wgpu.VertexBufferLayout{
				ArrayStride: MeshTexturedStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
				},
			}),
		)
	case ProgramLine:
		opts = append(opts,
			WithSource(lineSource),
			WithTopology(wgpu.PrimitiveTopologyLineList),
			WithVertexLayout(wgpu.VertexBufferLayout{
				ArrayStride: LineStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
				},
			}),
		)
	case ProgramPointTrail:
		opts = append(opts,
			WithSource(pointTrailSource),
			WithVertexLayout(wgpu.VertexBufferLayout{
				ArrayStride: PointTrailStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2},
					{Format: wgpu.VertexFormatFloat32, Offset: 36, ShaderLocation: 3},
				},
			}),
		)
	case ProgramSprite:
		opts = append(opts,
			WithSource(spriteSource),
			WithTextured(true),
			WithVertexLayout(wgpu.VertexBufferLayout{
				ArrayStride: SpriteStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 20, ShaderLocation: 2},
				},
			}),
		)
	default:
		return nil, fmt.Errorf("unknown program %q", program)
	}

	return NewPipeline(Key(program, state), program, opts...), nil
}

// FrameLayout describes bind group 0: the frame uniform and the light block.
//
// Parameters:
//   - lightBlockSize: the byte size of the light uniform block
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout
func FrameLayout(lightBlockSize uint64) wgpu.BindGroupLayoutDescriptor {
	entry := func(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		}
		e.Buffer.Type = wgpu.BufferBindingTypeUniform
		e.Buffer.MinBindingSize = size
		return e
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "frame",
		Entries: []wgpu.BindGroupLayoutEntry{entry(0, FrameUniformSize), entry(1, lightBlockSize)},
	}
}

// ObjectLayout describes bind group 1: the per-object uniform plus, for textured programs,
// a texture at binding 1 and a sampler at binding 2.
//
// Parameters:
//   - textured: whether the texture and sampler entries are present
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout
func ObjectLayout(textured bool) wgpu.BindGroupLayoutDescriptor {
	uniform := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	uniform.Buffer.Type = wgpu.BufferBindingTypeUniform
	uniform.Buffer.MinBindingSize = ObjectUniformSize

	entries := []wgpu.BindGroupLayoutEntry{uniform}
	if textured {
		tex := wgpu.BindGroupLayoutEntry{Binding: 1, Visibility: wgpu.ShaderStageFragment}
		tex.Texture.SampleType = wgpu.TextureSampleTypeFloat
		tex.Texture.ViewDimension = wgpu.TextureViewDimension2D
		samp := wgpu.BindGroupLayoutEntry{Binding: 2, Visibility: wgpu.ShaderStageFragment}
		samp.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		entries = append(entries, tex, samp)
	}
	return wgpu.BindGroupLayoutDescriptor{Label: "object", Entries: entries}
}
