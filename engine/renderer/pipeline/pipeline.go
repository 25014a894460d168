package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Program identifies the WGSL program a pipeline runs.
type Program string

const (
	// ProgramMesh draws lit triangle meshes (earth sphere).
	ProgramMesh Program = "mesh"
	// ProgramMeshTextured draws lit meshes sampling a surface texture (earth with an image).
	ProgramMeshTextured Program = "mesh_textured"
	// ProgramLine draws coloured line lists (paths, map outlines, axes).
	ProgramLine Program = "line"
	// ProgramPointTrail draws screen-space point quads whose size scales with a per-vertex percent.
	ProgramPointTrail Program = "point_trail"
	// ProgramSprite draws textured camera-facing quads.
	ProgramSprite Program = "sprite"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	program     Program
	source      string

	vertexEntry   string
	fragmentEntry string
	vertexLayout  wgpu.VertexBufferLayout
	textured      bool

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: its WGSL program, vertex layout and fixed-function state.
// The backend creates the GPU object lazily and stores it back via SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the unique cache key of this pipeline.
	//
	// Returns:
	//   - string: the key
	PipelineKey() string

	// Program returns the program the pipeline runs.
	Program() Program

	// Source returns the WGSL source holding both entry points.
	Source() string

	// VertexEntry returns the vertex entry point name.
	VertexEntry() string

	// FragmentEntry returns the fragment entry point name.
	FragmentEntry() string

	// VertexLayout returns the single interleaved vertex buffer layout.
	VertexLayout() wgpu.VertexBufferLayout

	// Textured reports whether the object bind group carries a texture and sampler.
	Textured() bool

	// Pipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline or nil
	Pipeline() *wgpu.RenderPipeline

	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	BlendEnabled() bool
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline created by the backend.
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description with depth test and write on, blending off,
// no culling and triangle-list topology.
//
// Parameters:
//   - pipelineKey: the unique cache key
//   - program: the program to run
//   - opts: functional options overriding the defaults
//
// Returns:
//   - Pipeline: the description
func NewPipeline(pipelineKey string, program Program, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		program:           program,
		vertexEntry:       "vs_main",
		fragmentEntry:     "fs_main",
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string                   { return p.pipelineKey }
func (p *pipeline) Program() Program                      { return p.program }
func (p *pipeline) Source() string                        { return p.source }
func (p *pipeline) VertexEntry() string                   { return p.vertexEntry }
func (p *pipeline) FragmentEntry() string                 { return p.fragmentEntry }
func (p *pipeline) VertexLayout() wgpu.VertexBufferLayout { return p.vertexLayout }
func (p *pipeline) Textured() bool                        { return p.textured }
func (p *pipeline) Pipeline() *wgpu.RenderPipeline        { return p.renderPipeline }
func (p *pipeline) DepthTestEnabled() bool                { return p.depthTestEnabled }
func (p *pipeline) DepthWriteEnabled() bool               { return p.depthWriteEnabled }
func (p *pipeline) BlendEnabled() bool                    { return p.blendEnabled }
func (p *pipeline) CullMode() wgpu.CullMode               { return p.cullMode }
func (p *pipeline) Topology() wgpu.PrimitiveTopology      { return p.topology }
func (p *pipeline) FrontFace() wgpu.FrontFace             { return p.frontFace }
func (p *pipeline) WriteMask() wgpu.ColorWriteMask        { return p.writeMask }
func (p *pipeline) BlendState() *wgpu.BlendState          { return p.blendState }

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
