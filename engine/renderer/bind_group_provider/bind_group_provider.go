package bind_group_provider

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	mu *sync.Mutex

	// label is a debug label added for convenience.
	label string

	// GPU resources owned by this provider, released together.
	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup

	vertexCount int
	indexCount  int

	// boundTexture is the texture view baked into the bind group; a change forces a rebuild.
	boundTexture *wgpu.TextureView

	released bool
}

// BindGroupProvider holds the GPU resources of one drawable scene node: its vertex and index
// buffers, its object uniform buffer and the bind group referencing them. The provider is
// stored as the node geometry's handle, so disposing the geometry releases the GPU side.
type BindGroupProvider interface {
	// Release releases every GPU resource held by the provider. Safe to call more than once.
	Release()

	// Released reports whether Release has been called.
	Released() bool

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	UniformBuffer() *wgpu.Buffer
	BindGroup() *wgpu.BindGroup
	VertexCount() int
	IndexCount() int

	// BoundTexture returns the texture view baked into the current bind group, or nil.
	BoundTexture() *wgpu.TextureView

	SetMesh(vertexBuffer *wgpu.Buffer, vertexCount int, indexBuffer *wgpu.Buffer, indexCount int)
	SetUniformBuffer(buf *wgpu.Buffer)

	// SetBindGroup replaces the bind group, releasing the previous one.
	//
	// Parameters:
	//   - bg: the new bind group
	//   - texture: the texture view baked into it, or nil
	SetBindGroup(bg *wgpu.BindGroup, texture *wgpu.TextureView)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: a debug label used in GPU object names
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		mu:    &sync.Mutex{},
		label: label,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexBuffer
}

func (p *bindGroupProvider) UniformBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uniformBuffer
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bindGroup
}

func (p *bindGroupProvider) VertexCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexCount
}

func (p *bindGroupProvider) IndexCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexCount
}

func (p *bindGroupProvider) BoundTexture() *wgpu.TextureView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.boundTexture
}

func (p *bindGroupProvider) SetMesh(vertexBuffer *wgpu.Buffer, vertexCount int, indexBuffer *wgpu.Buffer, indexCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vertexBuffer, p.vertexCount = vertexBuffer, vertexCount
	p.indexBuffer, p.indexCount = indexBuffer, indexCount
}

func (p *bindGroupProvider) SetUniformBuffer(buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uniformBuffer = buf
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup, texture *wgpu.TextureView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
	p.boundTexture = texture
}

func (p *bindGroupProvider) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func (p *bindGroupProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.released = true

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.boundTexture = nil
}
