package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option for configuring a BindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithUniformBuffer seeds the provider with an existing uniform buffer.
func WithUniformBuffer(buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.uniformBuffer = buf
	}
}

// WithMesh seeds the provider with existing vertex and index buffers.
func WithMesh(vertexBuffer *wgpu.Buffer, vertexCount int, indexBuffer *wgpu.Buffer, indexCount int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexBuffer, p.vertexCount = vertexBuffer, vertexCount
		p.indexBuffer, p.indexCount = indexBuffer, indexCount
	}
}
