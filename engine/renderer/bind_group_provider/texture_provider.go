package bind_group_provider

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureProvider owns an uploaded texture, its view and its sampler. It is stored as a
// node texture's handle.
type TextureProvider struct {
	mu *sync.Mutex

	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

// NewTextureProvider wraps uploaded texture objects.
func NewTextureProvider(texture *wgpu.Texture, view *wgpu.TextureView, sampler *wgpu.Sampler) *TextureProvider {
	return &TextureProvider{mu: &sync.Mutex{}, texture: texture, view: view, sampler: sampler}
}

// View returns the texture view, or nil after release.
func (t *TextureProvider) View() *wgpu.TextureView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Sampler returns the sampler, or nil after release.
func (t *TextureProvider) Sampler() *wgpu.Sampler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sampler
}

// Release frees the GPU objects. Safe to call more than once.
func (t *TextureProvider) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
