package node

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// Releaser frees GPU-side resources attached to a geometry, material or texture.
// The renderer backend installs one the first time it uploads the resource.
type Releaser interface {
	Release()
}

// ReleaseFunc adapts a function to the Releaser interface.
type ReleaseFunc func()

func (f ReleaseFunc) Release() { f() }

// handle holds an optional GPU handle and a disposed flag. Release runs at most once.
type handle struct {
	mu       sync.Mutex
	gpu      Releaser
	disposed bool
}

func (h *handle) set(r Releaser) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		if r != nil {
			r.Release()
		}
		return
	}
	h.gpu = r
}

func (h *handle) get() Releaser {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gpu
}

func (h *handle) dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return
	}
	h.disposed = true
	if h.gpu != nil {
		h.gpu.Release()
		h.gpu = nil
	}
}

func (h *handle) isDisposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

// Geometry holds per-vertex data. Positions are xyz triples; the other streams are optional
// and, when present, carry one entry (Colors: rgb triple, UVs: uv pair) per vertex.
type Geometry struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	// Percents scales point size per vertex in the point-trail program.
	Percents []float32
	UVs      []float32
	Indices  []uint32

	h handle
}

// VertexCount returns the number of vertices described by Positions.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Vertex returns the i-th position.
func (g *Geometry) Vertex(i int) common.Vec3 {
	return common.Vec3{
		X: float64(g.Positions[i*3]),
		Y: float64(g.Positions[i*3+1]),
		Z: float64(g.Positions[i*3+2]),
	}
}

// SetHandle attaches the GPU resources created for this geometry. If the geometry was already
// disposed the handle is released immediately.
func (g *Geometry) SetHandle(r Releaser) { g.h.set(r) }

// Handle returns the attached GPU resources, or nil before the first upload.
func (g *Geometry) Handle() Releaser { return g.h.get() }

// Dispose releases the GPU resources. Safe to call more than once.
func (g *Geometry) Dispose() { g.h.dispose() }

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool { return g.h.isDisposed() }

// Texture is image data sampled by sprites and textured meshes.
type Texture struct {
	Data    common.TextureStagingData
	Sampler common.SamplerStagingData

	h handle
}

// NewTexture wraps decoded pixels.
func NewTexture(data common.TextureStagingData) *Texture {
	return &Texture{Data: data}
}

func (t *Texture) SetHandle(r Releaser) { t.h.set(r) }
func (t *Texture) Handle() Releaser     { return t.h.get() }
func (t *Texture) Dispose()             { t.h.dispose() }
func (t *Texture) Disposed() bool       { return t.h.isDisposed() }

// Material describes how a node is shaded.
type Material struct {
	Color   common.Color
	Opacity float64
	// Size is the point size for points, the line width for lines and the edge length for sprites.
	Size         float64
	VertexColors bool
	Transparent  bool
	DepthTest    bool
	DepthWrite   bool

	texture atomic.Pointer[Texture]
	h       handle
}

// NewMaterial creates an opaque, depth-tested material of the given colour.
func NewMaterial(color common.Color) *Material {
	return &Material{Color: color, Opacity: 1, Size: 1, DepthTest: true, DepthWrite: true}
}

// Texture returns the bound texture, or nil while none is bound (e.g. an image still loading).
func (m *Material) Texture() *Texture { return m.texture.Load() }

// SetTexture binds a texture. It may be called from any goroutine, including after the node
// has started rendering. A texture bound to an already disposed material is disposed at once.
func (m *Material) SetTexture(t *Texture) {
	m.texture.Store(t)
	if t != nil && m.h.isDisposed() {
		t.Dispose()
	}
}

func (m *Material) SetHandle(r Releaser) { m.h.set(r) }
func (m *Material) Handle() Releaser     { return m.h.get() }

// Dispose releases the material and its texture. Safe to call more than once.
func (m *Material) Dispose() {
	m.h.dispose()
	if t := m.texture.Load(); t != nil {
		t.Dispose()
	}
}

func (m *Material) Disposed() bool { return m.h.isDisposed() }
