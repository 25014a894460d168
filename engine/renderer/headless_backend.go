package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// headlessHandle stands in for GPU resources so disposal can be observed without a device.
type headlessHandle struct {
	released *atomic.Int64
}

func (h headlessHandle) Release() { h.released.Add(1) }

// HeadlessBackend records frames instead of drawing them. It attaches a counting handle to every
// geometry and texture it sees, the same way the WebGPU backend attaches GPU resources.
type HeadlessBackend struct {
	mu *sync.Mutex

	width, height int
	frames        []Frame
	keep          int
	uploads       int
	released      atomic.Int64
	closed        bool
}

var _ RendererBackend = &HeadlessBackend{}

// NewHeadlessBackend creates a backend that keeps the last 16 frames.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{mu: &sync.Mutex{}, keep: 16}
}

func (h *HeadlessBackend) Configure(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

func (h *HeadlessBackend) DrawFrame(frame *Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, item := range frame.Items {
		if g := item.Node.Geometry(); g != nil && g.Handle() == nil {
			g.SetHandle(headlessHandle{released: &h.released})
			h.uploads++
		}
		if m := item.Node.Material(); m != nil {
			if t := m.Texture(); t != nil && t.Handle() == nil {
				t.SetHandle(headlessHandle{released: &h.released})
				h.uploads++
			}
		}
	}

	h.frames = append(h.frames, *frame)
	if len(h.frames) > h.keep {
		h.frames = h.frames[len(h.frames)-h.keep:]
	}
	return nil
}

func (h *HeadlessBackend) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.frames = nil
}

// Size returns the configured drawing buffer size.
func (h *HeadlessBackend) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// LastFrame returns the most recent frame, or false if none was drawn.
func (h *HeadlessBackend) LastFrame() (Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return Frame{}, false
	}
	return h.frames[len(h.frames)-1], true
}

// Uploads returns how many geometries and textures received a handle.
func (h *HeadlessBackend) Uploads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uploads
}

// ReleasedHandles returns how many attached handles were released by node disposal.
func (h *HeadlessBackend) ReleasedHandles() int {
	return int(h.released.Load())
}

// Closed reports whether Release was called.
func (h *HeadlessBackend) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// ItemNames returns the node names of a frame's draw list in draw order.
func ItemNames(f Frame) []string {
	names := make([]string, 0, len(f.Items))
	for _, it := range f.Items {
		names = append(names, it.Node.Name())
	}
	return names
}

var _ node.Releaser = headlessHandle{}
