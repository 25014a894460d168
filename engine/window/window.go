// Package window hosts a globe in a native GLFW window. The window is a surface.Surface so the
// scene controller treats it like any other host element.
package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a native host surface with pointer input.
type Window interface {
	surface.Surface

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in screen coordinates
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float64))

	// SetPointerDownCallback sets the callback for primary button presses.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerDownCallback(callback func(x, y float64))

	// SetPointerUpCallback sets the callback for primary button releases.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerUpCallback(callback func(x, y float64))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerMoveCallback(callback func(x, y float64))

	// SetHoverCallback sets the callback fired when the cursor enters or leaves the window.
	//
	// Parameters:
	//   - callback: function receiving true on enter and false on leave
	SetHoverCallback(callback func(inside bool))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	mu *sync.Mutex

	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the client area in screen coordinates.
	width  int
	height int
	// pixelRatio is the content scale reported by the platform.
	pixelRatio float64

	style    *surface.Style
	children []surface.Element

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float64)
	onPointerDown func(x, y float64)
	onPointerUp   func(x, y float64)
	onPointerMove func(x, y float64)
	onHover       func(inside bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a Window with the specified options.
// It panics when the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		mu:         &sync.Mutex{},
		title:      "Globe",
		maxWidth:   3840,
		maxHeight:  2160,
		minWidth:   200,
		minHeight:  200,
		width:      1280,
		height:     720,
		pixelRatio: 1,
		style:      surface.NewStyle(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float64)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetHoverCallback(callback func(inside bool)) {
	w.onHover = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Style() *surface.Style {
	return w.style
}

func (w *engineWindow) Bounds() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *engineWindow) PixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pixelRatio
}

// Parent returns nil; a native window is the top of its hierarchy.
func (w *engineWindow) Parent() surface.Element {
	return nil
}

func (w *engineWindow) Append(child surface.Element) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.children = append(w.children, child)
}

func (w *engineWindow) Children() []surface.Element {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]surface.Element, len(w.children))
	copy(out, w.children)
	return out
}

func (w *engineWindow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.children = nil
}

func (w *engineWindow) setSize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
}

func (w *engineWindow) setPixelRatio(ratio float64) {
	if ratio <= 0 {
		return
	}
	w.mu.Lock()
	w.pixelRatio = ratio
	w.mu.Unlock()
}
