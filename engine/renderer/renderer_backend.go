package renderer

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/pipeline"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend. It needs a surface descriptor.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects the recording backend that never touches a GPU.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples used for multisample anti-aliasing.
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
)

// DrawItem is one draw call: a node, the program that draws it and its world matrix.
type DrawItem struct {
	Node    node.Node
	Program pipeline.Program
	State   pipeline.State
	Model   [16]float32
	// Depth is the view-space distance used to order transparent items back to front.
	Depth float64
}

// LabelAnchor is the screen position of a label node for text overlays.
type LabelAnchor struct {
	Text string
	// X and Y are in CSS pixels from the top-left corner of the canvas.
	X, Y float64
	// Visible is false when the anchor is behind the camera or outside the clip volume.
	Visible bool
}

// Frame is everything a backend needs to draw one image.
type Frame struct {
	ViewProj [16]float32
	View     [16]float32
	Proj     [16]float32

	// Width and Height are the drawing buffer size in physical pixels.
	Width, Height int
	PixelRatio    float64

	// Clear is the clear colour; its alpha is the clear alpha.
	Clear common.Color

	Lights []light.Light
	Items  []DrawItem
	Labels []LabelAnchor
}

// RendererBackend draws frames prepared by the Renderer.
type RendererBackend interface {
	// Configure resizes the drawing buffer.
	//
	// Parameters:
	//   - width: the new width in physical pixels
	//   - height: the new height in physical pixels
	Configure(width, height int)

	// DrawFrame uploads any missing GPU resources for the frame's items, draws them and
	// presents the result.
	//
	// Parameters:
	//   - frame: the prepared frame
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	DrawFrame(frame *Frame) error

	// Release frees every backend-owned GPU object.
	Release()
}
