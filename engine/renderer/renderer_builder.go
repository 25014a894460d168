package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSurfaceDescriptor sets the platform surface the WebGPU backend presents to.
//
// Parameters:
//   - desc: the surface descriptor from the window
//
// Returns:
//   - RendererBuilderOption: a function that applies the surface option to a renderer
func WithSurfaceDescriptor(desc *wgpu.SurfaceDescriptor) RendererBuilderOption {
	return func(r *renderer) {
		r.surfaceDescriptor = desc
	}
}

// WithBackend replaces the backend chosen by the backend type.
//
// Parameters:
//   - backend: the backend to draw with
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithAntialias enables 4x multisample anti-aliasing.
func WithAntialias(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.options.Antialias = enabled
	}
}

// WithAlpha gives the drawing buffer an alpha channel so a zero clear alpha shows the page behind it.
//
// Parameters:
//   - enabled: true for a translucent drawing buffer
//   - premultiplied: whether colour values are premultiplied by alpha when composited
//
// Returns:
//   - RendererBuilderOption: a function that applies the alpha option to a renderer
func WithAlpha(enabled, premultiplied bool) RendererBuilderOption {
	return func(r *renderer) {
		r.options.Alpha = enabled
		r.options.PremultipliedAlpha = premultiplied
	}
}

// WithPreserveDrawingBuffer keeps the previous frame's pixels instead of clearing.
func WithPreserveDrawingBuffer(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.options.PreserveDrawingBuffer = enabled
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.options.PresentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.options.ForceFallbackAdapter = force
	}
}

// WithPixelRatio sets the initial device pixel ratio.
func WithPixelRatio(ratio float64) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}
