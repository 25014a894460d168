package renderer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-globe/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoSurfaceDescriptor is returned when the WebGPU backend is requested without a surface.
	ErrNoSurfaceDescriptor = errors.New("renderer: webgpu backend needs a surface descriptor")
	// ErrDisposed is returned by Render after Dispose.
	ErrDisposed = errors.New("renderer: disposed")
)

// Options are the context attributes a renderer is created with.
type Options struct {
	Antialias             bool
	Alpha                 bool
	PremultipliedAlpha    bool
	PreserveDrawingBuffer bool
	PresentMode           PresentMode
	ForceFallbackAdapter  bool
}

// Info summarizes the renderer's work so far.
type Info struct {
	Frames    uint64
	DrawCalls int
	Labels    []LabelAnchor
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	options           Options
	backendType       RendererBackendType
	backend           RendererBackend
	surfaceDescriptor *wgpu.SurfaceDescriptor

	canvas     surface.Element
	width      int
	height     int
	pixelRatio float64
	clearColor common.Color

	info     Info
	disposed bool
}

// Renderer turns a scene graph and a camera into frames on its canvas.
type Renderer interface {
	// SetPixelRatio sets the device pixel ratio. The drawing buffer is size * ratio.
	//
	// Parameters:
	//   - ratio: the device pixel ratio, ignored unless positive
	SetPixelRatio(ratio float64)

	// PixelRatio returns the device pixel ratio.
	PixelRatio() float64

	// SetSize sets the canvas size in CSS pixels and reconfigures the drawing buffer.
	//
	// Parameters:
	//   - width: canvas width
	//   - height: canvas height
	SetSize(width, height int)

	// Size returns the canvas size in CSS pixels.
	Size() (width, height int)

	// SetClearColor sets the colour and alpha the canvas is cleared to each frame.
	//
	// Parameters:
	//   - c: the clear colour; its own alpha is ignored
	//   - alpha: the clear alpha in [0, 1]
	SetClearColor(c common.Color, alpha float64)

	// ClearColor returns the clear colour with the clear alpha in A.
	ClearColor() common.Color

	// Options returns the context attributes the renderer was created with.
	Options() Options

	// Canvas returns the element the renderer draws into.
	Canvas() surface.Element

	// Render draws one frame of the visible scene as seen by the camera.
	//
	// Parameters:
	//   - scene: the scene root
	//   - cam: the camera
	//
	// Returns:
	//   - error: error if the backend failed or the renderer was disposed
	Render(scene node.Node, cam camera.Camera) error

	// Info returns frame statistics and the label anchors of the last frame.
	Info() Info

	// Dispose releases the backend. Further renders return ErrDisposed.
	Dispose()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer with the given backend type. The WebGPU backend needs
// WithSurfaceDescriptor; WithBackend overrides the backend type entirely.
//
// Parameters:
//   - backendType: the backend to create
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
//   - error: ErrNoSurfaceDescriptor if the WebGPU backend has no surface
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		canvas:      surface.NewStyledElement(),
		width:       1,
		height:      1,
		pixelRatio:  1,
		clearColor:  common.Color{A: 1},
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeHeadless:
			r.backend = NewHeadlessBackend()
		case BackendTypeWGPU:
			fallthrough
		default:
			if r.surfaceDescriptor == nil {
				return nil, ErrNoSurfaceDescriptor
			}
			r.backend = newWGPURendererBackend(r.surfaceDescriptor, r.options)
		}
	}

	r.backend.Configure(r.bufferSize())
	return r, nil
}

func (r *renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return
	}
	r.mu.Lock()
	r.pixelRatio = ratio
	w, h := r.bufferSize()
	r.mu.Unlock()
	r.backend.Configure(w, h)
}

func (r *renderer) PixelRatio() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	r.width, r.height = max(width, 1), max(height, 1)
	w, h := r.bufferSize()
	r.canvas.Style().Set(surface.StyleWidth, strconv.Itoa(r.width)+"px")
	r.canvas.Style().Set(surface.StyleHeight, strconv.Itoa(r.height)+"px")
	r.mu.Unlock()
	r.backend.Configure(w, h)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetClearColor(c common.Color, alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c.WithAlpha(math.Max(0, math.Min(1, alpha)))
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) Options() Options {
	return r.options
}

func (r *renderer) Canvas() surface.Element {
	return r.canvas
}

func (r *renderer) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := r.info
	info.Labels = append([]LabelAnchor(nil), r.info.Labels...)
	return info
}

func (r *renderer) Render(scene node.Node, cam camera.Camera) error {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return ErrDisposed
	}
	frame := &Frame{
		ViewProj:   cam.ViewProjectionMatrix(),
		View:       cam.ViewMatrix(),
		Proj:       cam.ProjectionMatrix(),
		PixelRatio: r.pixelRatio,
		Clear:      r.clearColor,
	}
	frame.Width, frame.Height = r.bufferSize()
	cssW, cssH := float64(r.width), float64(r.height)
	r.mu.Unlock()

	frame.Lights = light.Collect(scene)
	frame.Items, frame.Labels = collect(scene, frame.View, frame.ViewProj, cssW, cssH)

	if err := r.backend.DrawFrame(frame); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	r.mu.Lock()
	r.info.Frames++
	r.info.DrawCalls = len(frame.Items)
	r.info.Labels = frame.Labels
	r.mu.Unlock()
	return nil
}

func (r *renderer) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true
	r.mu.Unlock()
	r.backend.Release()
}

// bufferSize returns the drawing buffer size in physical pixels. Caller must hold the mutex.
func (r *renderer) bufferSize() (int, int) {
	return max(int(math.Round(float64(r.width)*r.pixelRatio)), 1),
		max(int(math.Round(float64(r.height)*r.pixelRatio)), 1)
}

// texter is implemented by label payloads.
type texter interface {
	Text() string
}

// collect walks the visible scene and returns the draw list, opaque items first in scene
// order followed by transparent items back to front, plus the label anchors.
func collect(scene node.Node, view, viewProj [16]float32, cssW, cssH float64) ([]DrawItem, []LabelAnchor) {
	var opaque, transparent []DrawItem
	var labels []LabelAnchor

	var model [16]float32
	node.TraverseVisible(scene, func(n node.Node) {
		program, ok := programFor(n)
		if n.Kind() == node.KindLabel {
			n.WorldMatrix(model[:])
			labels = append(labels, anchor(n, model, viewProj, cssW, cssH))
			return
		}
		if !ok {
			return
		}

		mat := n.Material()
		if program == pipeline.ProgramSprite && (mat == nil || mat.Texture() == nil) {
			// The image is still loading.
			return
		}

		item := DrawItem{Node: n, Program: program}
		n.WorldMatrix(item.Model[:])
		item.State = pipeline.State{DepthTest: true, DepthWrite: true}
		if mat != nil {
			item.State = pipeline.State{
				Transparent: mat.Transparent || mat.Opacity < 1,
				DepthTest:   mat.DepthTest,
				DepthWrite:  mat.DepthWrite,
			}
		}
		center := common.TransformPoint(item.Model[:], common.Vec3{})
		item.Depth = -common.TransformPoint(view[:], center).Z

		if item.State.Transparent {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	})

	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].Depth > transparent[j].Depth
	})
	return append(opaque, transparent...), labels
}

// programFor picks the program that draws a node, if any.
func programFor(n node.Node) (pipeline.Program, bool) {
	if g := n.Geometry(); g == nil || g.VertexCount() == 0 || g.Disposed() {
		return "", false
	}
	switch n.Kind() {
	case node.KindMesh:
		if m := n.Material(); m != nil && m.Texture() != nil {
			return pipeline.ProgramMeshTextured, true
		}
		return pipeline.ProgramMesh, true
	case node.KindLine, node.KindHelper:
		return pipeline.ProgramLine, true
	case node.KindPoints:
		return pipeline.ProgramPointTrail, true
	case node.KindSprite:
		return pipeline.ProgramSprite, true
	}
	return "", false
}

func anchor(n node.Node, model, viewProj [16]float32, cssW, cssH float64) LabelAnchor {
	a := LabelAnchor{}
	if t, ok := n.Payload().(texter); ok {
		a.Text = t.Text()
	}
	world := common.TransformPoint(model[:], common.Vec3{})
	ndc := common.ProjectPoint(viewProj[:], world)
	a.X = (ndc.X + 1) / 2 * cssW
	a.Y = (1 - ndc.Y) / 2 * cssH
	a.Visible = ndc.X >= -1 && ndc.X <= 1 && ndc.Y >= -1 && ndc.Y <= 1 && ndc.Z >= 0 && ndc.Z <= 1
	return a
}
