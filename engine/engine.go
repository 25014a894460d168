// Package engine is the scene lifecycle controller of a globe. It builds the scene in a fixed
// order, drives the render loop, applies data updates through the operate layer and tears
// everything down again.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/controls"
	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/operate"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/surface"
	"github.com/Carmen-Shannon/oxy-globe/engine/tween"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoSurface is returned by NewEngine without a host surface.
	ErrNoSurface = errors.New("engine: no host surface")
	// ErrDestroyed is returned by data calls after Destroy.
	ErrDestroyed = errors.New("engine: destroyed")
)

// Scene graph names owned by the controller.
const (
	NameScene         = "scene"
	NameMainContainer = "mainContainer"
)

// axesHelperSize is the axis length of the optional helper.
const axesHelperSize = 250

// engine implements the Engine interface.
type engine struct {
	// mu guards the scene graph between the render tick and API calls.
	mu *sync.Mutex
	// dataMu serializes SetData, AddData and Remove.
	dataMu *sync.Mutex

	cfg    config.Config
	host   surface.Surface
	base   *slog.Logger
	logger *slog.Logger

	scene    node.Node
	root     node.Node
	camera   camera.Camera
	orbit    *camera.OrbitControls
	drag     *controls.DragControls
	light    light.Light
	renderer renderer.Renderer

	tweens   *tween.Group
	loader   figure.ImageLoader
	operator operate.Operator

	scheduler Scheduler
	cancel    func()
	gate      *FrameGate
	profiler  *profiler.Profiler

	hovered     bool
	pointerDown bool
	lastX       float64
	lastY       float64

	destroyed bool

	// builder settings
	backendType   renderer.RendererBackendType
	backend       renderer.RendererBackend
	rendererOpts  []renderer.RendererBuilderOption
	workers       int
	kinds         map[string]operate.Kind
	profileEvery  time.Duration
	ownLoader     bool
	startDisabled bool
}

// Engine is the scene lifecycle controller.
type Engine interface {
	// Config returns the configuration snapshot the scene was built from.
	Config() config.Config

	// Scene returns the scene graph root.
	Scene() node.Node

	// Root returns the root container all visualized entities live under.
	Root() node.Node

	// Camera returns the scene camera.
	Camera() camera.Camera

	// OrbitControls returns the native orbit controls.
	OrbitControls() *camera.OrbitControls

	// DragControls returns the custom drag controls, or nil outside custom 3D mode.
	DragControls() *controls.DragControls

	// Light returns the scene light.
	Light() light.Light

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Tweens returns the tween driver advanced once per rendered frame.
	Tweens() *tween.Group

	// SetData replaces every entity of dataType with the ones built from data. Removal happens
	// first; if the build fails the error is logged and returned and no new entities are added.
	//
	// Parameters:
	//   - ctx: cancels the build
	//   - dataType: the data type, e.g. "flyLine"
	//   - data: the JSON payload
	//
	// Returns:
	//   - error: error if the build failed or the engine was destroyed
	SetData(ctx context.Context, dataType string, data []byte) error

	// AddData is like SetData but keeps the existing entities of dataType.
	AddData(ctx context.Context, dataType string, data []byte) error

	// Remove detaches and disposes the entities of dataType with the given ids. The id
	// "removeAll" removes every entity of the type.
	//
	// Returns:
	//   - int: the number of entities removed
	Remove(dataType string, ids ...string) int

	// RemoveAll detaches and disposes every entity of dataType.
	RemoveAll(dataType string) int

	// SetHovered sets the hover flag read by the rotation gate.
	SetHovered(hovered bool)

	// Hovered reports the hover flag.
	Hovered() bool

	// PointerDown starts a drag at a position in CSS pixels.
	PointerDown(x, y float64)

	// PointerMove feeds drags and updates the hover flag by picking the globe under the pointer.
	PointerMove(x, y float64)

	// PointerUp ends a drag.
	PointerUp()

	// Scroll zooms the native controls. Positive delta zooms in.
	Scroll(delta float64)

	// Resize resizes the renderer and updates the camera aspect.
	Resize(width, height int)

	// Tick runs one iteration of the render loop. The scheduler calls it; tests call it directly.
	//
	// Parameters:
	//   - now: the frame time
	Tick(now time.Time)

	// Stats returns the profiler totals, or zero stats when profiling is off.
	Stats() profiler.Stats

	// Destroy stops the render loop, disposes the scene graph and the renderer, and clears the
	// host surface. Safe to call more than once.
	Destroy()

	// Destroyed reports whether Destroy has run.
	Destroyed() bool
}

var _ Engine = &engine{}

// surfaceProvider is implemented by hosts that can back a WebGPU surface, such as a native window.
type surfaceProvider interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// inputSource is implemented by hosts that deliver pointer input, such as a native window.
type inputSource interface {
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float64))
	SetPointerDownCallback(callback func(x, y float64))
	SetPointerUpCallback(callback func(x, y float64))
	SetPointerMoveCallback(callback func(x, y float64))
	SetHoverCallback(callback func(inside bool))
}

// NewEngine builds the scene on host and starts the render loop.
//
// Parameters:
//   - host: the surface to render into
//   - cfg: the scene configuration; unknown kinds fall back to defaults
//   - options: functional options for the backend, scheduler, logging and workers
//
// Returns:
//   - Engine: the running controller
//   - error: ErrNoSurface without a host, or the renderer error
func NewEngine(host surface.Surface, cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	if host == nil {
		return nil, ErrNoSurface
	}

	e := &engine{
		mu:          &sync.Mutex{},
		dataMu:      &sync.Mutex{},
		host:        host,
		logger:      slog.Default(),
		tweens:      tween.NewGroup(),
		backendType: renderer.BackendTypeHeadless,
		workers:     4,
		kinds:       make(map[string]operate.Kind),
	}
	if _, ok := host.(surfaceProvider); ok {
		e.backendType = renderer.BackendTypeWGPU
	}
	for _, opt := range options {
		opt(e)
	}
	e.base = e.logger
	e.logger = e.logger.With("component", "engine")

	if err := e.init(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// init builds the scene in the documented order.
func (e *engine) init(cfg config.Config) error {
	// 1. configuration snapshot
	e.cfg = cfg.Normalize()

	// 2. root container
	e.root = node.NewGroup(NameMainContainer)

	// 3. host bounds
	width, height := e.host.Bounds()
	width, height = max(width, 1), max(height, 1)
	aspect := float32(width) / float32(height)

	// 4. scene root
	e.scene = node.NewGroup(NameScene)

	// 5. camera
	e.orbit, e.camera = newCamera(e.cfg.CameraType, aspect)

	// 6. light
	e.light = light.FromKind(e.cfg.Light)
	e.scene.Add(e.light.Node())

	// 7. helper
	if e.cfg.Helper {
		e.scene.Add(figure.AxesHelper(axesHelperSize))
	}

	// 8. renderer
	r, err := e.newRenderer(width, height)
	if err != nil {
		return err
	}
	e.renderer = r

	if e.loader == nil {
		e.loader = figure.NewImageLoader(e.workers)
		e.ownLoader = true
	}
	env := figure.Env{Config: e.cfg, Tweens: e.tweens, Loader: e.loader, Logger: e.base.With("component", "figure")}
	opOpts := []operate.OperatorBuilderOption{operate.WithWorkers(e.workers), operate.WithLogger(e.base)}
	for t, k := range e.kinds {
		opOpts = append(opOpts, operate.WithKind(t, k))
	}
	e.operator = operate.NewOperator(env, opOpts...)

	// 9. country labels
	labels := figure.CountryNames(env)

	// 10. controls
	if e.cfg.Controls == config.ControlsCustom {
		e.orbit.SetEnableRotate(false)
		e.orbit.SetEnablePan(false)
		if e.cfg.Mode == config.Mode3D {
			e.drag = controls.NewDragControls(e.root, e.cfg.Earth.DragConfig)
		}
	}
	if !e.cfg.EnableZoom {
		e.orbit.SetEnableZoom(false)
	}

	// 11. figures
	e.addFigures(env, labels)
	e.scene.Add(e.root)

	// 12. zoom
	e.root.SetScale(common.V3(e.cfg.Zoom, e.cfg.Zoom, e.cfg.Zoom))

	// 13. render loop
	e.gate = NewFrameGate(e.cfg.LimitFPS, e.cfg.FPS)
	if e.profileEvery > 0 {
		e.profiler = profiler.NewProfiler(e.logger, e.profileEvery)
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler(60)
	}
	if !e.startDisabled {
		e.cancel = e.scheduler.Start(e.Tick)
	}

	// 14. attach the canvas
	canvas := e.renderer.Canvas()
	canvas.Style().Set(surface.StyleDisplay, "block")
	canvas.Style().Set(surface.StyleWidth, "100%")
	canvas.Style().Set(surface.StyleHeight, "100%")
	e.host.Append(canvas)

	// 15. background
	e.applyBackground(canvas)

	e.wireInput()
	e.logger.Info("scene initialized",
		"mode", e.cfg.Mode,
		"camera", e.cfg.CameraType,
		"light", e.cfg.Light,
		"width", width,
		"height", height,
	)
	return nil
}

func newCamera(kind config.CameraKind, aspect float32) (*camera.OrbitControls, camera.Camera) {
	if kind == config.CameraPerspective {
		orbit := camera.NewOrbitControls(camera.WithEye(common.V3(350, 350, 350)))
		return orbit, camera.NewCamera(camera.KindPerspective,
			camera.WithAspect(aspect),
			camera.WithController(orbit),
		)
	}
	orbit := camera.NewOrbitControls(camera.WithEye(common.V3(0, 0, 500)))
	return orbit, camera.NewCamera(camera.KindOrthographic,
		camera.WithAspect(aspect),
		camera.WithController(orbit),
	)
}

func (e *engine) newRenderer(width, height int) (renderer.Renderer, error) {
	opts := []renderer.RendererBuilderOption{
		renderer.WithAntialias(true),
		renderer.WithAlpha(true, false),
		renderer.WithPreserveDrawingBuffer(true),
		renderer.WithPixelRatio(e.host.PixelRatio()),
	}
	if e.backend != nil {
		opts = append(opts, renderer.WithBackend(e.backend))
	}
	if sp, ok := e.host.(surfaceProvider); ok && e.backendType == renderer.BackendTypeWGPU {
		opts = append(opts, renderer.WithSurfaceDescriptor(sp.SurfaceDescriptor()))
	}
	opts = append(opts, e.rendererOpts...)

	r, err := renderer.NewRenderer(e.backendType, opts...)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	r.SetSize(width, height)
	return r, nil
}

// addFigures populates the root container. 2D shows only the flat map; 3D shows the globe, its
// outline overlay when the texture is mixed or missing, the halo and the labels.
func (e *engine) addFigures(env figure.Env, labels node.Node) {
	if e.cfg.Mode == config.Mode2D {
		mapGroup := node.NewGroup(figure.NameMapGroup)
		if shape := e.mapShape(env); shape != nil {
			mapGroup.Add(shape)
		}
		e.root.Add(mapGroup)
		return
	}

	earth := figure.Earth(env)
	if e.cfg.Texture.Mixed || e.cfg.Texture.Path == "" {
		if shape := e.mapShape(env); shape != nil {
			earth.Add(shape)
		}
	}
	e.root.Add(earth)

	if e.cfg.SpriteStyle.Show {
		e.root.Add(figure.Halo(env))
	}
	if labels != nil {
		e.root.Add(labels)
	}
}

func (e *engine) mapShape(env figure.Env) node.Node {
	shape, err := figure.MapShape(env)
	if err != nil {
		e.logger.Error("map shape skipped", "error", err)
		return nil
	}
	return shape
}

// applyBackground sets the clear colour. A transparent background also clears the canvas
// background and forces the host and its parent transparent unless they set their own.
func (e *engine) applyBackground(canvas surface.Element) {
	bg := e.cfg.BgStyle
	if !bg.Transparent() {
		c, err := common.ParseColor(bg.Color)
		if err != nil {
			e.logger.Warn("invalid background colour, using black", "color", bg.Color, "error", err)
		}
		e.renderer.SetClearColor(c, bg.Opacity)
		return
	}

	e.renderer.SetClearColor(common.Color{}, 0)
	canvas.Style().Set(surface.StyleBackground, common.ColorTransparent)
	if !e.host.Style().HasBackground() {
		e.host.Style().Set(surface.StyleBackground, common.ColorTransparent)
	}
	if p := e.host.Parent(); p != nil && !p.Style().HasBackground() {
		p.Style().Set(surface.StyleBackground, common.ColorTransparent)
	}
}

func (e *engine) wireInput() {
	in, ok := e.host.(inputSource)
	if !ok {
		return
	}
	in.SetResizeCallback(e.Resize)
	in.SetScrollCallback(e.Scroll)
	in.SetPointerDownCallback(e.PointerDown)
	in.SetPointerUpCallback(func(float64, float64) { e.PointerUp() })
	in.SetPointerMoveCallback(e.PointerMove)
	in.SetHoverCallback(func(inside bool) {
		if !inside {
			e.SetHovered(false)
		}
	})
}

func (e *engine) Config() config.Config                { return e.cfg }
func (e *engine) Scene() node.Node                     { return e.scene }
func (e *engine) Root() node.Node                      { return e.root }
func (e *engine) Camera() camera.Camera                { return e.camera }
func (e *engine) OrbitControls() *camera.OrbitControls { return e.orbit }
func (e *engine) DragControls() *controls.DragControls { return e.drag }
func (e *engine) Light() light.Light                   { return e.light }
func (e *engine) Renderer() renderer.Renderer          { return e.renderer }
func (e *engine) Tweens() *tween.Group                 { return e.tweens }

func (e *engine) Tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render tick recovered from panic", "panic", r)
		}
	}()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}

	rendered := e.gate.Allow(now)
	if rendered {
		e.tweens.Update(now)
		if ShouldRotate(e.cfg, e.hovered) {
			e.root.RotateY(e.cfg.RotateSpeed)
		}
		e.camera.Update()
		if err := e.renderer.Render(e.scene, e.camera); err != nil {
			e.logger.Warn("render failed", "error", err)
		}
	}

	// Controls advance every tick, gated or not.
	if e.orbit.Update() {
		e.camera.Update()
	}
	if e.drag != nil {
		e.drag.Update()
	}

	if e.profiler != nil {
		e.profiler.Tick(now, rendered)
	}
}

func (e *engine) SetData(ctx context.Context, dataType string, data []byte) error {
	return e.applyData(ctx, dataType, data, true)
}

func (e *engine) AddData(ctx context.Context, dataType string, data []byte) error {
	return e.applyData(ctx, dataType, data, false)
}

func (e *engine) applyData(ctx context.Context, dataType string, data []byte, replace bool) error {
	e.dataMu.Lock()
	defer e.dataMu.Unlock()

	if replace {
		e.mu.Lock()
		if e.destroyed {
			e.mu.Unlock()
			return ErrDestroyed
		}
		e.operator.RemoveAll(e.root, dataType)
		e.mu.Unlock()
	} else if e.Destroyed() {
		return ErrDestroyed
	}

	frags, err := e.operator.Build(ctx, dataType, data)
	if err != nil {
		e.logger.Error("data update failed", "type", dataType, "replace", replace, "error", err)
		return fmt.Errorf("build %s: %w", dataType, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		for _, f := range frags {
			node.Clear(f)
		}
		return ErrDestroyed
	}
	e.root.Add(frags...)
	e.logger.Debug("data applied", "type", dataType, "entities", len(frags), "replace", replace)
	return nil
}

func (e *engine) Remove(dataType string, ids ...string) int {
	e.dataMu.Lock()
	defer e.dataMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return 0
	}
	return e.operator.Remove(e.root, dataType, ids...)
}

func (e *engine) RemoveAll(dataType string) int {
	return e.Remove(dataType, operate.RemoveAllIDs)
}

func (e *engine) SetHovered(hovered bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hovered = hovered
}

func (e *engine) Hovered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hovered
}

func (e *engine) PointerDown(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pointerDown = true
	e.lastX, e.lastY = x, y
	if e.drag != nil {
		e.drag.PointerDown(x, y)
	}
}

func (e *engine) PointerMove(x, y float64) {
	hit := e.cfg.Mode == config.Mode3D && e.pick(x, y)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pointerDown {
		if e.drag != nil {
			e.drag.PointerMove(x, y)
		}
		e.orbit.Rotate(x-e.lastX, y-e.lastY)
	}
	e.lastX, e.lastY = x, y
	e.hovered = hit
}

func (e *engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pointerDown = false
	if e.drag != nil {
		e.drag.PointerUp()
	}
}

func (e *engine) Scroll(delta float64) {
	e.orbit.Dolly(delta)
}

// pick reports whether the ray through a point in CSS pixels hits the globe.
func (e *engine) pick(x, y float64) bool {
	w, h := e.renderer.Size()
	if w <= 0 || h <= 0 {
		return false
	}
	ndcX := x/float64(w)*2 - 1
	ndcY := 1 - y/float64(h)*2
	origin, dir := e.camera.Ray(ndcX, ndcY)
	_, hit := common.RaySphere(origin, dir, e.cfg.R*e.cfg.Zoom)
	return hit
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.renderer.SetSize(width, height)
	e.camera.SetAspect(float32(width) / float32(height))
}

func (e *engine) Stats() profiler.Stats {
	if e.profiler == nil {
		return profiler.Stats{}
	}
	return e.profiler.Stats()
}

func (e *engine) Destroy() {
	// Waits for an in-flight tick.
	if e.cancel != nil {
		e.cancel()
	}

	e.dataMu.Lock()
	defer e.dataMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.destroyed {
		e.destroyed = true
		e.tweens.RemoveAll()
		node.Clear(e.scene)
		e.operator.Close()
		if e.ownLoader {
			e.loader.Close()
		}
		e.renderer.Dispose()
		e.logger.Info("scene destroyed")
	}
	e.host.Clear()
}

func (e *engine) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}
