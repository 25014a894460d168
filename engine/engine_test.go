package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/operate"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/surface"
	"github.com/Carmen-Shannon/oxy-globe/engine/tween"
)

const (
	beijingShanghai = `[{"id": "a", "from": {"lon": 116.4, "lat": 39.9}, "to": {"lon": 121.5, "lat": 31.2}},
	                    {"id": "b", "from": {"lon": 0, "lat": 51.5}, "to": {"lon": -74, "lat": 40.7}}]`
	oneLine    = `{"id": "c", "from": {"lon": 2.3, "lat": 48.9}, "to": {"lon": 139.7, "lat": 35.7}}`
	degenerate = `[{"id": "d", "from": {"lon": 10, "lat": 10}, "to": {"lon": 10, "lat": 10}}]`
)

// manualScheduler records the tick function instead of running it.
type manualScheduler struct {
	mu      sync.Mutex
	tick    func(time.Time)
	cancels int
}

func (s *manualScheduler) Start(tick func(time.Time)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = tick
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cancels++
		s.tick = nil
	}
}

func (s *manualScheduler) fire(now time.Time) bool {
	s.mu.Lock()
	tick := s.tick
	s.mu.Unlock()
	if tick == nil {
		return false
	}
	tick(now)
	return true
}

type harness struct {
	engine    Engine
	host      surface.Resizable
	backend   *renderer.HeadlessBackend
	scheduler *manualScheduler
}

func newHarness(t *testing.T, cfg config.Config, opts ...EngineBuilderOption) *harness {
	t.Helper()
	h := &harness{
		host:      surface.NewElement(surface.WithSize(400, 300)),
		backend:   renderer.NewHeadlessBackend(),
		scheduler: &manualScheduler{},
	}
	opts = append([]EngineBuilderOption{
		WithBackend(h.backend),
		WithScheduler(h.scheduler),
		WithWorkers(2),
	}, opts...)
	e, err := NewEngine(h.host, cfg, opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Destroy)
	h.engine = e
	return h
}

func countType(root node.Node, dataType string) int {
	n := 0
	for _, c := range root.Children() {
		if c.UserData().Type == dataType {
			n++
		}
	}
	return n
}

func TestNewEngineNeedsSurface(t *testing.T) {
	if _, err := NewEngine(nil, config.New()); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("have %v, want ErrNoSurface", err)
	}
}

func TestInitBuildsGlobe(t *testing.T) {
	h := newHarness(t, config.New(config.WithHelper(true), config.WithSprite(config.SpriteStyle{Show: true, Color: "#797eff", Size: 2})))
	e := h.engine

	scene := e.Scene()
	if scene.Name() != NameScene {
		t.Errorf("scene name: have %q", scene.Name())
	}
	if e.Root().Name() != NameMainContainer || e.Root().Parent() != scene {
		t.Errorf("root container is not attached to the scene")
	}
	if e.Light().Node().Parent() != scene {
		t.Errorf("light is not attached to the scene")
	}
	if node.FindByName(scene, figure.NameAxesHelper) == nil {
		t.Errorf("axes helper missing")
	}
	earth := node.FindByName(e.Root(), figure.NameEarth)
	if earth == nil {
		t.Fatal("earth missing")
	}
	// No texture path: the map outline rides on the globe.
	if node.FindByName(earth, figure.NameMapShape) == nil {
		t.Errorf("map shape overlay missing on an untextured globe")
	}
	if node.FindByName(e.Root(), figure.NameHalo) == nil {
		t.Errorf("halo missing")
	}
	if node.FindByName(e.Root(), figure.NameMapGroup) != nil {
		t.Errorf("flat map group built in 3D")
	}
	if e.DragControls() == nil {
		t.Errorf("custom 3D controls did not create drag controls")
	}
	if rotate, pan, zoom := e.OrbitControls().Enabled(); rotate || pan || !zoom {
		t.Errorf("orbit controls: rotate %v pan %v zoom %v, want false false true", rotate, pan, zoom)
	}

	children := h.host.Children()
	if len(children) != 1 || children[0] != e.Renderer().Canvas() {
		t.Fatalf("canvas not appended to the host")
	}
	style := e.Renderer().Canvas().Style()
	if style.Get(surface.StyleDisplay) != "block" || style.Get(surface.StyleWidth) != "100%" || style.Get(surface.StyleHeight) != "100%" {
		t.Errorf("canvas style not applied")
	}
	if w, hgt := e.Renderer().Size(); w != 400 || hgt != 300 {
		t.Errorf("renderer size: have %dx%d, want 400x300", w, hgt)
	}
	if c := e.Renderer().ClearColor(); c.A != 1 || c.Hex() != "#040d21" {
		t.Errorf("clear colour: have %s alpha %v", c.Hex(), c.A)
	}
}

func TestInitFlatMap(t *testing.T) {
	h := newHarness(t, config.New(config.WithMode(config.Mode2D), config.WithZoom(2, false)))
	e := h.engine

	group := node.FindByName(e.Root(), figure.NameMapGroup)
	if group == nil || node.FindByName(group, figure.NameMapShape) == nil {
		t.Fatal("2D map group missing")
	}
	if node.FindByName(e.Root(), figure.NameEarth) != nil {
		t.Errorf("globe built in 2D")
	}
	if e.DragControls() != nil {
		t.Errorf("drag controls created in 2D")
	}
	if _, _, zoom := e.OrbitControls().Enabled(); zoom {
		t.Errorf("zoom left enabled")
	}
	if s := e.Root().Scale(); s != common.V3(2, 2, 2) {
		t.Errorf("root scale: have %v, want zoom 2", s)
	}
}

func TestFlatMapScrollZooms(t *testing.T) {
	h := newHarness(t, config.New(config.WithMode(config.Mode2D)))
	e := h.engine

	before := e.Camera().ProjectionMatrix()
	e.Scroll(1)
	if z := e.OrbitControls().Zoom(); z != 1 {
		t.Fatalf("zoom before tick: have %v, want 1", z)
	}
	h.scheduler.fire(time.Unix(0, 0))

	if z := e.OrbitControls().Zoom(); !(z > 1) {
		t.Errorf("zoom after tick: have %v, want > 1", z)
	}
	if e.Camera().ProjectionMatrix() == before {
		t.Errorf("projection did not follow the zoom")
	}
}

func TestUnknownKindsFallBack(t *testing.T) {
	cfg := config.New()
	cfg.CameraType = "FisheyeCamera"
	cfg.Light = "SpotLight"
	h := newHarness(t, cfg)

	if got := h.engine.Config().CameraType; got != config.CameraOrthographic {
		t.Errorf("camera: have %q, want orthographic", got)
	}
	if got := h.engine.Config().Light; got != config.LightDirectional {
		t.Errorf("light: have %q, want directional", got)
	}
}

func TestTransparentBackground(t *testing.T) {
	tests := []struct {
		name         string
		parentBg     string
		bg           config.BgStyle
		wantCanvasBg string
		wantHostBg   string
		wantParentBg string
		wantClearA   float64
	}{
		{
			name:         "keyword",
			bg:           config.BgStyle{Color: "transparent", Opacity: 1},
			wantCanvasBg: "transparent",
			wantHostBg:   "transparent",
			wantParentBg: "transparent",
		},
		{
			name:         "zero opacity keeps parent colour",
			parentBg:     "#ff0000",
			bg:           config.BgStyle{Color: "#123456", Opacity: 0},
			wantCanvasBg: "transparent",
			wantHostBg:   "transparent",
			wantParentBg: "#ff0000",
		},
		{
			name:       "opaque",
			bg:         config.BgStyle{Color: "#123456", Opacity: 0.5},
			wantClearA: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := surface.NewStyledElement()
			parent.Style().Set(surface.StyleBackground, tt.parentBg)
			host := surface.NewElement(surface.WithParent(parent))

			e, err := NewEngine(host, config.New(config.WithBackground(tt.bg.Color, tt.bg.Opacity)),
				WithBackend(renderer.NewHeadlessBackend()), WithManualTicks())
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			defer e.Destroy()

			if got := e.Renderer().Canvas().Style().Get(surface.StyleBackground); got != tt.wantCanvasBg {
				t.Errorf("canvas background: have %q, want %q", got, tt.wantCanvasBg)
			}
			if got := host.Style().Get(surface.StyleBackground); got != tt.wantHostBg {
				t.Errorf("host background: have %q, want %q", got, tt.wantHostBg)
			}
			if got := parent.Style().Get(surface.StyleBackground); got != tt.wantParentBg {
				t.Errorf("parent background: have %q, want %q", got, tt.wantParentBg)
			}
			if got := e.Renderer().ClearColor().A; got != tt.wantClearA {
				t.Errorf("clear alpha: have %v, want %v", got, tt.wantClearA)
			}
		})
	}
}

func TestTickRotatesAndRenders(t *testing.T) {
	h := newHarness(t, config.New(config.WithAutoRotate(true, 0.1)))
	e := h.engine

	before := e.Root().Quaternion()
	if !h.scheduler.fire(time.Unix(0, 0)) {
		t.Fatal("render loop was not started")
	}
	if e.Root().Quaternion() == before {
		t.Errorf("root did not rotate")
	}
	if e.Renderer().Info().Frames != 1 {
		t.Errorf("frames: have %d, want 1", e.Renderer().Info().Frames)
	}
	if _, ok := h.backend.LastFrame(); !ok {
		t.Errorf("backend drew no frame")
	}
}

func TestHoverStopsRotation(t *testing.T) {
	h := newHarness(t, config.New(config.WithAutoRotate(true, 0.1), config.WithStopRotateByHover(true)))
	e := h.engine

	e.SetHovered(true)
	before := e.Root().Quaternion()
	e.Tick(time.Unix(0, 0))
	if e.Root().Quaternion() != before {
		t.Errorf("root rotated while hovered")
	}
	if e.Renderer().Info().Frames != 1 {
		t.Errorf("hover should not stop rendering")
	}

	e.SetHovered(false)
	e.Tick(time.Unix(1, 0))
	if e.Root().Quaternion() == before {
		t.Errorf("root did not resume rotating")
	}
}

func TestPointerPicksGlobe(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine

	e.PointerMove(200, 150)
	if !e.Hovered() {
		t.Errorf("pointer over the globe centre did not hover")
	}
	e.PointerMove(2, 2)
	if e.Hovered() {
		t.Errorf("pointer in the corner still hovers")
	}
}

func TestFrameLimitThrottles(t *testing.T) {
	h := newHarness(t, config.New(config.WithFrameLimit(10)))
	e := h.engine
	start := time.Unix(0, 0)

	for i := 0; i <= 10; i++ {
		e.Tick(start.Add(time.Duration(i) * 50 * time.Millisecond))
	}
	// The first tick starts the clock; a frame fires once more than 100ms have accumulated.
	if got := e.Renderer().Info().Frames; got != 3 {
		t.Errorf("frames: have %d, want 3", got)
	}
}

func TestTickAdvancesTweens(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine

	var calls int
	e.Tweens().Add(tween.NewTween(tween.Params{"x": 0}, tween.Params{"x": 1}, func(tween.Params) { calls++ }))
	e.Tick(time.Unix(0, 0))
	e.Tick(time.Unix(0, int64(100*time.Millisecond)))
	if calls != 2 {
		t.Errorf("tween updates: have %d, want 2", calls)
	}
}

func TestTickRecoversFromPanic(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine

	e.Tweens().Add(tween.NewTween(tween.Params{"x": 0}, tween.Params{"x": 1}, func(tween.Params) { panic("boom") }))
	e.Tick(time.Unix(0, 0))

	e.Tweens().RemoveAll()
	e.Tick(time.Unix(1, 0))
	if e.Renderer().Info().Frames != 1 {
		t.Errorf("loop did not keep rendering after a panic")
	}
}

func TestSetDataReplaces(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine
	ctx := context.Background()

	if err := e.SetData(ctx, operate.TypeFlyLine, []byte(beijingShanghai)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if n := countType(e.Root(), operate.TypeFlyLine); n != 2 {
		t.Fatalf("fly lines: have %d, want 2", n)
	}
	if err := e.SetData(ctx, operate.TypeFlyLine, []byte(oneLine)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if n := countType(e.Root(), operate.TypeFlyLine); n != 1 {
		t.Errorf("fly lines after replace: have %d, want 1", n)
	}
	// Stopped tweens are dropped on the next tick.
	e.Tick(time.Unix(0, 0))
	if e.Tweens().Len() != 1 {
		t.Errorf("tweens after replace: have %d, want 1", e.Tweens().Len())
	}

	if err := e.AddData(ctx, operate.TypeFlyLine, []byte(beijingShanghai)); err != nil {
		t.Fatalf("AddData: %v", err)
	}
	if n := countType(e.Root(), operate.TypeFlyLine); n != 3 {
		t.Errorf("fly lines after add: have %d, want 3", n)
	}
	if err := e.AddData(ctx, operate.TypePoint, []byte(`[{"lon": 1, "lat": 2}]`)); err != nil {
		t.Fatalf("AddData points: %v", err)
	}

	if n := e.Remove(operate.TypeFlyLine, "a", "missing"); n != 1 {
		t.Errorf("Remove: have %d, want 1", n)
	}
	if n := e.RemoveAll(operate.TypeFlyLine); n != 2 {
		t.Errorf("RemoveAll: have %d, want 2", n)
	}
	if n := countType(e.Root(), operate.TypePoint); n != 1 {
		t.Errorf("points removed with fly lines")
	}
	if node.FindByName(e.Root(), figure.NameEarth) == nil {
		t.Errorf("RemoveAll touched the globe")
	}
}

func TestSetDataFailure(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine
	ctx := context.Background()

	if err := e.SetData(ctx, operate.TypeFlyLine, []byte(beijingShanghai)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	err := e.SetData(ctx, operate.TypeFlyLine, []byte(degenerate))
	if !errors.Is(err, figure.ErrDegenerateArc) {
		t.Fatalf("have %v, want ErrDegenerateArc", err)
	}
	// Removal already happened; nothing new was added.
	if n := countType(e.Root(), operate.TypeFlyLine); n != 0 {
		t.Errorf("fly lines after failed replace: have %d, want 0", n)
	}
	if err := e.AddData(ctx, "heatmap", []byte(`[]`)); !errors.Is(err, operate.ErrUnknownType) {
		t.Errorf("unknown type: have %v", err)
	}
}

func TestCustomDataKind(t *testing.T) {
	kind := operate.Kind{
		Decode: func([]byte) ([]operate.Entry, error) {
			return []operate.Entry{{ID: "x"}}, nil
		},
		Build: func(figure.Env, operate.Entry) (node.Node, error) {
			return node.NewGroup("ring"), nil
		},
	}
	h := newHarness(t, config.New(), WithDataKind("ring", kind))

	if err := h.engine.SetData(context.Background(), "ring", nil); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if node.FindByName(h.engine.Root(), "ring") == nil {
		t.Errorf("custom kind not built")
	}
}

func TestResize(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine

	h.host.SetBounds(800, 200)
	e.Resize(800, 200)
	if w, hgt := e.Renderer().Size(); w != 800 || hgt != 200 {
		t.Errorf("renderer size: have %dx%d", w, hgt)
	}
	if a := e.Camera().Aspect(); a != 4 {
		t.Errorf("aspect: have %v, want 4", a)
	}
	e.Resize(0, 100)
	if w, _ := e.Renderer().Size(); w != 800 {
		t.Errorf("zero width resize was applied")
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, config.New())
	e := h.engine

	if err := e.SetData(context.Background(), operate.TypeFlyLine, []byte(beijingShanghai)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	root := e.Root()

	e.Destroy()
	e.Destroy()

	if !e.Destroyed() {
		t.Fatal("not marked destroyed")
	}
	if h.scheduler.cancels != 2 {
		t.Errorf("cancel calls: have %d, want 2", h.scheduler.cancels)
	}
	if h.scheduler.fire(time.Unix(0, 0)) {
		t.Errorf("render loop still scheduled")
	}
	if len(root.Children()) != 0 || !root.Disposed() {
		t.Errorf("scene graph not cleared")
	}
	if e.Tweens().Len() != 0 {
		t.Errorf("tweens survived destroy")
	}
	if !h.backend.Closed() {
		t.Errorf("renderer backend not released")
	}
	if len(h.host.Children()) != 0 {
		t.Errorf("host still has children")
	}

	if err := e.SetData(context.Background(), operate.TypeFlyLine, []byte(oneLine)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetData after destroy: have %v, want ErrDestroyed", err)
	}
	if n := e.RemoveAll(operate.TypeFlyLine); n != 0 {
		t.Errorf("RemoveAll after destroy: have %d", n)
	}
	e.Tick(time.Unix(5, 0))
	if e.Renderer().Info().Frames != 0 {
		t.Errorf("tick rendered after destroy")
	}
}

func TestProfilingStats(t *testing.T) {
	h := newHarness(t, config.New(config.WithFrameLimit(1)), WithProfiling(time.Hour))
	e := h.engine

	e.Tick(time.Unix(0, 0))
	e.Tick(time.Unix(2, 0))
	e.Tick(time.Unix(2, 1))
	s := e.Stats()
	if s.Rendered != 1 || s.Gated != 2 {
		t.Errorf("stats: have %+v, want 1 rendered and 2 gated", s)
	}
}
