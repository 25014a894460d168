package renderer

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/surface"
)

type textPayload string

func (t textPayload) Text() string { return string(t) }

func newTestCamera() camera.Camera {
	ctrl := camera.NewOrbitControls(camera.WithEye(common.V3(0, 0, 500)))
	return camera.NewCamera(camera.KindOrthographic, camera.WithController(ctrl))
}

func newTestRenderer(t *testing.T) (Renderer, *HeadlessBackend) {
	t.Helper()
	backend := NewHeadlessBackend()
	r, err := NewRenderer(BackendTypeHeadless, WithBackend(backend))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, backend
}

func mesh(name string, z float64, opacity float64) node.Node {
	mat := node.NewMaterial(common.Color{R: 1, A: 1})
	mat.Opacity = opacity
	return node.NewNode(node.KindMesh,
		node.WithName(name),
		node.WithPosition(common.V3(0, 0, z)),
		node.WithGeometry(&node.Geometry{Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}}),
		node.WithMaterial(mat),
	)
}

func TestRenderOrdersTransparentBackToFront(t *testing.T) {
	r, backend := newTestRenderer(t)

	scene := node.NewGroup("scene", node.WithChildren(
		mesh("nearGlass", 100, 0.5),
		mesh("solidA", 0, 1),
		mesh("farGlass", -100, 0.5),
		mesh("solidB", 50, 1),
	))

	if err := r.Render(scene, newTestCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	frame, ok := backend.LastFrame()
	if !ok {
		t.Fatal("no frame recorded")
	}

	have := ItemNames(frame)
	want := []string{"solidA", "solidB", "farGlass", "nearGlass"}
	if !slices.Equal(have, want) {
		t.Errorf("draw order:\nhave %v\nwant %v", have, want)
	}
	if !frame.Items[2].State.Transparent || frame.Items[0].State.Transparent {
		t.Errorf("transparency state not derived from opacity")
	}
}

func TestRenderSkipsUntexturedSprites(t *testing.T) {
	r, backend := newTestRenderer(t)

	mat := node.NewMaterial(common.Color{R: 1, G: 1, B: 1, A: 1})
	sprite := node.NewNode(node.KindSprite,
		node.WithName("halo"),
		node.WithGeometry(&node.Geometry{Positions: []float32{0, 0, 0}}),
		node.WithMaterial(mat),
	)
	scene := node.NewGroup("scene", node.WithChildren(sprite))
	cam := newTestCamera()

	if err := r.Render(scene, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if frame, _ := backend.LastFrame(); len(frame.Items) != 0 {
		t.Fatalf("sprite without texture was drawn")
	}

	mat.SetTexture(node.NewTexture(common.TextureStagingData{Width: 1, Height: 1, Pixels: make([]byte, 4)}))
	if err := r.Render(scene, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if frame, _ := backend.LastFrame(); len(frame.Items) != 1 {
		t.Errorf("sprite with texture: have %d items, want 1", len(frame.Items))
	}
}

func TestRenderProjectsLabels(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.SetSize(400, 200)

	cam := newTestCamera()
	cam.SetAspect(2)

	scene := node.NewGroup("scene", node.WithChildren(
		node.NewNode(node.KindLabel, node.WithName("centre"), node.WithPayload(textPayload("Origin"))),
		node.NewNode(node.KindLabel, node.WithName("offscreen"), node.WithPosition(common.V3(5000, 0, 0))),
	))
	if err := r.Render(scene, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}

	frame, _ := backend.LastFrame()
	if len(frame.Labels) != 2 {
		t.Fatalf("labels: have %d, want 2", len(frame.Labels))
	}
	centre := frame.Labels[0]
	if centre.Text != "Origin" || !centre.Visible {
		t.Errorf("centre label: have %+v", centre)
	}
	if math.Abs(centre.X-200) > 1e-3 || math.Abs(centre.Y-100) > 1e-3 {
		t.Errorf("centre label position: have (%v, %v), want (200, 100)", centre.X, centre.Y)
	}
	if frame.Labels[1].Visible {
		t.Errorf("offscreen label reported visible")
	}
	if got := r.Info().Labels; len(got) != 2 {
		t.Errorf("Info labels: have %d, want 2", len(got))
	}
}

func TestSizeAndPixelRatio(t *testing.T) {
	r, backend := newTestRenderer(t)

	r.SetPixelRatio(2)
	r.SetSize(300, 150)
	r.SetPixelRatio(-1)

	if w, h := backend.Size(); w != 600 || h != 300 {
		t.Errorf("buffer size: have %dx%d, want 600x300", w, h)
	}
	if r.PixelRatio() != 2 {
		t.Errorf("PixelRatio: have %v, want 2", r.PixelRatio())
	}
	if got := r.Canvas().Style().Get(surface.StyleWidth); got != "300px" {
		t.Errorf("canvas width style: have %q, want %q", got, "300px")
	}
}

func TestClearColorClampsAlpha(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.SetClearColor(common.Color{R: 0.5, A: 1}, 3)

	if err := r.Render(node.NewGroup("scene"), newTestCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	frame, _ := backend.LastFrame()
	if frame.Clear.R != 0.5 || frame.Clear.A != 1 {
		t.Errorf("clear colour: have %+v", frame.Clear)
	}

	r.SetClearColor(common.Color{}, 0)
	if r.ClearColor().A != 0 {
		t.Errorf("clear alpha: have %v, want 0", r.ClearColor().A)
	}
}

func TestHandlesReleasedOnClear(t *testing.T) {
	r, backend := newTestRenderer(t)

	scene := node.NewGroup("scene", node.WithChildren(mesh("a", 0, 1), mesh("b", 0, 1)))
	if err := r.Render(scene, newTestCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if backend.Uploads() != 2 {
		t.Fatalf("uploads: have %d, want 2", backend.Uploads())
	}

	node.Clear(scene)
	if backend.ReleasedHandles() != 2 {
		t.Errorf("released handles: have %d, want 2", backend.ReleasedHandles())
	}
}

func TestDispose(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.Dispose()
	r.Dispose()

	if !backend.Closed() {
		t.Errorf("backend not released")
	}
	if err := r.Render(node.NewGroup("scene"), newTestCamera()); !errors.Is(err, ErrDisposed) {
		t.Errorf("Render after Dispose: have %v, want ErrDisposed", err)
	}
}

func TestWGPUNeedsSurface(t *testing.T) {
	if _, err := NewRenderer(BackendTypeWGPU); !errors.Is(err, ErrNoSurfaceDescriptor) {
		t.Errorf("have %v, want ErrNoSurfaceDescriptor", err)
	}
}

func TestPickAlphaMode(t *testing.T) {
	tests := []struct {
		name          string
		modes         []uint32
		alpha         bool
		premultiplied bool
		want          uint32
	}{
		{"opaque requested", []uint32{alphaModeAuto, alphaModeOpaque}, false, false, alphaModeOpaque},
		{"unpremultiplied preferred", []uint32{alphaModeOpaque, alphaModePremultiplied, alphaModeUnpremultiplied}, true, false, alphaModeUnpremultiplied},
		{"premultiplied preferred", []uint32{alphaModeOpaque, alphaModePremultiplied, alphaModeUnpremultiplied}, true, true, alphaModePremultiplied},
		{"inherit fallback", []uint32{alphaModeOpaque, alphaModeInherit}, true, false, alphaModeInherit},
		{"only opaque", []uint32{alphaModeOpaque}, true, false, alphaModeOpaque},
		{"empty", nil, true, false, alphaModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickAlphaMode(tt.modes, tt.alpha, tt.premultiplied); got != tt.want {
				t.Errorf("have %d, want %d", got, tt.want)
			}
		})
	}
}
