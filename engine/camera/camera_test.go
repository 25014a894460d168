package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

func TestOrthographicRayThroughCenter(t *testing.T) {
	ctrl := NewOrbitControls(WithEye(common.V3(0, 0, 500)))
	cam := NewCamera(KindOrthographic, WithAspect(2), WithController(ctrl))

	origin, dir := cam.Ray(0, 0)
	if dir.DistanceTo(common.V3(0, 0, -1)) > 1e-4 {
		t.Errorf("ray direction: have %v, want (0,0,-1)", dir)
	}
	if math.Abs(origin.Z-499) > 1e-2 || math.Abs(origin.X) > 1e-3 {
		t.Errorf("ray origin: have %v, want (0,0,499)", origin)
	}

	// The right edge of an aspect-2 view at half-height 200 sits at x=400.
	edge, _ := cam.Ray(1, 0)
	if math.Abs(edge.X-400) > 1e-2 {
		t.Errorf("right edge: have %v, want 400", edge.X)
	}
}

func TestPerspectiveLooksAtOrigin(t *testing.T) {
	ctrl := NewOrbitControls(WithEye(common.V3(350, 350, 350)))
	cam := NewCamera(KindPerspective, WithController(ctrl))

	vp := cam.ViewProjectionMatrix()
	ndc := common.ProjectPoint(vp[:], common.Vec3{})
	if math.Abs(ndc.X) > 1e-5 || math.Abs(ndc.Y) > 1e-5 {
		t.Errorf("origin in NDC: have %v, want centered", ndc)
	}
	if p := cam.Position(); p.DistanceTo(common.V3(350, 350, 350)) > 1e-6 {
		t.Errorf("eye: have %v, want (350,350,350)", p)
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	cam := NewCamera(KindOrthographic)
	cam.SetAspect(0)
	cam.SetAspect(float32(math.NaN()))
	if cam.Aspect() != 1 {
		t.Errorf("aspect: have %v, want 1", cam.Aspect())
	}
}

func TestOrbitRotateRespectsEnableFlag(t *testing.T) {
	ctrl := NewOrbitControls(WithEye(common.V3(0, 0, 500)), WithDamping(0))
	before := ctrl.Position()

	ctrl.SetEnableRotate(false)
	ctrl.Rotate(100, 0)
	if ctrl.Update() {
		t.Errorf("disabled rotation moved the eye")
	}

	ctrl.SetEnableRotate(true)
	ctrl.Rotate(100, 0)
	if !ctrl.Update() {
		t.Fatalf("rotation did not move the eye")
	}
	after := ctrl.Position()
	if math.Abs(after.Length()-before.Length()) > 1e-6 {
		t.Errorf("orbit changed the radius: have %v, want %v", after.Length(), before.Length())
	}
}

func TestOrbitDampingDecays(t *testing.T) {
	ctrl := NewOrbitControls(WithEye(common.V3(0, 0, 500)), WithDamping(0.5))
	ctrl.Rotate(100, 0)

	moved := 0
	for i := 0; i < 100; i++ {
		if ctrl.Update() {
			moved++
		}
	}
	if moved < 2 {
		t.Errorf("damped rotation applied in %d frames, want several", moved)
	}
	if ctrl.Update() {
		t.Errorf("damped rotation never settled")
	}
}

func TestDollyClampsRadius(t *testing.T) {
	ctrl := NewOrbitControls(WithEye(common.V3(0, 0, 500)), WithDamping(0), WithRadiusBounds(100, 600))
	for i := 0; i < 200; i++ {
		ctrl.Dolly(1)
		ctrl.Update()
	}
	if r := ctrl.Radius(); math.Abs(r-100) > 1e-9 {
		t.Errorf("radius: have %v, want 100", r)
	}
	if z := ctrl.Zoom(); math.Abs(z-5) > 1e-9 {
		t.Errorf("zoom: have %v, want 5", z)
	}

	ctrl.SetEnableZoom(false)
	ctrl.Dolly(-1)
	ctrl.Update()
	if r := ctrl.Radius(); math.Abs(r-100) > 1e-9 {
		t.Errorf("disabled zoom changed radius to %v", r)
	}
}
