package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

func TestDragRotatesTarget(t *testing.T) {
	root := node.NewGroup("mainContainer")
	d := NewDragControls(root, config.DragConfig{RotationSpeed: 0.01, InertiaFactor: 0.5})

	d.PointerDown(0, 0)
	d.PointerMove(10, 0)
	if !d.Update() {
		t.Fatalf("drag did not move the target")
	}

	// 10px at 0.01 rad/px turns +X by 0.1 rad about Y.
	got := root.Quaternion().Rotate(common.V3(1, 0, 0))
	want := common.V3(math.Cos(0.1), 0, -math.Sin(0.1))
	if got.DistanceTo(want) > 1e-9 {
		t.Errorf("rotated axis: have %v, want %v", got, want)
	}
}

func TestInertiaDecays(t *testing.T) {
	root := node.NewGroup("mainContainer")
	d := NewDragControls(root, config.DragConfig{RotationSpeed: 0.01, InertiaFactor: 0.5})

	d.PointerDown(0, 0)
	d.PointerMove(10, 0)
	d.Update()
	d.PointerUp()

	frames := 0
	for d.Update() {
		frames++
		if frames > 100 {
			t.Fatalf("inertia never settled")
		}
	}
	if frames == 0 {
		t.Errorf("no inertia after release")
	}
}

func TestAxisLocks(t *testing.T) {
	root := node.NewGroup("mainContainer")
	d := NewDragControls(root, config.DragConfig{RotationSpeed: 0.01, InertiaFactor: 0.9, DisableX: true, DisableY: true})

	d.PointerDown(0, 0)
	d.PointerMove(50, 50)
	if d.Update() {
		t.Errorf("locked axes still rotated the target")
	}
	if q := root.Quaternion(); q != common.QuatIdentity() {
		t.Errorf("quaternion: have %v, want identity", q)
	}
}

func TestMoveWithoutDragIgnored(t *testing.T) {
	root := node.NewGroup("mainContainer")
	d := NewDragControls(root, config.DragConfig{RotationSpeed: 0.01, InertiaFactor: 0.9})

	d.PointerMove(100, 100)
	if d.Update() {
		t.Errorf("hover movement rotated the target")
	}
}
