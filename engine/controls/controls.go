// Package controls turns pointer input into scene motion. The orbit camera controls live in
// the camera package; this package adds the custom drag mode that rotates the globe itself.
package controls

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// Controls is anything the render loop advances once per tick.
type Controls interface {
	// Update applies pending input.
	//
	// Returns:
	//   - bool: true if anything moved
	Update() bool
}

// settle is the angular velocity below which inertia stops.
const settle = 1e-5

// DragControls rotate a target node while the primary pointer button is held and keep it
// spinning with decaying velocity after release.
type DragControls struct {
	mu *sync.Mutex

	target node.Node
	cfg    config.DragConfig

	dragging bool
	lastX    float64
	lastY    float64

	pendingX float64 // pixels dragged since the last update
	pendingY float64

	velocityX float64 // radians per update
	velocityY float64
}

var _ Controls = &DragControls{}

// NewDragControls binds drag controls to the node they rotate.
//
// Parameters:
//   - target: the node to rotate, usually the root container
//   - cfg: rotation speed, inertia and axis locks
//
// Returns:
//   - *DragControls: the controls
func NewDragControls(target node.Node, cfg config.DragConfig) *DragControls {
	return &DragControls{
		mu:     &sync.Mutex{},
		target: target,
		cfg:    cfg,
	}
}

// PointerDown starts a drag at the given pixel position and cancels any inertia.
func (d *DragControls) PointerDown(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragging = true
	d.lastX, d.lastY = x, y
	d.velocityX, d.velocityY = 0, 0
}

// PointerMove accumulates drag distance while a drag is active.
func (d *DragControls) PointerMove(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dragging {
		return
	}
	d.pendingX += x - d.lastX
	d.pendingY += y - d.lastY
	d.lastX, d.lastY = x, y
}

// PointerUp ends the drag; the last velocity carries on as inertia.
func (d *DragControls) PointerUp() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragging = false
}

// Dragging reports whether a drag is in progress.
func (d *DragControls) Dragging() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dragging
}

func (d *DragControls) Update() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dragging {
		d.velocityX = d.pendingX * d.cfg.RotationSpeed
		d.velocityY = d.pendingY * d.cfg.RotationSpeed
	} else {
		d.velocityX *= d.cfg.InertiaFactor
		d.velocityY *= d.cfg.InertiaFactor
	}
	d.pendingX, d.pendingY = 0, 0

	if d.cfg.DisableX {
		d.velocityX = 0
	}
	if d.cfg.DisableY {
		d.velocityY = 0
	}
	if math.Abs(d.velocityX) < settle && math.Abs(d.velocityY) < settle {
		d.velocityX, d.velocityY = 0, 0
		return false
	}

	// Horizontal drags spin about world Y, vertical drags tilt about world X.
	q := d.target.Quaternion()
	q = common.QuatFromAxisAngle(common.V3(0, 1, 0), d.velocityX).Mul(q)
	q = common.QuatFromAxisAngle(common.V3(1, 0, 0), d.velocityY).Mul(q)
	d.target.SetQuaternion(q)
	return true
}
